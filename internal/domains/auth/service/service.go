package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel/infras/jwt"
	"hotel/infras/otel"
	adminModel "hotel/internal/domains/admin/model"
	adminRepo "hotel/internal/domains/admin/repository"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	msgEmailTaken         = "User already exists with this email"
	msgInvalidCredentials = "Invalid email or password"
	msgAccountDeactivated = "Account is deactivated"
	msgAccountNotFound    = "User not found"
)

type Auth interface {
	Register(ctx context.Context, req userDto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	AdminLogin(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	adminRepo  adminRepo.Admin
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, adminRepo adminRepo.Admin, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req userDto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.NormalizedEmail(), userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(msgEmailTaken) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromUser(user)

	return s.sign(res)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.Get(ctx, emailFilter(req.NormalizedEmail(), userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if err = checkCredentials(req, user.ID, user.Password, user.IsActive); err != nil {
		return res, err
	}

	res.FromUser(user)

	return s.sign(res)
}

func (s *serviceImpl) AdminLogin(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.AdminLogin")
	defer scope.End()
	defer scope.TraceIfError(&err)

	admin, err := s.adminRepo.Get(ctx, emailFilter(req.NormalizedEmail(), adminModel.FieldEmail, adminModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if err = checkCredentials(req, admin.ID, admin.Password, admin.IsActive); err != nil {
		return res, err
	}

	res.FromAdmin(admin)

	return s.sign(res)
}

// Logout revokes the token until it would have expired anyway. Tokens that no
// longer validate need no revocation.
func (s *serviceImpl) Logout(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Logout")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if token == constant.Empty {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := int(time.Until(claims.ExpiresAt.Time).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedToken, claims.TokenID), true, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// Profile loads the caller from the table matching their role.
func (s *serviceImpl) Profile(ctx context.Context) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Profile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if id == constant.ContextSystem {
		return dto.SystemProfile(), nil
	}

	if role == constant.RoleAdmin {
		admin, err := s.adminRepo.Get(ctx, shared.FilterByID(id, adminModel.FieldID, adminModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get admin")

			return res, fmt.Errorf("failed to get admin: %w", err)
		}

		if admin.ID == constant.Empty {
			return res, failure.NotFound(msgAccountNotFound) // nolint:wrapcheck
		}

		res.FromAdmin(admin)

		return res, nil
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound(msgAccountNotFound) // nolint:wrapcheck
	}

	res.FromUser(user)

	return res, nil
}

func (s *serviceImpl) sign(res dto.AuthResponse) (dto.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(res.ID, res.Email, res.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}

// checkCredentials answers unknown accounts and wrong passwords alike.
func checkCredentials(req dto.LoginRequest, id, hash string, active bool) error {
	if id == constant.Empty {
		log.Warn().Str("email", req.NormalizedEmail()).Msg("login attempt with unknown email")

		return failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, hash); err != nil {
		log.Warn().Str("email", req.NormalizedEmail()).Msg("login attempt with wrong password")

		return failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	if !active {
		return failure.Unauthorized(msgAccountDeactivated) // nolint:wrapcheck
	}

	return nil
}

func emailFilter(email, field, table string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: field, Value: strings.ToLower(email), Operator: gDto.FilterOperatorEq, Table: table})
}
