package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	adminMocks "hotel/internal/domains/admin/mocks"
	adminModel "hotel/internal/domains/admin/model"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
)

type fixture struct {
	userRepo  *userMocks.MockUser
	adminRepo *adminMocks.MockAdmin
	cache     *cacheMocks.MockRedisCache
	jwt       *jwtMocks.MockJWT
	svc       service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		userRepo:  userMocks.NewMockUser(ctrl),
		adminRepo: adminMocks.NewMockAdmin(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		jwt:       jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.userRepo, f.adminRepo, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func hash(t *testing.T, plain string) string {
	hashed, err := password.Hash(plain)
	require.NoError(t, err)

	return hashed
}

func signed() *jwt.Token {
	return &jwt.Token{Value: "signed-token", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour), MaxAge: 3600}
}

func TestAuthService_Register(t *testing.T) {
	req := userDto.RegisterRequest{FirstName: "John", LastName: "Doe", Email: "John@Example.com", Password: "secret1"}

	t.Run("creates a guest account with a lower-cased email", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "john@example.com", args[userModel.FieldEmail])

				return false, nil
			})
		f.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, "john@example.com", user.Email)
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.True(t, user.IsActive)
				assert.NoError(t, password.Verify("secret1", user.Password))

				return nil
			})
		f.jwt.EXPECT().GenerateToken(gomock.Any(), "john@example.com", constant.RoleUser).Return(signed(), nil)

		res, err := f.svc.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "signed-token", res.Token)
		assert.Equal(t, "John Doe", res.Name)
		assert.Equal(t, 3600, res.MaxAge)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		assert.Equal(t, "User already exists with this email", err.Error())
	})
}

func TestAuthService_Login(t *testing.T) {
	active := userModel.User{ID: "u1", FirstName: "John", Email: "john@example.com", Password: hash(t, "secret1"), Role: constant.RoleUser, IsActive: true}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantMsg   string
	}{
		{
			name: "valid credentials",
			req:  dto.LoginRequest{Email: "JOHN@example.com", Password: "secret1"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
				f.jwt.EXPECT().GenerateToken("u1", "john@example.com", constant.RoleUser).Return(signed(), nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "ghost@example.com", Password: "secret1"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantMsg: "Invalid email or password",
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "john@example.com", Password: "secret2"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
			},
			wantMsg: "Invalid email or password",
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "john@example.com", Password: "secret1"},
			setupMock: func(f fixture) {
				inactive := active
				inactive.IsActive = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantMsg: "Account is deactivated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantMsg != "" {
				assert.Equal(t, failure.KindUnauthenticated, failure.GetKind(err))
				assert.Equal(t, tt.wantMsg, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u1", res.ID)
			assert.Equal(t, "signed-token", res.Token)
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	admin := adminModel.Admin{ID: "a1", Name: "Admin", Email: "admin@hotel.com", Password: hash(t, "admin123"), Role: constant.RoleAdmin, IsActive: true}

	t.Run("valid credentials", func(t *testing.T) {
		f := newFixture(t)

		f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
		f.jwt.EXPECT().GenerateToken("a1", "admin@hotel.com", constant.RoleAdmin).Return(signed(), nil)

		res, err := f.svc.AdminLogin(context.Background(), dto.LoginRequest{Email: "admin@hotel.com", Password: "admin123"})

		require.NoError(t, err)
		assert.Equal(t, "admin", res.Role)
	})

	t.Run("guest accounts cannot sign in as admin", func(t *testing.T) {
		f := newFixture(t)

		f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)

		_, err := f.svc.AdminLogin(context.Background(), dto.LoginRequest{Email: "john@example.com", Password: "secret1"})

		assert.True(t, failure.Is(err, failure.KindUnauthenticated))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, errors.New("connection refused"))

		_, err := f.svc.AdminLogin(context.Background(), dto.LoginRequest{Email: "admin@hotel.com", Password: "admin123"})

		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes a live token until it expires", func(t *testing.T) {
		f := newFixture(t)

		claims := &jwt.Claims{
			TokenID:          "jti-1",
			RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		}

		f.jwt.EXPECT().ValidateToken("signed-token").Return(claims, nil)
		f.cache.EXPECT().
			Save(gomock.Any(), "auth:revoked:jti-1", true, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ any, ttl int) error {
				assert.InDelta(t, 3600, ttl, 5)

				return nil
			})

		assert.NoError(t, f.svc.Logout(context.Background(), "signed-token"))
	})

	t.Run("no token", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.svc.Logout(context.Background(), ""))
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("garbage").Return(nil, jwt.ErrInvalidToken)

		assert.NoError(t, f.svc.Logout(context.Background(), "garbage"))
	})
}

func TestAuthService_Profile(t *testing.T) {
	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u1", Email: "john@example.com", Role: constant.RoleUser}, nil)

		res, err := f.svc.Profile(ctx)

		require.NoError(t, err)
		assert.Equal(t, "john@example.com", res.Email)
	})

	t.Run("administrator", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "a1")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{ID: "a1", Name: "Admin", Role: constant.RoleAdmin}, nil)

		res, err := f.svc.Profile(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Admin", res.Name)
	})

	t.Run("api key identity", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, constant.ContextSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		res, err := f.svc.Profile(ctx)

		require.NoError(t, err)
		assert.Equal(t, constant.ContextSystem, res.ID)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})

	t.Run("deleted account", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Profile(ctx)

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}
