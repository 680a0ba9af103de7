package dto

import (
	"strings"
	"time"

	"hotel/infras/jwt"
	adminModel "hotel/internal/domains/admin/model"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NormalizedEmail matches the lower-cased form accounts are stored under.
func (l *LoginRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(l.Email))
}

// ProfileResponse describes the signed-in account, guest or administrator.
type ProfileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

func (p *ProfileResponse) FromUser(user userModel.User) {
	p.ID = user.ID
	p.Name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	p.FirstName = user.FirstName
	p.LastName = user.LastName
	p.Email = user.Email
	p.Phone = user.Phone
	p.Role = user.Role
}

// SystemProfile describes the identity behind the internal API key.
func SystemProfile() ProfileResponse {
	return ProfileResponse{ID: constant.ContextSystem, Name: "System", Role: constant.RoleAdmin}
}

func (p *ProfileResponse) FromAdmin(admin adminModel.Admin) {
	p.ID = admin.ID
	p.Name = admin.Name
	p.Email = admin.Email
	p.Role = admin.Role
}

// AuthResponse is returned by register and login. The token is also set as a cookie.
type AuthResponse struct {
	ProfileResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	MaxAge    int       `json:"-"`
}

func (a *AuthResponse) FromToken(token *jwt.Token) {
	a.Token = token.Value
	a.ExpiresAt = token.ExpiresAt
	a.MaxAge = token.MaxAge
}
