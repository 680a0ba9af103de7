package dto

import (
	"strings"

	"hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=50"`
	LastName  string `json:"lastName"  validate:"required,notblank,max=50"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Phone     string `json:"phone"     validate:"omitempty,max=30"`
}

// NormalizedEmail is the lookup key for uniqueness checks.
func (r *RegisterRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) ToModel(hashedPassword string) model.User {
	id := uuid.NewString()

	return model.User{
		ID:        id,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     r.NormalizedEmail(),
		Password:  hashedPassword,
		Phone:     strings.TrimSpace(r.Phone),
		Role:      constant.RoleUser,
		IsActive:  true,
		Metadata:  gModel.NewMetadata(id, timezone.Now()),
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

// ContactResponse is the slice of a user shown alongside a booking.
type ContactResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

func (r *ContactResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Phone = model.Phone
}
