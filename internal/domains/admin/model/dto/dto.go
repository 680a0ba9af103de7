package dto

import (
	"strings"

	"hotel/internal/domains/admin/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// SeedAdminRequest describes an administrator created outside the HTTP surface.
type SeedAdminRequest struct {
	Name     string `validate:"required,notblank"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (r *SeedAdminRequest) ToModel(hashedPassword string) model.Admin {
	return model.Admin{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Role:     constant.RoleAdmin,
		IsActive: true,
		Metadata: gModel.NewMetadata(constant.ContextSystem, timezone.Now()),
	}
}

type AdminResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(model model.Admin) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}
