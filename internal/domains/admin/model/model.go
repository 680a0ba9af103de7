package model

import "hotel/shared/model"

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldIsActive = "is_active"
)

type Admin struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}
