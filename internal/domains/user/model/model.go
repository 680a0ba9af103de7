package model

import "hotel/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldIsActive  = "is_active"
)

// ContactColumns is the partial projection joined into booking responses.
var ContactColumns = []string{FieldID, FieldFirstName, FieldLastName, FieldEmail, FieldPhone}

// SummaryColumns is the narrower projection used by the dashboard.
var SummaryColumns = []string{FieldID, FieldFirstName, FieldLastName, FieldEmail}

type User struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Password  string `db:"password"`
	Phone     string `db:"phone"`
	Role      string `db:"role"`
	IsActive  bool   `db:"is_active"`
	model.Metadata
}
