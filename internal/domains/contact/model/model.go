package model

import "hotel/shared/model"

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID         = "id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldSubject    = "subject"
	FieldMessage    = "message"
	FieldStatus     = "status"
	FieldAdminNotes = "admin_notes"
)

const (
	MsgNotFound = "Contact message not found"
	MsgDeleted  = "Contact message deleted successfully"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusResolved Status = "resolved"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusRead, StatusResolved:
		return true
	}

	return false
}

type Contact struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	Subject    string `db:"subject"`
	Message    string `db:"message"`
	Status     Status `db:"status"`
	AdminNotes string `db:"admin_notes"`
	model.Metadata
}
