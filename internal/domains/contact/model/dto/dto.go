package dto

import (
	"net/http"
	"strings"

	"hotel/internal/domains/contact/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/sanitizer"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,notblank,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"omitempty,max=30"`
	Subject string `json:"subject" validate:"required,notblank,max=200"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

// ToModel strips markup from the free text fields before they are stored.
func (c *CreateContactRequest) ToModel() model.Contact {
	return model.Contact{
		ID:         uuid.NewString(),
		Name:       sanitizer.Text(c.Name),
		Email:      strings.TrimSpace(c.Email),
		Phone:      strings.TrimSpace(c.Phone),
		Subject:    sanitizer.Text(c.Subject),
		Message:    sanitizer.Text(c.Message),
		Status:     model.StatusNew,
		AdminNotes: constant.Empty,
		Metadata:   gModel.NewMetadata(constant.ContextGuest, timezone.Now()),
	}
}

type UpdateContactRequest struct {
	Status     *model.Status `db:"status"      json:"status"     validate:"omitempty,enum"`
	AdminNotes *string       `db:"admin_notes" json:"adminNotes" validate:"omitempty,max=5000"`
}

type MarkReadRequest struct {
	Status model.Status `db:"status"`
}

type ContactResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Subject = model.Subject
	r.Message = model.Message
	r.Status = string(model.Status)
	r.AdminNotes = model.AdminNotes
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Contact) []ContactResponse {
	res := make([]ContactResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ContactFilter narrows the admin inbox by status.
type ContactFilter struct {
	Status string
}

func (f *ContactFilter) FromRequest(r *http.Request) {
	f.Status = r.URL.Query().Get(constant.QueryParamStatus)
}

func (f *ContactFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.Status != constant.Empty {
		group.Add(gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}
