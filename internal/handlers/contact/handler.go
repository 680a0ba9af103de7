package contact

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
		routerGroup.Get("/{id}", handler.GetContactByID)
		routerGroup.Put("/{id}", handler.UpdateContact)
		routerGroup.Delete("/{id}", handler.DeleteContact)
	})
}

// CreateContact accepts a message from the public contact form.
// @Summary Send a contact message
// @Description Stores the message and emails the sender a confirmation.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Message"
// @Success 201 {object} response.Data[dto.ContactResponse] "Stored message"
// @Failure 400 {object} response.Error
// @Router /api/contacts [post]
func (handler *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, contact)
}

// GetContacts lists the inbox, newest first.
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Param status query string false "new, read or resolved"
// @Success 200 {object} response.List[dto.ContactResponse] "Messages"
// @Failure 403 {object} response.Error
// @Router /api/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	filter := dto.ContactFilter{}
	filter.FromRequest(r)

	contacts, err := handler.service.GetAll(ctx, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	response.WithList(w, http.StatusOK, contacts)
}

// GetContactByID opens a message. New messages become read.
// @Summary Get a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Data[dto.ContactResponse] "Message"
// @Failure 404 {object} response.Error
// @Router /api/contacts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	contact, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// UpdateContact changes the status or notes of a message.
// @Summary Update a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ContactResponse] "Updated message"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/contacts/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// DeleteContact removes a message.
// @Summary Delete a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Message "Contact message deleted successfully"
// @Failure 404 {object} response.Error
// @Router /api/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Contact message deleted successfully")
}
