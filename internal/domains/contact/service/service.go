package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/repository"
	notificationService "hotel/internal/domains/notification/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	GetAll(ctx context.Context, filter gDto.FilterGroup) ([]dto.ContactResponse, error)
	Get(ctx context.Context, id string) (dto.ContactResponse, error)
	Update(ctx context.Context, req dto.UpdateContactRequest, id string) (dto.ContactResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Contact
	notifier notificationService.Notifier
	otel     otel.Otel
}

func New(repo repository.Contact, notifier notificationService.Notifier, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		otel:     otel,
	}
}

// Create stores the message and acknowledges it by email in the background.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	contact := req.ToModel()

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to create contact message")

		return res, fmt.Errorf("failed to create contact message: %w", err)
	}

	res.FromModel(contact)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.ContactReceived(c, res)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter gDto.FilterGroup) (res []dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	contacts, err := s.repo.GetAll(ctx, gDto.NewestFirst(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	return dto.FromModels(contacts), nil
}

// Get returns the message and marks it read the first time an admin opens it.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	contact, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if contact.Status == model.StatusNew {
		user, _ := ctx.Value(constant.ContextKeyUserID).(string)

		fields := shared.TransformFields(dto.MarkReadRequest{Status: model.StatusRead}, user)

		if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to mark contact message as read")

			return res, fmt.Errorf("failed to mark contact message as read: %w", err)
		}

		contact.Status = model.StatusRead
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateContactRequest, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update contact message")

		return res, fmt.Errorf("failed to update contact message: %w", err)
	}

	contact, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete contact message")

		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Contact, error) {
	contact, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact message")

		return contact, fmt.Errorf("failed to get contact message: %w", err)
	}

	if contact.ID == constant.Empty {
		return contact, failure.NotFound(model.MsgNotFound) // nolint:wrapcheck
	}

	return contact, nil
}
