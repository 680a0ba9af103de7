package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

const msgRoomNotFound = "Room not found"

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	InsertBulk(ctx context.Context, models []model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	AppendImage(ctx context.Context, id, url, user string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AppendImage adds url to the end of the room's images in a single statement.
func (r *repositoryImpl) AppendImage(ctx context.Context, id, url, user string, at time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".AppendImage")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = array_append(%s, $1), %s = $2, %s = $3 WHERE %s = $4",
		model.TableName, model.FieldImages, model.FieldImages, constant.FieldModifiedAt, constant.FieldModifiedBy, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.ExecContext(ctx, query, url, at, user, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to append room image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to append room image: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(msgRoomNotFound)
	}

	return nil
}
