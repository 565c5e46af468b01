package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"fancall/infras/otel"
	"fancall/infras/postgres"
	"fancall/internal/domains/settings/model"
	gDto "fancall/shared/dto"
	gRepo "fancall/shared/repository"
)

type BookingPolicy interface {
	Insert(ctx context.Context, model model.BookingPolicy) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingPolicy, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingPolicy, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingPolicy]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) BookingPolicy {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingPolicy](model.EntityName, model.TableName, model.FieldCreatorID, db, otel),
		db:         db,
		otel:       otel,
	}
}
