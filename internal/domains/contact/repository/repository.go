package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/contact/model"
	gRepo "resto/shared/repository"
)

type Contact interface {
	Insert(ctx context.Context, model model.ContactMessage) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ContactMessage]
}

func New(db *postgres.Connection, otel otel.Otel) Contact {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ContactMessage](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
