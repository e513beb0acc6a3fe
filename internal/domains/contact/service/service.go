package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"resto/infras/mailer"
	"resto/infras/otel"
	"resto/internal/domains/contact/model/dto"
	"resto/internal/domains/contact/repository"
	"resto/shared/constant"
	"resto/shared/logger"

	"github.com/rs/zerolog/log"
)

const stepNotify = "contact.notify"

type Contact interface {
	// Create stores the message and forwards it to the restaurant inbox.
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
}

type serviceImpl struct {
	repo   repository.Contact
	mailer mailer.Dispatcher
	otel   otel.Otel
}

func New(repo repository.Contact, dispatcher mailer.Dispatcher, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:   repo,
		mailer: dispatcher,
		otel:   otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateContact")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	message := req.ToModel()

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to store contact message")

		return res, fmt.Errorf("failed to store contact message: %w", err)
	}

	if notifyErr := s.mailer.SendContactMessage(ctx, req.ToContact()); notifyErr != nil {
		logger.Warning(stepNotify, notifyErr)
	}

	res.FromModel(message)

	return res, nil
}
