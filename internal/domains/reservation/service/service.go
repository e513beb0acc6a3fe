package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"resto/config"
	"resto/infras/identity"
	"resto/infras/kafka"
	"resto/infras/mailer"
	"resto/infras/otel"
	"resto/internal/domains/reservation/model"
	"resto/internal/domains/reservation/model/dto"
	"resto/internal/domains/reservation/policy"
	"resto/internal/domains/reservation/repository"
	userDto "resto/internal/domains/user/model/dto"
	userService "resto/internal/domains/user/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/logger"
	gRepo "resto/shared/repository"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	stepDocumentCreate = "document.create"
	stepDocumentLink   = "document.link"
	stepDocumentSync   = "document.sync"
	stepNotify         = "notify"
	stepPublish        = "publish"

	confirmationDateLayout = "Monday, 2 January 2006"
)

var errNoCompanion = errors.New("reservation has no companion document")

type Reservation interface {
	// Create validates, stores and confirms a reservation for the caller.
	// Failures after the relational write are reported as warnings.
	Create(ctx context.Context, caller identity.Identity, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	// ListByUser returns the caller's reservations from the document store, latest first.
	ListByUser(ctx context.Context, caller identity.Identity) ([]dto.ReservationResponse, error)
	ListByUserID(ctx context.Context, userID string) ([]dto.ReservationResponse, error)
	Cancel(ctx context.Context, caller identity.Identity, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, id string, req dto.PatchReservationRequest) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	documents repository.Document
	users     userService.User
	mailer    mailer.Dispatcher
	publisher kafka.Publisher
	policy    policy.Policy
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	documents repository.Document,
	users userService.User,
	dispatcher mailer.Dispatcher,
	publisher kafka.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		documents: documents,
		users:     users,
		mailer:    dispatcher,
		publisher: publisher,
		policy:    policy.New(cfg),
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, caller identity.Identity, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if caller.IsZero() {
		return res, failure.Unauthorized("authentication required")
	}

	accepted, err := s.policy.Validate(req, timezone.Now())
	if err != nil {
		return res, err
	}

	user, err := s.users.EnsureUser(ctx, userDto.EnsureUserRequest{
		ExternalID: caller.Subject,
		Email:      cmp.Or(caller.Email, accepted.Email),
		Name:       cmp.Or(caller.Name, accepted.Name),
		Phone:      accepted.Phone,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve reservation owner")

		return res, fmt.Errorf("failed to resolve reservation owner: %w", err)
	}

	reservation := accepted.ToModel(user.ID, caller.Subject)

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	log.Info().Str("reservation_id", reservation.ID).Str("user_id", user.ID).Msg("reservation confirmed")

	var warnings []string

	documentID, docErr := s.documents.Create(ctx, dto.NewDocument(reservation, caller.Subject))
	if docErr != nil {
		logger.Warning(stepDocumentCreate, docErr)

		warnings = append(warnings, dto.WarningDocumentStore)
	} else {
		reservation.DocumentID = &documentID

		link := map[string]any{model.FieldDocumentID: documentID}
		if linkErr := s.repo.Update(ctx, link, s.byID(reservation.ID)); linkErr != nil {
			logger.Warning(stepDocumentLink, linkErr)
		}
	}

	s.publish(ctx, dto.EventCreated, reservation)

	if notifyErr := s.mailer.SendReservationConfirmation(ctx, s.confirmation(reservation)); notifyErr != nil {
		logger.Warning(stepNotify, notifyErr)

		warnings = append(warnings, dto.WarningNotification)
	}

	res.FromModel(reservation)
	res.Warnings = warnings

	return res, nil
}

func (s *serviceImpl) ListByUser(ctx context.Context, caller identity.Identity) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if caller.IsZero() {
		return nil, failure.Unauthorized("authentication required")
	}

	docs, err := s.documents.ListByOwner(ctx, caller.Subject)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	res = make([]dto.ReservationResponse, len(docs))
	for i, doc := range docs {
		res[i].FromDocument(doc)
	}

	sortLatestFirst(res)

	return res, nil
}

func (s *serviceImpl) ListByUserID(ctx context.Context, userID string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByUserID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	res = make([]dto.ReservationResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	sortLatestFirst(res)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, caller identity.Identity, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if caller.IsZero() {
		return res, failure.Unauthorized("authentication required")
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if current.OwnerUID == nil || *current.OwnerUID != caller.Subject {
		return res, failure.Forbidden("reservation belongs to another user")
	}

	if current.Status == model.StatusCancelled {
		res.FromModel(current)

		return res, nil
	}

	if current.Status != model.StatusConfirmed {
		return res, failure.Conflict(fmt.Sprintf("reservation is %s and cannot be cancelled", current.Status))
	}

	status := model.StatusCancelled

	return s.transition(ctx, current, dto.PatchReservationRequest{Status: &status}, caller.Subject, dto.EventCancelled)
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.PatchReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("at least one of status, requests or guests is required")
	}

	if req.Guests != nil {
		if msg := s.policy.CheckGuests(*req.Guests); msg != constant.Empty {
			return res, failure.Validation(msg, []failure.FieldError{{Field: policy.FieldGuests, Message: msg}})
		}
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	// same-status patches are no-ops
	if req.Status != nil && *req.Status == current.Status {
		req.Status = nil
	}

	if req.IsEmpty() {
		res.FromModel(current)

		return res, nil
	}

	if current.Status != model.StatusConfirmed {
		return res, failure.Conflict(fmt.Sprintf("reservation is %s and cannot be changed", current.Status))
	}

	return s.transition(ctx, current, req, constant.ContextSystem, dto.EventUpdated)
}

// transition applies patch to a confirmed reservation. The relational write is
// guarded on the confirmed status; the document mirror is best effort.
func (s *serviceImpl) transition(
	ctx context.Context,
	current model.Reservation,
	patch dto.PatchReservationRequest,
	actor string,
	event string,
) (res dto.ReservationResponse, err error) {
	fields := shared.TransformFields(&patch, actor)

	filter := s.byID(current.ID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		ArgName:  "current_status",
		Value:    model.StatusConfirmed,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	err = s.repo.UpdateWhere(ctx, fields, filter)
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return s.resolveRace(ctx, current.ID, patch)
	}

	if err != nil {
		log.Error().Err(err).Str("reservation_id", current.ID).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	updated := apply(current, patch, fields)

	var warnings []string

	documentID, syncErr := s.companion(ctx, &updated)
	if syncErr == nil {
		syncErr = s.documents.Update(ctx, documentID, documentFields(patch))
	}

	if syncErr != nil {
		logger.Warning(stepDocumentSync, syncErr)

		warnings = append(warnings, dto.WarningDocumentSync)
	}

	res.FromModel(updated)
	res.Warnings = warnings

	s.publish(ctx, event, updated)

	return res, nil
}

// companion returns the id of the reservation's document. When the id was
// never linked it is looked up by reservation id and stored on the row.
func (s *serviceImpl) companion(ctx context.Context, reservation *model.Reservation) (string, error) {
	if reservation.DocumentID != nil {
		return *reservation.DocumentID, nil
	}

	documentID, err := s.documents.FindByReservation(ctx, reservation.ID)
	if err != nil {
		return constant.Empty, err
	}

	if documentID == constant.Empty {
		return constant.Empty, errNoCompanion
	}

	reservation.DocumentID = &documentID

	link := map[string]any{model.FieldDocumentID: documentID}
	if err = s.repo.Update(ctx, link, s.byID(reservation.ID)); err != nil {
		logger.Warning(stepDocumentLink, err)
	}

	return documentID, nil
}

// resolveRace handles a guarded update that matched nothing because the
// status changed concurrently.
func (s *serviceImpl) resolveRace(ctx context.Context, id string, patch dto.PatchReservationRequest) (res dto.ReservationResponse, err error) {
	latest, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if patch.Status != nil && patch.Requests == nil && patch.Guests == nil && latest.Status == *patch.Status {
		res.FromModel(latest)

		return res, nil
	}

	return res, failure.Conflict(fmt.Sprintf("reservation is %s and cannot be changed", latest.Status))
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, s.byID(id))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, reservation model.Reservation) {
	message := kafka.Message{Key: reservation.ID, Value: dto.NewEvent(eventType, reservation)}

	if err := s.publisher.Publish(ctx, message); err != nil {
		logger.Warning(stepPublish, err)
	}
}

func (s *serviceImpl) confirmation(reservation model.Reservation) mailer.Confirmation {
	confirmation := mailer.Confirmation{
		ReservationID: reservation.ID,
		Name:          reservation.Name,
		Email:         reservation.Email,
		Phone:         reservation.Phone,
		Date:          reservation.Date.Format(confirmationDateLayout),
		Time:          reservation.Time,
		Guests:        reservation.Guests,
	}

	if slot, err := timezone.Parse(constant.SlotFormat24h, reservation.Time); err == nil {
		confirmation.Time = slot.Format(constant.SlotFormat12h)
	}

	if reservation.Requests != nil {
		confirmation.Requests = *reservation.Requests
	}

	return confirmation
}

func apply(reservation model.Reservation, patch dto.PatchReservationRequest, fields map[string]any) model.Reservation {
	if patch.Status != nil {
		reservation.Status = *patch.Status
	}

	if patch.Requests != nil {
		requests := *patch.Requests
		reservation.Requests = &requests
	}

	if patch.Guests != nil {
		reservation.Guests = *patch.Guests
	}

	if at, ok := fields[constant.FieldModifiedAt].(time.Time); ok {
		reservation.ModifiedAt = at
	}

	if by, ok := fields[constant.FieldModifiedBy].(string); ok {
		reservation.ModifiedBy = by
	}

	return reservation
}

func documentFields(patch dto.PatchReservationRequest) map[string]any {
	fields := map[string]any{}

	if patch.Status != nil {
		fields[model.DocumentFieldStatus] = *patch.Status
	}

	if patch.Requests != nil {
		fields[model.DocumentFieldRequests] = *patch.Requests
	}

	if patch.Guests != nil {
		fields[model.DocumentFieldGuests] = *patch.Guests
	}

	return fields
}

func sortLatestFirst(reservations []dto.ReservationResponse) {
	slices.SortStableFunc(reservations, func(a, b dto.ReservationResponse) int {
		return cmp.Or(cmp.Compare(b.Date, a.Date), cmp.Compare(b.Time, a.Time))
	})
}
