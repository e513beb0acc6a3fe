package reservation

import (
	"net/http"
	"resto/infras/identity"
	"resto/infras/otel"
	"resto/internal/domains/reservation/model/dto"
	"resto/internal/domains/reservation/service"
	"resto/shared/constant"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/reservations", handler.CreateReservation)
	router.Get("/reservations", handler.GetReservationsByUserID)
	router.Get("/reservations/me", handler.GetMyReservations)
	router.Put("/reservations/{id}", handler.UpdateReservation)
	router.Post("/reservations/{id}/cancel", handler.CancelReservation)
}

// CreateReservation books a table for the authenticated caller.
// @Summary Create a reservation
// @Description Validate the request, store it in both stores and send a confirmation. Partial failures after the booking is stored are returned as warnings.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	caller, _ := identity.FromContext(ctx)

	reservation, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created for " + caller.Subject)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservationsByUserID lists reservations from the relational store.
// @Summary List reservations of a user
// @Tags Reservation
// @Produce json
// @Param userId query string true "Internal user ID"
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
func (handler *Handler) GetReservationsByUserID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationsByUserID")
	defer scope.End()

	userID := r.URL.Query().Get(constant.RequestParamUserID)

	if err := validator.ValidateVar(userID, "required,uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	reservations, err := handler.service.ListByUserID(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations lists the caller's reservations, latest first.
// @Summary List my reservations
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	caller, _ := identity.FromContext(ctx)

	reservations, err := handler.service.ListByUser(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// UpdateReservation applies an operator patch.
// @Summary Update a reservation
// @Description Change status (cancelled or completed), special requests or party size of a confirmed reservation.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.PatchReservationRequest true "Patch"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [put]
// @Security ApiKeyAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.PatchReservationRequest{}

	if err := validator.ValidateStrict(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation cancels one of the caller's reservations.
// @Summary Cancel a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	caller, _ := identity.FromContext(ctx)

	reservation, err := handler.service.Cancel(ctx, caller, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled")

	response.WithJSON(w, http.StatusOK, reservation)
}
