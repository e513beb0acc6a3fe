package contact

import (
	"net/http"
	"resto/infras/otel"
	"resto/internal/domains/contact/model/dto"
	"resto/internal/domains/contact/service"
	"resto/shared/constant"
	"resto/shared/validator"
	"resto/transport/http/response"

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
	router.Post("/contact", handler.CreateContactMessage)
}

// CreateContactMessage stores a message from the contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Message"
// @Success 201 {object} response.Data[dto.ContactResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact [post]
func (handler *Handler) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContactMessage")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, message)
}
