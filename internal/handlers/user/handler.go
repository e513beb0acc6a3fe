package user

import (
	"cmp"
	"net/http"
	"resto/infras/identity"
	"resto/infras/otel"
	"resto/internal/domains/user/model/dto"
	"resto/internal/domains/user/service"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/users/firebase", handler.SyncFirebaseUser)
}

// SyncFirebaseUser makes sure the verified caller has a local user record.
// @Summary Sync the signed-in user
// @Description Find or create the local user bound to the caller's identity. The body is optional and only fills profile fields the token lacks.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.EnsureUserRequest false "Profile"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/firebase [post]
// @Security BearerAuth
func (handler *Handler) SyncFirebaseUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncFirebaseUser")
	defer scope.End()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		err := failure.Unauthorized("authentication required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	req := dto.EnsureUserRequest{}

	if request.ContentLength != 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	req.ExternalID = caller.Subject
	req.Email = cmp.Or(caller.Email, req.Email)
	req.Name = cmp.Or(caller.Name, req.Name)

	user, err := handler.service.EnsureUser(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sync user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User synced")

	response.WithJSON(writer, http.StatusOK, user)
}
