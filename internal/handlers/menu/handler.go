package menu

import (
	"net/http"
	"resto/infras/otel"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/service"
	"resto/shared/constant"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Menu
	otel    otel.Otel
}

func New(service service.Menu, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/menu", handler.GetMenu)
	router.Get("/menu/{id}", handler.GetMenuItemByID)
	router.Put("/menu/{id}/image", handler.UpdateMenuItemImage)
}

// GetMenu lists the menu, optionally narrowed to one category.
// @Summary List menu items
// @Description Retrieve the menu ordered by creation time, optionally filtered by category and dietary flags.
// @Tags Menu
// @Produce json
// @Param category query string false "Starters, Main Course, Desserts or Beverages"
// @Param vegetarian query boolean false "Only vegetarian dishes"
// @Param vegan query boolean false "Only vegan dishes"
// @Param gluten_free query boolean false "Only gluten free dishes"
// @Param spicy query boolean false "Only spicy dishes"
// @Success 200 {object} response.Data[[]dto.MenuItemResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu [get]
func (handler *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenu")
	defer scope.End()

	req := dto.ListMenuRequest{}
	req.FromRequest(r)

	items, err := handler.service.List(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list menu")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetMenuItemByID retrieves a menu item by its ID.
// @Summary Get a menu item
// @Tags Menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} response.Data[dto.MenuItemResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/{id} [get]
func (handler *Handler) GetMenuItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItemByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("menu_item_id", id).Msg("failed to get menu item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// UpdateMenuItemImage replaces the picture of a menu item.
// @Summary Upload a menu item image
// @Description Upload a base64 data URL (png, jpeg or webp, up to 2MB) to object storage and point the item at it.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body dto.UpdateImageRequest true "Image"
// @Success 200 {object} response.Data[dto.MenuItemResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/{id}/image [put]
// @Security ApiKeyAuth
func (handler *Handler) UpdateMenuItemImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMenuItemImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateImageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.UpdateImage(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("menu_item_id", id).Msg("failed to update menu item image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu item image updated")

	response.WithJSON(w, http.StatusOK, item)
}
