package router

import (
	"net/http"
	"resto/internal/handlers/contact"
	"resto/internal/handlers/menu"
	"resto/internal/handlers/reservation"
	"resto/internal/handlers/user"
	"resto/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "resto/docs"
)

type DomainHandlers struct {
	Menu        menu.Handler
	Reservation reservation.Handler
	User        user.Handler
	Contact     contact.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router, health http.HandlerFunc) {
	router.Use(r.App.Tracing, r.App.CORS(), r.App.RateLimit())

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.APIKey, r.Auth.Auth, r.Auth.RBAC)

		routerGroup.Get("/health", health)

		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
	}
}
