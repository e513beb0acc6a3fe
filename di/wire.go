//go:build wireinject
// +build wireinject

package di

import (
	"resto/config"
	"resto/infras/firebase"
	"resto/infras/identity"
	"resto/infras/kafka"
	"resto/infras/mailer"
	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/infras/redis"
	"resto/infras/s3"
	contactHandler "resto/internal/handlers/contact"
	menuHandler "resto/internal/handlers/menu"
	reservationHandler "resto/internal/handlers/reservation"
	userHandler "resto/internal/handlers/user"
	"resto/permissions"
	"resto/shared/cache"
	"resto/transport/http"
	"resto/transport/http/middleware"
	"resto/transport/http/router"

	contactRepository "resto/internal/domains/contact/repository"
	contactService "resto/internal/domains/contact/service"
	menuRepository "resto/internal/domains/menu/repository"
	menuService "resto/internal/domains/menu/service"
	reservationRepository "resto/internal/domains/reservation/repository"
	reservationService "resto/internal/domains/reservation/service"
	userRepository "resto/internal/domains/user/repository"
	userService "resto/internal/domains/user/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	firebase.New,
	firebase.NewAuth,
	firebase.NewFirestore,
	identity.New,
	kafka.New,
	mailer.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var menuDomain = wire.NewSet(
	menuRepository.New,
	menuService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationRepository.NewDocument,
	reservationService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var domains = wire.NewSet(
	menuDomain,
	userDomain,
	reservationDomain,
	contactDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	menuHandler.New,
	reservationHandler.New,
	userHandler.New,
	contactHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeMenuSeeder() menuService.Menu {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		s3.New,
		sharedHelpers,
		menuDomain,
	)

	return nil
}
