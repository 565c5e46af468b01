//go:build wireinject
// +build wireinject

package di

import (
	"fancall/config"
	"fancall/infras/jwt"
	"fancall/infras/kafka"
	"fancall/infras/ledger"
	"fancall/infras/otel"
	"fancall/infras/postgres"
	"fancall/infras/redis"
	"fancall/permissions"
	"fancall/shared/cache"
	"fancall/transport/http"
	"fancall/transport/http/middleware"
	"fancall/transport/http/router"

	bookingRepository "fancall/internal/domains/booking/repository"
	bookingService "fancall/internal/domains/booking/service"
	notificationService "fancall/internal/domains/notification/service"
	settingsRepository "fancall/internal/domains/settings/repository"
	settingsService "fancall/internal/domains/settings/service"

	bookingHandler "fancall/internal/handlers/booking"
	settingsHandler "fancall/internal/handlers/settings"

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
	jwt.New,
	kafka.New,
	ledger.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var settingsDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	notificationService.New,
)

var domains = wire.NewSet(
	settingsDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	settingsHandler.New,
	bookingHandler.New,
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
