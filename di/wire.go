//go:build wireinject
// +build wireinject

package di

import (
	"innstay/config"
	"innstay/infras/jwt"
	"innstay/infras/kafka"
	"innstay/infras/otel"
	"innstay/infras/postgres"
	"innstay/infras/redis"
	"innstay/infras/s3"
	"innstay/infras/sms"
	"innstay/permissions"
	"innstay/shared/cache"
	"innstay/transport/http"
	"innstay/transport/http/middleware"
	"innstay/transport/http/router"

	"github.com/google/wire"

	authService "innstay/internal/domains/auth/service"
	bookingRepository "innstay/internal/domains/booking/repository"
	bookingService "innstay/internal/domains/booking/service"
	hotelRepository "innstay/internal/domains/hotel/repository"
	hotelService "innstay/internal/domains/hotel/service"
	roomRepository "innstay/internal/domains/room/repository"
	roomService "innstay/internal/domains/room/service"
	statsRepository "innstay/internal/domains/stats/repository"
	statsService "innstay/internal/domains/stats/service"
	userRepository "innstay/internal/domains/user/repository"
	userService "innstay/internal/domains/user/service"

	authHandler "innstay/internal/handlers/auth"
	bookingHandler "innstay/internal/handlers/booking"
	hotelHandler "innstay/internal/handlers/hotel"
	roomHandler "innstay/internal/handlers/room"
	statsHandler "innstay/internal/handlers/stats"
	userHandler "innstay/internal/handlers/user"
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
	s3.New,
	kafka.New,
	sms.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userRepository.NewProfile,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var statsDomain = wire.NewSet(
	statsRepository.New,
	statsService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	hotelDomain,
	roomDomain,
	bookingDomain,
	statsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	roomHandler.New,
	bookingHandler.New,
	statsHandler.New,
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
