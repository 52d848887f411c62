//go:build wireinject
// +build wireinject

package di

import (
	"nyumba/config"
	"nyumba/infras/jwt"
	"nyumba/infras/kafka"
	"nyumba/infras/otel"
	"nyumba/infras/postgres"
	"nyumba/infras/redis"
	"nyumba/permissions"
	"nyumba/shared/cache"
	"nyumba/transport/http"
	"nyumba/transport/http/middleware"
	"nyumba/transport/http/router"

	"nyumba/internal/domains/commission"
	"nyumba/internal/domains/propertytype"

	authService "nyumba/internal/domains/auth/service"
	bookingRepository "nyumba/internal/domains/booking/repository"
	bookingService "nyumba/internal/domains/booking/service"
	inquiryRepository "nyumba/internal/domains/inquiry/repository"
	inquiryService "nyumba/internal/domains/inquiry/service"
	listingRepository "nyumba/internal/domains/listing/repository"
	listingService "nyumba/internal/domains/listing/service"
	paymentRepository "nyumba/internal/domains/payment/repository"
	paymentService "nyumba/internal/domains/payment/service"
	userRepository "nyumba/internal/domains/user/repository"
	userService "nyumba/internal/domains/user/service"
	walletRepository "nyumba/internal/domains/wallet/repository"
	walletService "nyumba/internal/domains/wallet/service"

	authHandler "nyumba/internal/handlers/auth"
	bookingHandler "nyumba/internal/handlers/booking"
	inquiryHandler "nyumba/internal/handlers/inquiry"
	listingHandler "nyumba/internal/handlers/listing"
	paymentHandler "nyumba/internal/handlers/payment"
	userHandler "nyumba/internal/handlers/user"
	walletHandler "nyumba/internal/handlers/wallet"

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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var pricing = wire.NewSet(
	propertytype.NewRegistry,
	commission.NewCalculator,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var walletDomain = wire.NewSet(
	walletRepository.New,
	walletService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	listingDomain,
	bookingDomain,
	paymentDomain,
	walletDomain,
	inquiryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	listingHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	walletHandler.New,
	inquiryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		pricing,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
