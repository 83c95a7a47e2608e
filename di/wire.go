//go:build wireinject
// +build wireinject

package di

import (
	"seatdesk/config"
	"seatdesk/infras/jwt"
	"seatdesk/infras/metrics"
	"seatdesk/infras/otel"
	"seatdesk/infras/postgres"
	"seatdesk/infras/redis"
	"seatdesk/infras/s3"
	"seatdesk/permissions"
	"seatdesk/shared/cache"
	"seatdesk/shared/transaction"
	"seatdesk/transport/http"
	"seatdesk/transport/http/middleware"
	"seatdesk/transport/http/router"

	attendanceRepository "seatdesk/internal/domains/attendance/repository"
	attendanceService "seatdesk/internal/domains/attendance/service"
	authService "seatdesk/internal/domains/auth/service"
	memberRepository "seatdesk/internal/domains/member/repository"
	memberService "seatdesk/internal/domains/member/service"
	occupancyService "seatdesk/internal/domains/occupancy/service"
	roomRepository "seatdesk/internal/domains/room/repository"
	roomService "seatdesk/internal/domains/room/service"
	seatService "seatdesk/internal/domains/seat/service"
	transitionService "seatdesk/internal/domains/transition/service"

	attendanceHandler "seatdesk/internal/handlers/attendance"
	authHandler "seatdesk/internal/handlers/auth"
	memberHandler "seatdesk/internal/handlers/member"
	occupancyHandler "seatdesk/internal/handlers/occupancy"
	roomHandler "seatdesk/internal/handlers/room"

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
	s3.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	transaction.New,
)

var repositories = wire.NewSet(
	roomRepository.New,
	memberRepository.New,
	attendanceRepository.New,
)

var attendanceDomain = wire.NewSet(
	attendanceService.NewPresence,
	attendanceService.New,
	seatService.New,
	transitionService.NewGate,
	transitionService.New,
)

var domains = wire.NewSet(
	repositories,
	attendanceDomain,
	authService.New,
	roomService.New,
	memberService.New,
	occupancyService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	memberHandler.New,
	roomHandler.New,
	attendanceHandler.New,
	occupancyHandler.New,
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
