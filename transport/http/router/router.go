package router

import (
	"seatdesk/internal/handlers/attendance"
	"seatdesk/internal/handlers/auth"
	"seatdesk/internal/handlers/member"
	"seatdesk/internal/handlers/occupancy"
	"seatdesk/internal/handlers/room"
	"seatdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	Member     member.Handler
	Room       room.Handler
	Attendance attendance.Handler
	Occupancy  occupancy.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Member.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Attendance.Router(routerGroup)
		r.DomainHandlers.Occupancy.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
