package occupancy

import (
	"context"
	"net/http"
	"seatdesk/config"
	"seatdesk/infras/otel"
	"seatdesk/internal/domains/occupancy/service"
	"seatdesk/shared/constant"
	"seatdesk/shared/timezone"
	"seatdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const eventRoomStatus = "room_status"

type Handler struct {
	service service.Occupancy
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Occupancy, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/occupancy", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSummary)
		routerGroup.Get("/rooms/{id}", handler.GetRoomStatus)
		routerGroup.Get("/rooms/{id}/stream", handler.StreamRoomStatus)
	})
}

// GetSummary counts occupancy per room.
// @Summary Get occupancy summary
// @Tags Occupancy
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse] "Per-room counts"
// @Failure 500 {object} response.Error
// @Router /v1/occupancy [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetRoomStatus classifies every seat of a room.
// @Summary Get a room's seat grid
// @Tags Occupancy
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomStatusResponse] "Seat grid"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	status, err := handler.service.GetSeatStatus(ctx, id, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// StreamRoomStatus pushes the seat grid as server-sent events until the client goes away.
// @Summary Stream a room's seat grid
// @Tags Occupancy
// @Produce text/event-stream
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomStatusResponse "room_status events"
// @Failure 404 {object} response.Error
// @Router /v1/occupancy/rooms/{id}/stream [get]
// @Security BearerAuth
func (handler *Handler) StreamRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StreamRoomStatus")
	defer scope.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	id := chi.URLParam(r, constant.RequestParamID)
	interval := handler.cfg.Library.OccupancyRefresh()

	updates, err := handler.service.Watch(ctx, id, interval)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to watch room")

		response.WithError(w, err)

		return
	}

	response.StartEvents(w)

	// updates is closed by Watch once ctx ends, so a failed write cancels and keeps draining.
	for status := range updates {
		if ctx.Err() != nil {
			continue
		}

		if err := response.WithEvent(w, eventRoomStatus, status); err != nil {
			log.Warn().Err(err).Str("room_id", id).Msg("occupancy stream closed")
			cancel()
		}
	}
}
