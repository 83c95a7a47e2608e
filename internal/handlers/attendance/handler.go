package attendance

import (
	"net/http"
	"seatdesk/infras/otel"
	"seatdesk/internal/domains/attendance/model/dto"
	"seatdesk/internal/domains/attendance/service"
	transitionDto "seatdesk/internal/domains/transition/model/dto"
	transitionService "seatdesk/internal/domains/transition/service"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/timezone"
	"seatdesk/shared/validator"
	"seatdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	engine transitionService.Engine
	report service.Report
	otel   otel.Otel
}

func New(engine transitionService.Engine, report service.Report, otel otel.Otel) Handler {
	return Handler{
		engine: engine,
		report: report,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/attendance", func(routerGroup chi.Router) {
		routerGroup.Post("/toggle", handler.Toggle)
		routerGroup.Get("/logs", handler.GetLogs)
		routerGroup.Get("/roster", handler.GetRoster)
	})
}

// Toggle records a scan: a member outside checks in, a member inside checks out.
// @Summary Toggle a member in or out
// @Description Flip a member's presence. General members get a seat on check-in. Scans on a busy channel are rejected.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param X-Input-Channel header string false "Scanner channel, overrides the body"
// @Param request body transitionDto.ToggleRequest true "Toggle Request"
// @Success 200 {object} response.Data[transitionDto.ToggleResponse] "New state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/attendance/toggle [post]
// @Security BearerAuth
func (handler *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Toggle")
	defer scope.End()

	req := transitionDto.ToggleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if channel := r.Header.Get(constant.RequestHeaderInputChannel); channel != constant.Empty {
		req.Channel = channel
	}

	res, err := handler.engine.ToggleFromChannel(ctx, req.Channel, req.MemberID, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("member_id", req.MemberID).Msg("toggle rejected")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Member toggled " + res.Status)

	response.WithJSON(w, http.StatusOK, res)
}

// GetLogs reports attendance in a day range.
// @Summary Get attendance logs
// @Description List logs between start and end (inclusive days, default today), newest first.
// @Tags Attendance
// @Produce json
// @Param start query string false "First day, YYYY-MM-DD"
// @Param end query string false "Last day, YYYY-MM-DD"
// @Param member_id query string false "Only this member"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetLogsResponse] "Logs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/attendance/logs [get]
// @Security BearerAuth
func (handler *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	query := r.URL.Query()

	req := dto.GetLogsRequest{
		Start:    query.Get(constant.RequestParamStartDate),
		End:      query.Get(constant.RequestParamEndDate),
		MemberID: query.Get(constant.RequestParamMemberID),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	logs, err := handler.report.GetLogs(ctx, req, queryParams, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get attendance logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, logs)
}

// GetRoster lists active members with whether they are inside.
// @Summary Get the attendance roster
// @Tags Attendance
// @Produce json
// @Param search query string false "Match name or mobile"
// @Success 200 {object} response.Data[[]dto.RosterEntry] "Roster"
// @Failure 500 {object} response.Error
// @Router /v1/attendance/roster [get]
// @Security BearerAuth
func (handler *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoster")
	defer scope.End()

	roster, err := handler.report.Roster(ctx, r.URL.Query().Get(constant.RequestParamSearch), timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get roster")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, roster)
}
