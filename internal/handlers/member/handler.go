package member

import (
	"net/http"
	"seatdesk/infras/otel"
	attendanceDto "seatdesk/internal/domains/attendance/model/dto"
	attendanceService "seatdesk/internal/domains/attendance/service"
	"seatdesk/internal/domains/member/model"
	"seatdesk/internal/domains/member/model/dto"
	"seatdesk/internal/domains/member/service"
	"seatdesk/shared"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"
	"seatdesk/shared/validator"
	"seatdesk/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formPhoto = "photo"

type Handler struct {
	service  service.Member
	presence attendanceService.Presence
	otel     otel.Otel
}

func New(service service.Member, presence attendanceService.Presence, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		presence: presence,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/members", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMember)
		routerGroup.Get("/", handler.GetMembers)
		routerGroup.Get("/{id}", handler.GetMemberByID)
		routerGroup.Patch("/{id}", handler.UpdateMember)
		routerGroup.Delete("/{id}", handler.DeleteMember)
		routerGroup.Get("/{id}/presence", handler.GetPresence)
	})
}

// CreateMember admits a new member.
// @Summary Admit a member
// @Description Admit a member. Reserved members need a room and a free seat within its capacity.
// @Tags Member
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param mobile formData string true "Mobile number"
// @Param seat_type formData string true "Reserved or General"
// @Param room_id formData string false "Room ID, required for Reserved"
// @Param seat_no formData integer false "Seat number, required for Reserved"
// @Param shift formData string false "Morning, Evening or Full Day"
// @Param start_time formData string false "Shift start HH:MM"
// @Param end_time formData string false "Shift end HH:MM"
// @Param photo formData file false "Member photo"
// @Success 201 {object} response.Data[dto.MemberResponse] "Member admitted"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members [post]
// @Security BearerAuth
func (handler *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMember")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateMemberRequest{
		Name:             r.FormValue("name"),
		FathersName:      r.FormValue("fathers_name"),
		Address:          r.FormValue("address"),
		Mobile:           r.FormValue("mobile"),
		EmergencyContact: r.FormValue("emergency_contact"),
		Status:           r.FormValue("status"),
		SeatType:         r.FormValue("seat_type"),
		RoomID:           r.FormValue("room_id"),
		Shift:            r.FormValue("shift"),
		StartTime:        r.FormValue("start_time"),
		EndTime:          r.FormValue("end_time"),
		AdmissionDate:    r.FormValue("admission_date"),
	}

	req.SeatNo = formInt(r, "seat_no")
	req.MonthlyFee = formFloat(r, "monthly_fee")

	file, fileHeader, err := r.FormFile(formPhoto)
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	member, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Member admitted by user " + user)

	response.WithJSON(w, http.StatusCreated, member)
}

// GetMembers lists members.
// @Summary Get all members
// @Description Retrieve members with optional filters and pagination.
// @Tags Member
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param status query string false "Active or Inactive"
// @Param seat_type query string false "Reserved or General"
// @Param room_id query string false "Filter by room"
// @Success 200 {object} response.Data[dto.GetMembersResponse] "List of members"
// @Failure 500 {object} response.Error
// @Router /v1/members [get]
func (handler *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMembers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	filterGroup.AddIfPresent(gDto.Filter{
		Field:    model.FieldName,
		Operator: gDto.FilterOperatorLike,
		Value:    query.Get(model.FieldName),
		Table:    model.TableName,
	})

	for _, field := range []string{model.FieldStatus, model.FieldSeatType, model.FieldRoomID} {
		filterGroup.AddIfPresent(gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    query.Get(field),
			Table:    model.TableName,
		})
	}

	members, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get members")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, members)
}

// GetMemberByID retrieves a member.
// @Summary Get a member by ID
// @Tags Member
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Data[dto.MemberResponse] "Member details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id} [get]
func (handler *Handler) GetMemberByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMemberByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	member, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get member by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, member)
}

// UpdateMember edits a member.
// @Summary Update a member by ID
// @Description Edit member fields. Switching to General clears the seat, switching to Reserved needs a room and seat.
// @Tags Member
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Member ID"
// @Param photo formData file false "Member photo"
// @Success 200 {object} response.Message "Member updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateMemberRequest{
		Name:             r.FormValue("name"),
		FathersName:      r.FormValue("fathers_name"),
		Address:          r.FormValue("address"),
		Mobile:           r.FormValue("mobile"),
		EmergencyContact: r.FormValue("emergency_contact"),
		Status:           r.FormValue("status"),
		Shift:            r.FormValue("shift"),
		StartTime:        r.FormValue("start_time"),
		EndTime:          r.FormValue("end_time"),
		AdmissionDate:    r.FormValue("admission_date"),
		SeatType:         r.FormValue("seat_type"),
		RoomID:           r.FormValue("room_id"),
	}

	req.SeatNo = formInt(r, "seat_no")
	req.MonthlyFee = formFloat(r, "monthly_fee")

	file, fileHeader, err := r.FormFile(formPhoto)
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Member updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Member updated successfully")
}

// DeleteMember removes a member together with their attendance history.
// @Summary Delete a member by ID
// @Tags Member
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Message "Member deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Member deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Member deleted successfully")
}

// GetPresence reports whether a member is inside right now.
// @Summary Get a member's presence
// @Tags Member
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Data[attendanceDto.PresenceResponse] "Presence"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id}/presence [get]
func (handler *Handler) GetPresence(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPresence")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	presence, err := handler.presence.Resolve(ctx, id, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve presence")

		response.WithError(w, err)

		return
	}

	res := attendanceDto.PresenceResponse{}
	res.FromModel(presence)

	response.WithJSON(w, http.StatusOK, res)
}

func formInt(r *http.Request, key string) int {
	value := r.FormValue(key)
	if value == constant.Empty {
		return 0
	}

	i, err := shared.ConvertStringToInt(value)
	if err != nil {
		return 0
	}

	return i
}

func formFloat(r *http.Request, key string) float64 {
	value := r.FormValue(key)
	if value == constant.Empty {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Error().Err(err).Str("value", value).Msg("failed to convert string to float")

		return 0
	}

	return f
}
