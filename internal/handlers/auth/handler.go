package auth

import (
	"context"
	"net/http"
	"seatdesk/infras/otel"
	"seatdesk/internal/domains/auth/model/dto"
	"seatdesk/internal/domains/auth/service"
	"seatdesk/shared/constant"
	"seatdesk/shared/validator"
	"seatdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/unlock", handler.Unlock)
		r.Post("/refresh", handler.RefreshToken)
	})
}

// issue decodes T from the body and answers with the token pair fn returns.
func issue[T any](w http.ResponseWriter, r *http.Request, scope otel.Scope, action string, fn func(context.Context, T) (dto.TokenResponse, error)) {
	var req T

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("action", action).Msg("rejected auth request body")

		response.WithError(w, err)

		return
	}

	res, err := fn(r.Context(), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("action", action).Msg("failed to issue tokens")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("tokens issued")

	response.WithJSON(w, http.StatusOK, res)
}

// Unlock exchanges the operator PIN for a token pair.
// @Summary Unlock the front desk
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.UnlockRequest true "Operator PIN"
// @Success 200 {object} response.Data[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/unlock [post]
func (handler *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Unlock")
	defer scope.End()

	issue(w, r.WithContext(ctx), scope, "unlock", handler.service.Unlock)
}

// RefreshToken rotates the token pair.
// @Summary Refresh operator tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	issue(w, r.WithContext(ctx), scope, "refresh", handler.service.RefreshToken)
}
