package response

import (
	"errors"
	"fmt"
	"net/http"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
	"seatdesk/shared/logger"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in {"data": ...}.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError answers with the status carried by err. Errors that are not a
// failure.Failure are reported as a bare 500 so driver messages stay in the logs.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure

	code := failure.GetCode(err)
	msg := http.StatusText(code)

	if errors.As(err, &fail) {
		msg = fail.Message
	}

	response(writer, code, Error{Error: &msg})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown answers probes during the shutdown grace period.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// StartEvents switches the response to a server-sent event stream.
func StartEvents(writer http.ResponseWriter) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeEventStream)
	writer.Header().Set(constant.RequestHeaderCacheControl, "no-cache")
	writer.Header().Set(constant.RequestHeaderConnection, "keep-alive")
	writer.WriteHeader(http.StatusOK)
}

// WithEvent writes one server-sent event and flushes it to the client.
func WithEvent(writer http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if _, err := fmt.Fprintf(writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	if err := http.NewResponseController(writer).Flush(); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}

	return nil
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
