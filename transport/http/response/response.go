package response

import (
	"encoding/json"
	"net/http"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

// Envelope is the shape of every body the API writes.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Data documents a single-object success body.
type Data[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

// List documents a collection success body.
type List[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []T  `json:"data"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Error struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// WithMessage sends a success response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Success: true, Message: message})
}

// WithJSON sends a success response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, Envelope{Success: true, Data: payload})
}

// WithList sends a success response with a collection and its size.
func WithList[T any](writer http.ResponseWriter, code int, payload []T) {
	if payload == nil {
		payload = []T{}
	}

	count := len(payload)

	response(writer, code, Envelope{Success: true, Data: payload, Count: &count})
}

// WithError maps err to its status code and kind. Errors that are not a
// failure.Failure are reported as validation errors.
func WithError(writer http.ResponseWriter, err error) {
	response(writer, failure.GetCode(err), Envelope{
		Message: err.Error(),
		Code:    string(failure.GetKind(err)),
	})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithError(writer, failure.TooManyRequests(constant.ResponseErrorRequestLimitExceeded))
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{Message: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{Message: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
