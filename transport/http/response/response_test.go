package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/shared/failure"
	"hotel/transport/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "room-1"})

	body := decode(t, rec)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"id": "room-1"}, body["data"])
	assert.NotContains(t, body, "count")
	assert.NotContains(t, body, "code")
}

func TestWithList(t *testing.T) {
	t.Run("count follows the payload", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithList(rec, http.StatusOK, []string{"a", "b"})

		body := decode(t, rec)

		assert.InDelta(t, 2, body["count"], 0)
		assert.Len(t, body["data"], 2)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithList[string](rec, http.StatusOK, nil)

		assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, rec.Body.String())
	})
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithMessage(rec, http.StatusOK, "Booking cancelled successfully")

	assert.JSONEq(t, `{"success":true,"message":"Booking cancelled successfully"}`, rec.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{name: "not found", err: failure.NotFound("Room not found"), wantCode: http.StatusNotFound, wantKind: "NOT_FOUND"},
		{name: "conflict", err: failure.Conflict("Room is already booked for these dates"), wantCode: http.StatusConflict, wantKind: "CONFLICT"},
		{name: "invalid state", err: failure.InvalidState("Room is not available"), wantCode: http.StatusBadRequest, wantKind: "INVALID_STATE"},
		{name: "unauthenticated", err: failure.Unauthorized("Not authorized, no token"), wantCode: http.StatusUnauthorized, wantKind: "UNAUTHENTICATED"},
		{name: "wrapped failure", err: fmt.Errorf("update: %w", failure.Forbidden("nope")), wantCode: http.StatusForbidden, wantKind: "FORBIDDEN"},
		{name: "plain error", err: errors.New("pq: invalid input syntax for type uuid"), wantCode: http.StatusBadRequest, wantKind: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			body := decode(t, rec)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantKind, body["code"])
			assert.Equal(t, tt.err.Error(), body["message"])
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, rec)["code"])
}
