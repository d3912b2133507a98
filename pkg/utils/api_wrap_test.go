package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelwise/pkg/aiclient"
)

func runHandleServiceError(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleServiceError_GenerationFailures(t *testing.T) {
	cases := map[aiclient.FailureKind]int{
		aiclient.KindMissingCredential:      http.StatusServiceUnavailable,
		aiclient.KindInvalidCredentialShape: http.StatusServiceUnavailable,
		aiclient.KindInvalidCredential:      http.StatusServiceUnavailable,
		aiclient.KindRateLimited:            http.StatusTooManyRequests,
		aiclient.KindCanceled:               http.StatusRequestTimeout,
		aiclient.KindNetworkError:           http.StatusGatewayTimeout,
		aiclient.KindServiceError:           http.StatusBadGateway,
		aiclient.KindNoCandidates:           http.StatusBadGateway,
		aiclient.KindBadRequest:             http.StatusBadGateway,
	}

	for kind, want := range cases {
		failure := &aiclient.Failure{Kind: kind, Message: "classified " + string(kind)}
		code, body := runHandleServiceError(t, fmt.Errorf("wrapped: %w", failure))

		assert.Equal(t, want, code, kind)
		assert.Equal(t, "classified "+string(kind), body.Message)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "trace-1", body.TraceID)
	}
}

func TestHandleServiceError_Sentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalidDateRange, http.StatusBadRequest},
		{ErrInvalidBudget, http.StatusBadRequest},
		{ErrDestinationNotFound, http.StatusNotFound},
		{ErrEmailAlreadyExists, http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrItineraryUnavailable, http.StatusUnprocessableEntity},
		{fmt.Errorf("insert: %w", ErrDatabaseError), http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, _ := runHandleServiceError(t, tc.err)
		assert.Equal(t, tc.want, code, tc.err.Error())
	}
}

func TestRespondSuccess_WithoutTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, map[string]int{"n": 1}, "ok")

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.Code)
	assert.Empty(t, body.TraceID)
}
