package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelwise/pkg/aiclient"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// generationStatus maps a classified generation failure to an HTTP status.
func generationStatus(kind aiclient.FailureKind) int {
	switch kind {
	case aiclient.KindMissingCredential, aiclient.KindInvalidCredentialShape, aiclient.KindInvalidCredential:
		return http.StatusServiceUnavailable
	case aiclient.KindRateLimited:
		return http.StatusTooManyRequests
	case aiclient.KindCanceled:
		return http.StatusRequestTimeout
	case aiclient.KindNetworkError:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// HandleServiceError writes the error envelope for anything a service returns.
func HandleServiceError(c *gin.Context, err error) {
	var failure *aiclient.Failure

	switch {
	case errors.As(err, &failure):
		zap.L().Warn("generation failed",
			zap.String("trace_id", c.GetString("trace_id")),
			zap.String("kind", string(failure.Kind)),
			zap.String("model", failure.Model),
			zap.Int("upstream_status", failure.StatusCode),
		)
		RespondError(c, generationStatus(failure.Kind), failure.Message)
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, ErrInvalidDateRange):
		RespondError(c, http.StatusBadRequest, "End date must not be before start date")
	case errors.Is(err, ErrInvalidBudget):
		RespondError(c, http.StatusBadRequest, "Budget must be a non-negative number")
	case errors.Is(err, ErrItineraryUnavailable):
		RespondError(c, http.StatusUnprocessableEntity, "Could not generate a detailed plan from the response.")
	case errors.Is(err, ErrDestinationNotFound):
		RespondError(c, http.StatusNotFound, "Destination not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, "Session expired, please log in again")
	case errors.Is(err, ErrDatabaseError), errors.Is(err, ErrStorageError):
		zap.L().Error("storage error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
