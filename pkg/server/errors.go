package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/cluster-query-agent/pkg/errors"
	"github.com/NVIDIA/cluster-query-agent/pkg/serializer"
)

// Error codes written by the server itself.
const (
	ErrCodeRateLimitExceeded  = string(apperrors.ErrCodeRateLimitExceeded)
	ErrCodeInternalError      = string(apperrors.ErrCodeInternal)
	ErrCodeServiceUnavailable = string(apperrors.ErrCodeUnavailable)
	ErrCodeInvalidRequest     = string(apperrors.ErrCodeInvalidRequest)
	ErrCodeMethodNotAllowed   = string(apperrors.ErrCodeMethodNotAllowed)
	ErrCodeNotFound           = string(apperrors.ErrCodeNotFound)
)

// WriteError writes a structured ErrorResponse carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps a structured error to an HTTP status and writes it.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, details map[string]any) {
	code := apperrors.CodeOf(err)
	status := StatusFor(code)
	if message == "" {
		message = err.Error()
	}
	WriteError(w, r, status, string(code), message, status >= http.StatusInternalServerError, details)
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeMalformedInvocation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeOracleUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
