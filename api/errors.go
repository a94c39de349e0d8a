package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hwpayoff/runtime/contracts"
)

// ErrorCode represents an API error code.
type ErrorCode string

// Error codes for API responses.
const (
	CodeInvalidInput        ErrorCode = "invalid_input"
	CodeEmptyWorkload       ErrorCode = "empty_workload"
	CodeDeveloperNotFound   ErrorCode = "developer_not_found"
	CodeModelNotFound       ErrorCode = "model_not_found"
	CodeComparisonNotFound  ErrorCode = "comparison_not_found"
	CodeUnknownHardware     ErrorCode = "unknown_hardware"
	CodeUnsupportedCapacity ErrorCode = "unsupported_capacity"
	CodeUnknownTrainingMode ErrorCode = "unknown_training_mode"
	CodeCancelled           ErrorCode = "cancelled"
	CodeTimeout             ErrorCode = "timeout"
	CodeInternalError       ErrorCode = "internal_error"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Code       ErrorCode
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MapError maps a domain error to an HTTPError.
func MapError(err error) *HTTPError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, contracts.ErrEmptyWorkload):
		return &HTTPError{http.StatusBadRequest, CodeEmptyWorkload, err}

	case errors.Is(err, contracts.ErrInvalidInput):
		return &HTTPError{http.StatusBadRequest, CodeInvalidInput, err}

	case errors.Is(err, contracts.ErrUnknownHardware):
		return &HTTPError{http.StatusBadRequest, CodeUnknownHardware, err}

	case errors.Is(err, contracts.ErrUnknownTrainingMode):
		return &HTTPError{http.StatusBadRequest, CodeUnknownTrainingMode, err}

	case errors.Is(err, contracts.ErrUnsupportedCapacity):
		return &HTTPError{http.StatusUnprocessableEntity, CodeUnsupportedCapacity, err}

	case errors.Is(err, contracts.ErrModelNotFound):
		return &HTTPError{http.StatusUnprocessableEntity, CodeModelNotFound, err}

	case errors.Is(err, contracts.ErrDeveloperNotFound):
		return &HTTPError{http.StatusNotFound, CodeDeveloperNotFound, err}

	case errors.Is(err, contracts.ErrComparisonNotFound):
		return &HTTPError{http.StatusNotFound, CodeComparisonNotFound, err}

	case errors.Is(err, context.Canceled):
		// 499: nginx convention for "client closed request"
		return &HTTPError{499, CodeCancelled, err}

	case errors.Is(err, context.DeadlineExceeded):
		return &HTTPError{http.StatusGatewayTimeout, CodeTimeout, err}

	default:
		return &HTTPError{http.StatusInternalServerError, CodeInternalError, err}
	}
}

// WriteError writes an error response to the HTTP response writer and
// returns the body encoding error, if any.
func WriteError(w http.ResponseWriter, err error) error {
	httpErr := MapError(err)
	if httpErr == nil {
		return nil
	}

	resp := ErrorDTO{
		Code:    string(httpErr.Code),
		Message: httpErr.Error(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)
	return json.NewEncoder(w).Encode(resp)
}
