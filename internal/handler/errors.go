package handler

import (
	"errors"
	"log/slog"
	"net/http"

	customError "github.com/Amaral-Gabriel/daily-loan-pay/pkg/errors"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/response"
)

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, customError.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, customError.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, customError.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, customError.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, customError.ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a service error. Server side failures are logged and
// their cause is kept out of the response body.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)

	code, message := "INTERNAL_ERROR", "internal error"
	var be *customError.BusinessError
	if errors.As(err, &be) {
		code, message = be.Code, be.Message
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	response.Error(w, status, code, message)
}
