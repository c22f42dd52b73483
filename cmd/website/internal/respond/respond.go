package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/lorenzwed/lorenzwed/pkg/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, value any) {
	httphelpers.WriteJson(w, status, value)
}

func OK(w http.ResponseWriter, value any) {
	httphelpers.JsonOK(w, value)
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest

	case errors.Is(err, models.ErrAuthentication), errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

/*
Error writes {"error": message}. Only messages carried by a models.UserError
reach the client; anything else is logged and replaced with a generic one.
*/
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	message, ok := models.UserMessage(err)

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	if !ok {
		message = http.StatusText(status)

		if status == http.StatusInternalServerError {
			message = "An unexpected error occurred. Please try again later."
		}
	}

	JSON(w, status, ErrorResponse{Error: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	httphelpers.JsonBadRequest(w, ErrorResponse{Error: message})
}
