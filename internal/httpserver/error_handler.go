package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"online-bookstore/internal/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps known domain errors to their HTTP codes, logs
// unexpected errors without leaking details to the client, and renders every
// error as {"error": "<message>"}.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log *slog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		// The sentinel text at the end of the chain is an internal
		// marker; clients get only the descriptive part.
		msg := strings.TrimSuffix(err.Error(), ": "+service.ErrValidation.Error())
		return http.StatusBadRequest, msg
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusBadRequest, service.ErrDuplicateEmail.Error()
	case errors.Is(err, service.ErrDuplicateInCart):
		return http.StatusBadRequest, service.ErrDuplicateInCart.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error("unhandled error",
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return http.StatusInternalServerError, "internal server error"
}
