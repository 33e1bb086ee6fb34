package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors and everything handlers already surfaced.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnknownView):
		return http.StatusNotFound, "unknown view"
	case errors.Is(err, domain.ErrUnknownFilter):
		return http.StatusNotFound, "unknown filter"
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict, "your order is already being placed"
	case errors.Is(err, domain.ErrMissingOrderID):
		return http.StatusBadGateway, "order could not be placed"
	case errors.Is(err, domain.ErrValidationGap):
		return http.StatusUnprocessableEntity, domain.ValidationText(err)
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusServiceUnavailable, "Network error"
	case errors.Is(err, domain.ErrServerRejected):
		return http.StatusBadGateway, domain.UserMessage(err, "upstream request failed")
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
