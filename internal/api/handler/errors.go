package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// surface converts an error the visitor should see into an *echo.HTTPError.
// Remote rejections keep their 4xx status and carry the server's detail, or
// fallback when none was supplied. Anything else is returned unchanged for the
// central error handler.
func surface(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidationGap) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, domain.ValidationText(err))
	}

	var re *domain.RemoteError
	if !errors.As(err, &re) {
		return err
	}

	msg := domain.UserMessage(re, fallback)
	switch {
	case errors.Is(re, domain.ErrNetworkFailure):
		return echo.NewHTTPError(http.StatusServiceUnavailable, msg)
	case re.Status >= 400 && re.Status < 500:
		return echo.NewHTTPError(re.Status, msg)
	default:
		return echo.NewHTTPError(http.StatusBadGateway, msg)
	}
}
