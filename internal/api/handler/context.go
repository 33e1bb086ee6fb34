package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/api/middleware"
)

// ctxVisitor extracts the visitor id injected by the Visitor middleware. Its
// absence means the route was mounted without the middleware.
func ctxVisitor(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextVisitorID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing visitor identity")
	}
	return id, nil
}
