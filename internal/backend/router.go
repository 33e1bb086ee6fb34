package backend

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/ports"
	httpinfra "github.com/laserstudio/storefront/internal/infrastructure/http"
	"github.com/laserstudio/storefront/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance for the catalog backend.
func NewRouter(svc ports.CatalogService, log zerolog.Logger, checks ...handlers.Check) *echo.Echo {
	e := httpinfra.NewServer(log)
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Use(echoprometheus.NewMiddleware("catalogd"))

	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadinessHandler(checks...)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	h := NewHandler(svc)

	e.GET("/categories", h.Categories)
	e.GET("/products", h.Products)
	e.GET("/portfolio", h.Portfolio)

	e.POST("/login", h.Login)
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/login", h.PasswordLogin)

	e.POST("/order", h.Order)
	e.POST("/contact", h.Contact)

	return e
}
