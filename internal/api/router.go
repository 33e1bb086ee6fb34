package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/laserstudio/storefront/docs"
	"github.com/laserstudio/storefront/internal/api/handler"
	"github.com/laserstudio/storefront/internal/api/middleware"
	"github.com/laserstudio/storefront/internal/core/ports"
	httpinfra "github.com/laserstudio/storefront/internal/infrastructure/http"
	"github.com/laserstudio/storefront/internal/infrastructure/http/handlers"
)

// RouterConfig carries what the storefront routes need besides the service.
type RouterConfig struct {
	VisitorSecret string
	VisitorTTL    time.Duration
	Checks        []handlers.Check
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc ports.StorefrontService, cfg RouterConfig) *echo.Echo {
	e := httpinfra.NewServer(cfg.Logger)
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)
	e.Validator = handler.NewValidator()
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Operational routes (no visitor identity) ---
	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadinessHandler(cfg.Checks...)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Storefront routes ---
	storefront := handler.NewStorefrontHandler(svc)
	cart := handler.NewCartHandler(svc)
	session := handler.NewSessionHandler(svc)
	checkout := handler.NewCheckoutHandler(svc)

	v1 := e.Group("/v1", middleware.Visitor(cfg.VisitorSecret, cfg.VisitorTTL))

	v1.GET("/state", storefront.State)
	v1.POST("/views/:view", storefront.EnterView)
	v1.PUT("/filters/:domain", storefront.SetFilter)

	v1.POST("/cart/items", cart.AddItem)
	v1.DELETE("/cart/items/:product_id", cart.RemoveItem)
	v1.POST("/cart/merge", cart.Merge)

	v1.POST("/session/login", session.Login)
	v1.POST("/session/signup", session.Signup)
	v1.POST("/session/authenticate", session.Authenticate)
	v1.DELETE("/session", session.SignOut)

	v1.POST("/checkout", checkout.Checkout)
	v1.POST("/contact", checkout.Contact)

	return e
}
