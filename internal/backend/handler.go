package backend

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
	"github.com/laserstudio/storefront/pkg/catalogapi"
)

// Handler serves the catalog contract consumed by the storefront client.
type Handler struct {
	service ports.CatalogService
}

func NewHandler(service ports.CatalogService) *Handler {
	return &Handler{service: service}
}

// Categories handles GET /categories.
func (h *Handler) Categories(c echo.Context) error {
	cats, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]catalogapi.Category, 0, len(cats))
	for _, cat := range cats {
		out = append(out, catalogapi.Category{ID: catalogapi.ID(cat.Key), Slug: cat.Key, Name: cat.Label})
	}
	return c.JSON(http.StatusOK, out)
}

// Products handles GET /products.
func (h *Handler) Products(c echo.Context) error {
	products, err := h.service.Products(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]catalogapi.Product, 0, len(products))
	for _, p := range products {
		out = append(out, catalogapi.Product{
			ID:          catalogapi.ID(p.ID),
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			ImageURL:    p.ImageRef,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Portfolio handles GET /portfolio.
func (h *Handler) Portfolio(c echo.Context) error {
	items, err := h.service.Portfolio(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]catalogapi.PortfolioItem, 0, len(items))
	for _, it := range items {
		out = append(out, catalogapi.PortfolioItem{
			ID:          catalogapi.ID(it.ID),
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			ClientName:  it.ClientName,
			ImageURL:    it.ImageRef,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Login handles POST /login.
func (h *Handler) Login(c echo.Context) error {
	var req catalogapi.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u, err := h.service.Login(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUser(u))
}

// Signup handles POST /auth/signup.
func (h *Handler) Signup(c echo.Context) error {
	var req catalogapi.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u, err := h.service.Signup(c.Request().Context(), domain.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUser(u))
}

// PasswordLogin handles POST /auth/login.
func (h *Handler) PasswordLogin(c echo.Context) error {
	var req catalogapi.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u, err := h.service.PasswordLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUser(u))
}

type orderPlacedResponse struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Items     int    `json:"items"`
	CreatedAt string `json:"created_at"`
}

// Order handles POST /order.
func (h *Handler) Order(c echo.Context) error {
	var req catalogapi.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	lines := make([]domain.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, domain.CartLine{ProductID: it.ProductID, Quantity: it.Qty})
	}
	placed, err := h.service.PlaceOrder(c.Request().Context(), domain.Order{
		UserEmail:    req.UserEmail,
		Lines:        lines,
		Notes:        req.Notes,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, orderPlacedResponse{
		ID:        placed.ID,
		UserEmail: placed.UserEmail,
		Items:     len(placed.Lines),
		CreatedAt: placed.CreatedAt.Format(time.RFC3339),
	})
}

// Contact handles POST /contact.
func (h *Handler) Contact(c echo.Context) error {
	var req catalogapi.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	err := h.service.SubmitContact(c.Request().Context(), domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, struct{}{})
}

func toUser(u *domain.User) catalogapi.User {
	return catalogapi.User{Email: u.Email, Name: u.Name}
}
