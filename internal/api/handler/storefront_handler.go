package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

// StorefrontHandler serves view navigation and category filters.
type StorefrontHandler struct {
	service ports.StorefrontService
}

func NewStorefrontHandler(service ports.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{service: service}
}

// State handles GET /v1/state.
//
// @Summary      Current storefront state
// @Tags         storefront
// @Produce      json
// @Param        X-Visitor-Token  header    string  false  "Visitor token"
// @Success      200              {object}  stateResponse
// @Router       /v1/state [get]
func (h *StorefrontHandler) State(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	v, err := h.service.State(c.Request().Context(), vid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// EnterView handles POST /v1/views/:view. The response renders what is known
// right now; catalog data fetched for the view shows up on later reads.
//
// @Summary      Enter a top-level view
// @Tags         storefront
// @Produce      json
// @Param        view  path      string  true  "home, categories, products, portfolio, clients, account or contact"
// @Success      200   {object}  stateResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/views/{view} [post]
func (h *StorefrontHandler) EnterView(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	view, ok := domain.ParseView(c.Param("view"))
	if !ok {
		return domain.ErrUnknownView
	}
	v, err := h.service.EnterView(c.Request().Context(), vid, view)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// SetFilter handles PUT /v1/filters/:domain.
//
// @Summary      Set the active category
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        domain  path      string         true  "products or portfolio"
// @Param        body    body      filterRequest  true  "Category key; empty or \"all\" clears"
// @Success      200     {object}  stateResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/filters/{domain} [put]
func (h *StorefrontHandler) SetFilter(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	d, ok := domain.ParseFilterDomain(c.Param("domain"))
	if !ok {
		return domain.ErrUnknownFilter
	}
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	v, err := h.service.SetFilter(c.Request().Context(), vid, d, req.Category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}
