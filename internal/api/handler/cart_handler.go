package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/core/ports"
)

// CartHandler serves cart ledger operations.
type CartHandler struct {
	service ports.StorefrontService
}

func NewCartHandler(service ports.StorefrontService) *CartHandler {
	return &CartHandler{service: service}
}

// AddItem handles POST /v1/cart/items.
//
// @Summary      Add one unit of a product
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Product to add"
// @Success      200   {object}  stateResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	v, err := h.service.AddToCart(c.Request().Context(), vid, req.ProductID)
	if err != nil {
		return surface(err, "")
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// RemoveItem handles DELETE /v1/cart/items/:product_id. Removing a product
// that is not in the cart succeeds and changes nothing.
//
// @Summary      Remove a product line
// @Tags         cart
// @Produce      json
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  stateResponse
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	v, err := h.service.RemoveFromCart(c.Request().Context(), vid, c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// Merge handles POST /v1/cart/merge.
//
// @Summary      Fold a batch of lines into the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      mergeCartRequest  true  "Lines to merge"
// @Success      200   {object}  stateResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/merge [post]
func (h *CartHandler) Merge(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	var req mergeCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	v, err := h.service.MergeCart(c.Request().Context(), vid, toCartLines(req.Items))
	if err != nil {
		return surface(err, "")
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}
