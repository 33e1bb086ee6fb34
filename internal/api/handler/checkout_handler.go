package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

const (
	orderFailedText   = "Order could not be placed"
	contactFailedText = "Failed to send"
)

// CheckoutHandler serves order placement and the contact form.
type CheckoutHandler struct {
	service ports.StorefrontService
}

func NewCheckoutHandler(service ports.StorefrontService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Checkout handles POST /v1/checkout. An anonymous visitor gets outcome
// "login_required" and is moved to the account view; nothing is submitted.
//
// @Summary      Place an order for the cart
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  checkoutResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	res, v, err := h.service.Checkout(c.Request().Context(), vid)
	if err != nil {
		return surface(err, orderFailedText)
	}
	return c.JSON(http.StatusOK, checkoutResponse{
		Outcome: string(res.Outcome),
		OrderID: res.OrderID,
		Message: res.Message,
		State:   toStateResponse(v),
	})
}

// Contact handles POST /v1/contact.
//
// @Summary      Send a project brief
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Brief"
// @Success      200   {object}  contactResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/contact [post]
func (h *CheckoutHandler) Contact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	status, err := h.service.SubmitContact(c.Request().Context(), domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return surface(err, contactFailedText)
	}
	return c.JSON(http.StatusOK, contactResponse{Status: status})
}
