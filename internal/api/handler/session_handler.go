package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

const authFailedText = "Authentication failed"

// SessionHandler serves sign-in and sign-out.
type SessionHandler struct {
	service ports.StorefrontService
}

func NewSessionHandler(service ports.StorefrontService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Login handles POST /v1/session/login.
//
// @Summary      Sign in by email
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email"
// @Success      200   {object}  stateResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	v, err := h.service.Login(c.Request().Context(), vid, req.Email)
	if err != nil {
		return surface(err, authFailedText)
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// Signup handles POST /v1/session/signup.
//
// @Summary      Create an account and sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      200   {object}  stateResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/signup [post]
func (h *SessionHandler) Signup(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	creds := domain.Credentials{Name: req.Name, Email: req.Email, Password: req.Password}
	v, err := h.service.Authenticate(c.Request().Context(), vid, domain.AuthModeSignup, creds)
	if err != nil {
		return surface(err, authFailedText)
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// Authenticate handles POST /v1/session/authenticate.
//
// @Summary      Sign in with a password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Credentials"
// @Success      200   {object}  stateResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/authenticate [post]
func (h *SessionHandler) Authenticate(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	creds := domain.Credentials{Email: req.Email, Password: req.Password}
	v, err := h.service.Authenticate(c.Request().Context(), vid, domain.AuthModeLogin, creds)
	if err != nil {
		return surface(err, authFailedText)
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}

// SignOut handles DELETE /v1/session. Nothing is sent to the remote service.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  stateResponse
// @Router       /v1/session [delete]
func (h *SessionHandler) SignOut(c echo.Context) error {
	vid, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	v, err := h.service.SignOut(c.Request().Context(), vid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStateResponse(v))
}
