package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/api/middleware"
	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// AuthHandler handles registration, login and logout. Login sets the
// session cookie plus the role cookie (UI cache); logout clears both.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=creator brand agency"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User *domain.User `json:"user"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie(token, 0))
	c.SetCookie(roleCookie(string(user.Role), 0))

	return c.JSON(http.StatusOK, authResponse{User: user})
}

// Logout destroys the session and clears both cookies. Clients that accept
// JSON get an acknowledgment body; browsers get a redirect to the root. A
// short-lived marker cookie lets the landing page show a one-shot notice.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	c.SetCookie(sessionCookie("", -1))
	c.SetCookie(roleCookie("", -1))
	c.SetCookie(&http.Cookie{
		Name:   middleware.LogoutMarkerCookie,
		Value:  "1",
		Path:   "/",
		MaxAge: 5,
	})

	if acceptsJSON(c) {
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func acceptsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// sessionCookie builds the session token cookie. maxAge < 0 expires it.
func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// roleCookie is readable by page scripts on purpose: it only drives UI.
func roleCookie(role string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.RoleCookie,
		Value:    role,
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	}
}
