package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// Cookie names are part of the external interface and case-sensitive.
const (
	// SessionCookie carries the opaque session token.
	SessionCookie = "collab_session"
	// RoleCookie caches the role for UI rendering only. It is never read
	// back for authorization; the session record is authoritative.
	RoleCookie = "collab_role"
	// LogoutMarkerCookie is a short-lived one-shot flag set on logout so the
	// landing page can show a "signed out" notice.
	LogoutMarkerCookie = "logged_out"
)

// Session resolves the acting identity and injects it into the request
// context. Two credentials are accepted:
//   - the opaque session cookie, resolved against the session store, or
//   - an Authorization: Bearer JWT signed with tokenSecret, for
//     server-to-server clients that have no cookie jar.
//
// Requests with neither fail with 401 before reaching the handler.
func Session(resolver ports.SessionResolver, tokenSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				identity, err := bearerIdentity(authHeader, tokenSecret)
				if err != nil {
					return err
				}
				setIdentity(c, identity)
				return next(c)
			}

			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			identity, err := resolver.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if err == domain.ErrUnauthenticated {
					return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
				}
				return err
			}

			setIdentity(c, identity)
			return next(c)
		}
	}
}

func setIdentity(c echo.Context, identity domain.Identity) {
	c.Set("user_id", identity.UserID)
	c.Set("role", string(identity.Role))
}

// bearerIdentity validates a signed API token and extracts the identity
// claims. Only HS256 is accepted.
func bearerIdentity(authHeader, tokenSecret string) (domain.Identity, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(tokenSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !domain.ValidRole(domain.Role(role)) {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
	}

	return domain.Identity{UserID: userID, Role: domain.Role(role)}, nil
}
