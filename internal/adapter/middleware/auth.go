package middleware

import (
	"net/http"
	"strings"

	"creditsea-backend/internal/domain/user"
	"creditsea-backend/pkg/token"

	"github.com/labstack/echo/v4"
)

const claimsKey = "auth.claims"

// Auth validates the bearer token and stashes its claims on the context.
// Every protected route runs through here before any role check.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer"))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Access Denied. No token provided."})
			}
			claims, err := token.Parse(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token."})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireCapability gates a route on the caller's role capability table.
// SUPER_ADMIN passes every gate.
func RequireCapability(cap user.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden: No role assigned"})
			}
			role, err := user.ParseRole(claims.Role)
			if err != nil || !role.Can(cap) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden: insufficient role"})
			}
			return next(c)
		}
	}
}

// SetClaims stashes claims on the context the same way Auth does.
// Handler tests use it to simulate an authenticated request.
func SetClaims(c echo.Context, claims *token.Claims) {
	c.Set(claimsKey, claims)
}

// Claims returns the authenticated bearer's claims, or nil on
// unauthenticated routes.
func Claims(c echo.Context) *token.Claims {
	claims, _ := c.Get(claimsKey).(*token.Claims)
	return claims
}

// UserID returns the authenticated user id, or "" when unauthenticated.
func UserID(c echo.Context) string {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
