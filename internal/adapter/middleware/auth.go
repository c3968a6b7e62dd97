package middleware

import (
	"net/http"
	"strings"

	"estate-access-service/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth.claims"

// extractToken strips the "Bearer " prefix from the authorization header.
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// RequireAuth validates the bearer token and stashes its claims on the
// context. Missing or bad tokens are 401 before any handler runs.
func RequireAuth(tokens *auth.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization header is required"})
			}
			claims, err := tokens.ParseToken(extractToken(header))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireRoles gates a route to the given roles, compared case-insensitively.
// Must run after RequireAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			for _, r := range roles {
				if strings.EqualFold(claims.Role, r) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
		}
	}
}

// ClaimsFrom returns the authenticated claims, or nil outside RequireAuth.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
