package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/models"
)

// ContextUserIDKey is the Echo context key holding the resolved actor id.
// It is set exactly once here, at the request boundary; handlers pass it
// explicitly into service calls.
const ContextUserIDKey = "userID"

// JWTAuth verifies the session token issued at login and rejects requests
// without a resolvable caller identity.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := resolveUserID(c, secret)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

// OptionalJWTAuth resolves the caller identity when a valid token is
// present and leaves it empty otherwise. "No user" is not an error here.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := resolveUserID(c, secret); ok {
				c.Set(ContextUserIDKey, userID)
			}
			return next(c)
		}
	}
}

func resolveUserID(c echo.Context, secret string) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
