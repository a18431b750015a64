package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/middleware"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/observability"
)

// getUserIDFromContext returns the actor id resolved by the auth middleware,
// or "" when the request is anonymous.
func getUserIDFromContext(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextUserIDKey).(string); ok {
		return id
	}
	return ""
}

func respondOK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func respondCreated(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": data})
}

// respondError maps an application error to its HTTP status and a
// success=false envelope. Store failures are logged with their cause; the
// client only ever sees the generic message.
func respondError(c echo.Context, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewStoreError("Internal server error", err)
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case models.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case models.CodeForbidden:
		status = http.StatusForbidden
	case models.CodeNotFound:
		status = http.StatusNotFound
	case models.CodeInvalidOperation:
		status = http.StatusBadRequest
	case models.CodeStoreFailure:
		observability.GlobalLogger.ErrorContext(c.Request().Context(), "store failure",
			"path", c.Path(), "error", appErr.Err)
	}

	return c.JSON(status, echo.Map{
		"success": false,
		"error":   appErr.Message,
		"code":    appErr.Code,
	})
}
