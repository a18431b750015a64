package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/middleware"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/repositories"
	"github.com/ripple-social/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupNotificationHandler(t *testing.T) (*NotificationHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	))

	repo := repositories.NewPostgresNotificationRepository(db)
	return NewNotificationHandler(services.NewNotificationService(repo)), db
}

func TestGetNotifications_AnonymousGetsEmptyList(t *testing.T) {
	handler, _ := setupNotificationHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Notifications []models.Notification `json:"notifications"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Data.Notifications)
}

func TestGetNotifications_ReturnsCallerRows(t *testing.T) {
	handler, db := setupNotificationHandler(t)

	ada := &models.User{Email: "ada@example.com", Username: "ada", FirebaseUID: "fb-ada"}
	bob := &models.User{Email: "bob@example.com", Username: "bob", FirebaseUID: "fb-bob"}
	require.NoError(t, db.Create(ada).Error)
	require.NoError(t, db.Create(bob).Error)
	require.NoError(t, db.Create(&models.Notification{
		UserID:    ada.ID,
		CreatorID: bob.ID,
		Type:      models.NotificationFollow,
	}).Error)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserIDKey, ada.ID)

	require.NoError(t, handler.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Notifications []models.Notification `json:"notifications"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Notifications, 1)
	assert.Equal(t, models.NotificationFollow, body.Data.Notifications[0].Type)
	assert.Equal(t, bob.ID, body.Data.Notifications[0].CreatorID)
}

func TestMarkRead_BadPayloadRejected(t *testing.T) {
	handler, _ := setupNotificationHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/read", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserIDKey, "user-1")

	err := handler.MarkRead(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestRespondError_CodeToStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.NewUnauthenticatedError(), http.StatusUnauthorized},
		{models.NewForbiddenError("not yours"), http.StatusForbidden},
		{models.NewNotFoundError("post"), http.StatusNotFound},
		{models.NewInvalidOperationError("no self follow"), http.StatusBadRequest},
		{models.NewStoreError("store failed", assert.AnError), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, respondError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code)

		var body struct {
			Success bool   `json:"success"`
			Code    string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.NotEmpty(t, body.Code)
	}
}
