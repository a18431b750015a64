package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack over an in-memory store.
type testEnv struct {
	db            *gorm.DB
	users         *UserService
	posts         *PostService
	follows       *FollowService
	notifications *NotificationService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	return &testEnv{
		db:            db,
		users:         NewUserService(userRepo, followRepo, postRepo),
		posts:         NewPostService(db, postRepo, likeRepo, commentRepo, notificationRepo),
		follows:       NewFollowService(db, followRepo, notificationRepo),
		notifications: NewNotificationService(notificationRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:       username + "@example.com",
		Username:    username,
		FirebaseUID: "fb-" + username,
		Name:        username,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createPost(t *testing.T, authorID, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func (e *testEnv) countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	tx := e.db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}

func requireAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}

func ctx() context.Context {
	return context.Background()
}

// timeAt returns a fixed base time offset by n seconds, for deterministic
// created_at ordering.
func timeAt(n int) time.Time {
	return time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Second)
}
