package services

import (
	"context"
	"testing"

	"github.com/ripple-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestResolveOrProvision_CreatesOnFirstSight(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.users.ResolveOrProvision(ctx(), ExternalIdentity{
		FirebaseUID: "fb-123",
		Email:       "ada@example.com",
		Name:        "Ada",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	// Username defaults to the local part of the email.
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, int64(1), env.countRows(t, &models.User{}, ""))
}

func TestResolveOrProvision_Idempotent(t *testing.T) {
	env := setupTestEnv(t)
	ext := ExternalIdentity{FirebaseUID: "fb-123", Email: "ada@example.com", Username: "ada"}

	first, err := env.users.ResolveOrProvision(ctx(), ext)
	require.NoError(t, err)
	second, err := env.users.ResolveOrProvision(ctx(), ext)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), env.countRows(t, &models.User{}, ""))
}

// userRepoStub lets a test drive the provisioning race without a second
// connection: the lookup misses, the insert loses to a concurrent writer,
// the re-fetch finds the winner's row.
type userRepoStub struct {
	getByFirebaseUID func(ctx context.Context, uid string) (*models.User, error)
	createUser       func(ctx context.Context, user *models.User) error
}

func (s *userRepoStub) CreateUser(ctx context.Context, user *models.User) error {
	return s.createUser(ctx, user)
}
func (s *userRepoStub) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *userRepoStub) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	return s.getByFirebaseUID(ctx, uid)
}
func (s *userRepoStub) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *userRepoStub) GetSuggested(ctx context.Context, excludeUserID string, limit int) ([]models.SuggestedUser, error) {
	return nil, nil
}

func TestResolveOrProvision_LostInsertRaceResolvesByRefetch(t *testing.T) {
	winner := &models.User{ID: "winner", FirebaseUID: "fb-123", Email: "ada@example.com", Username: "ada"}

	calls := 0
	stub := &userRepoStub{
		getByFirebaseUID: func(_ context.Context, _ string) (*models.User, error) {
			calls++
			if calls == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		},
		createUser: func(_ context.Context, _ *models.User) error {
			return gorm.ErrDuplicatedKey
		},
	}

	svc := NewUserService(stub, nil, nil)
	user, err := svc.ResolveOrProvision(ctx(), ExternalIdentity{FirebaseUID: "fb-123", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "winner", user.ID)
	assert.Equal(t, 2, calls)
}

func TestGetProfileByUsername_MissingReturnsNil(t *testing.T) {
	env := setupTestEnv(t)

	profile, err := env.users.GetProfileByUsername(ctx(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetProfileByUsername_Counts(t *testing.T) {
	env := setupTestEnv(t)
	ada := env.createUser(t, "ada")
	bob := env.createUser(t, "bob")
	eve := env.createUser(t, "eve")

	// bob and eve follow ada; ada follows bob; ada has two posts.
	require.NoError(t, env.db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: ada.ID}).Error)
	require.NoError(t, env.db.Create(&models.Follow{FollowerID: eve.ID, FollowingID: ada.ID}).Error)
	require.NoError(t, env.db.Create(&models.Follow{FollowerID: ada.ID, FollowingID: bob.ID}).Error)
	env.createPost(t, ada.ID, "one", timeAt(1))
	env.createPost(t, ada.ID, "two", timeAt(2))

	profile, err := env.users.GetProfileByUsername(ctx(), "ada")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, int64(2), profile.FollowersCount)
	assert.Equal(t, int64(1), profile.FollowingCount)
	assert.Equal(t, int64(2), profile.PostsCount)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	env := setupTestEnv(t)
	ada := env.createUser(t, "ada")

	updated, err := env.users.UpdateProfile(ctx(), ada.ID, models.UpdateProfileRequest{
		Name:     "Ada Lovelace",
		Bio:      "first programmer",
		Location: "London",
		Website:  "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "first programmer", updated.Bio)
	assert.Equal(t, "London", updated.Location)
	// Identity fields are untouched.
	assert.Equal(t, "ada", updated.Username)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestGetSuggestedUsers_ExcludesSelfAndFollowed(t *testing.T) {
	env := setupTestEnv(t)
	ada := env.createUser(t, "ada")
	bob := env.createUser(t, "bob")
	eve := env.createUser(t, "eve")
	require.NoError(t, env.db.Create(&models.Follow{FollowerID: ada.ID, FollowingID: bob.ID}).Error)

	suggested := env.users.GetSuggestedUsers(ctx(), ada.ID)
	require.Len(t, suggested, 1)
	assert.Equal(t, eve.ID, suggested[0].ID)
}

func TestGetSuggestedUsers_DegradesToEmptyOnFailure(t *testing.T) {
	stub := &userRepoStub{}
	stub.getByFirebaseUID = func(_ context.Context, _ string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewUserService(&failingUserRepo{userRepoStub: stub}, nil, nil)

	suggested := svc.GetSuggestedUsers(ctx(), "someone")
	assert.NotNil(t, suggested)
	assert.Empty(t, suggested)
}

type failingUserRepo struct {
	*userRepoStub
}

func (f *failingUserRepo) GetSuggested(ctx context.Context, excludeUserID string, limit int) ([]models.SuggestedUser, error) {
	return nil, gorm.ErrInvalidDB
}
