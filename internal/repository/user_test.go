package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"devhub/internal/cache"
	"devhub/internal/models"
	"devhub/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedName  string
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email"}).
					AddRow(1, "jane", "jane@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedName: "jane",
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedName, user.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1, 1).
		WillReturnError(errors.New("connection timeout"))

	user, err := repo.GetByID(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.GetByName(ctx, "jane")
	require.NoError(t, err)
	require.NotNil(t, byName)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "jane", Email: "jane@example.com", Password: "hash"}))

	err := repo.Create(ctx, &models.User{Name: "other", Email: "jane@example.com", Password: "hash"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_DeleteAccount(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, profiles.Save(ctx, &models.Profile{UserID: user.ID, Status: "Developer"}))
	_, err := profiles.AddExperience(ctx, user.ID, &models.Experience{Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)

	post := &models.Post{Text: "hello", UserID: user.ID}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, posts.AddLike(ctx, user.ID, post.ID))
	require.NoError(t, comments.Create(ctx, &models.Comment{Text: "hi", UserID: user.ID, PostID: post.ID}))

	require.NoError(t, users.DeleteAccount(ctx, user.ID))

	_, err = users.GetByID(ctx, user.ID)
	assert.Error(t, err)
	_, err = profiles.GetByUserID(ctx, user.ID)
	assert.Error(t, err)
	_, err = posts.GetByID(ctx, post.ID)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Experience{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserRepository_DeleteAccount_DropsCachedViews(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := testutil.NewTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, profiles.Save(ctx, &models.Profile{UserID: user.ID, Status: "Developer"}))
	post := &models.Post{Text: "hello", UserID: user.ID}
	require.NoError(t, posts.Create(ctx, post))

	// Warm the cached views the way the read paths would
	cache.SetJSON(ctx, cache.ProfileKey(user.ID), models.Profile{UserID: user.ID, Status: "Developer"}, cache.ProfileTTL)
	cache.SetJSON(ctx, cache.ProfilesListKey, []models.Profile{{UserID: user.ID}}, cache.ProfileListTTL)
	cache.SetJSON(ctx, cache.PostKey(post.ID), post, cache.PostTTL)
	cache.SetJSON(ctx, cache.PostsListKey, []models.Post{*post}, cache.PostTTL)
	require.True(t, mr.Exists(cache.ProfileKey(user.ID)))

	require.NoError(t, users.DeleteAccount(ctx, user.ID))

	assert.False(t, mr.Exists(cache.ProfileKey(user.ID)))
	assert.False(t, mr.Exists(cache.ProfilesListKey))
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))
	assert.False(t, mr.Exists(cache.PostsListKey))

	// A follow-up read cannot resurrect the deleted profile from cache
	var stale models.Profile
	assert.False(t, cache.GetJSON(ctx, cache.ProfileKey(user.ID), &stale))
}

func TestUserRepository_DeleteAccount_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)

	err := repo.DeleteAccount(context.Background(), 9999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
