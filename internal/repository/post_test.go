package repository

import (
	"context"
	"testing"

	"devhub/internal/models"
	"devhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "jane", "jane@example.com")

	post := &models.Post{Text: "hello world", Name: user.Name, UserID: user.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Text)
	assert.Equal(t, user.ID, got.UserID)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Comments)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_List_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "jane", "jane@example.com")

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Post{Text: text, UserID: user.ID}))
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "first", posts[2].Text)
}

func TestPostRepository_Likes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "jane", "jane@example.com")

	post := &models.Post{Text: "likeable", UserID: user.ID}
	require.NoError(t, repo.Create(ctx, post))

	liked, err := repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.AddLike(ctx, user.ID, post.ID))

	liked, err = repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// A second like of the same post violates the unique index
	err = repo.AddLike(ctx, user.ID, post.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)

	likes, err := repo.ListLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	require.NoError(t, repo.RemoveLike(ctx, user.ID, post.ID))

	err = repo.RemoveLike(ctx, user.ID, post.ID)
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotLiked, appErr.Code)
}

func TestPostRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "jane", "jane@example.com")

	post := &models.Post{Text: "doomed", UserID: user.ID}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, posts.AddLike(ctx, user.ID, post.ID))
	require.NoError(t, comments.Create(ctx, &models.Comment{Text: "bye", UserID: user.ID, PostID: post.ID}))

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.GetByID(ctx, post.ID)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostRepository_Delete_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Delete(context.Background(), 404)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
