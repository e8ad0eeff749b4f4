package service

import (
	"context"
	"testing"

	"devhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub implements repository.UserRepository with overridable
// function fields. Unset fields behave as an empty store.
type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByNameFn     func(ctx context.Context, name string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
	deleteAccountFn func(ctx context.Context, id uint) error
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *userRepoStub) GetByName(ctx context.Context, name string) (*models.User, error) {
	if s.getByNameFn != nil {
		return s.getByNameFn(ctx, name)
	}
	return nil, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *userRepoStub) DeleteAccount(ctx context.Context, id uint) error {
	if s.deleteAccountFn != nil {
		return s.deleteAccountFn(ctx, id)
	}
	return nil
}

// postRepoStub implements repository.PostRepository.
type postRepoStub struct {
	createFn     func(ctx context.Context, post *models.Post) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Post, error)
	listFn       func(ctx context.Context) ([]models.Post, error)
	deleteFn     func(ctx context.Context, id uint) error
	isLikedFn    func(ctx context.Context, userID, postID uint) (bool, error)
	addLikeFn    func(ctx context.Context, userID, postID uint) error
	removeLikeFn func(ctx context.Context, userID, postID uint) error
	listLikesFn  func(ctx context.Context, postID uint) ([]models.Like, error)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{}
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *postRepoStub) AddLike(ctx context.Context, userID, postID uint) error {
	if s.addLikeFn != nil {
		return s.addLikeFn(ctx, userID, postID)
	}
	return nil
}

func (s *postRepoStub) RemoveLike(ctx context.Context, userID, postID uint) error {
	if s.removeLikeFn != nil {
		return s.removeLikeFn(ctx, userID, postID)
	}
	return nil
}

func (s *postRepoStub) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	if s.listLikesFn != nil {
		return s.listLikesFn(ctx, postID)
	}
	return nil, nil
}

// commentRepoStub implements repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn func(ctx context.Context, postID uint) ([]models.Comment, error)
	deleteFn     func(ctx context.Context, id uint) error
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{}
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Comment", id)
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}
