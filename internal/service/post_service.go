package service

import (
	"context"
	"strings"

	"devhub/internal/cache"
	"devhub/internal/models"
	"devhub/internal/repository"
)

// PostService handles posts, likes and comments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// CreatePostInput is the payload for authoring a post.
type CreatePostInput struct {
	UserID uint
	Text   string `json:"text"`
}

// AddCommentInput is the payload for commenting on a post.
type AddCommentInput struct {
	UserID uint
	PostID uint
	Text   string `json:"text"`
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo, userRepo: userRepo}
}

// Create authors a post, snapshotting the author's name and avatar.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldErrors([]models.FieldError{
			{Field: "text", Message: "Text is required"},
		})
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		UserID: user.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// List returns all posts, most recent first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return cache.Aside(ctx, cache.PostsListKey, cache.PostTTL, func() ([]models.Post, error) {
		return s.postRepo.List(ctx)
	})
}

// Get returns one post with its likes and comments.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return cache.Aside(ctx, cache.PostKey(id), cache.PostTTL, func() (*models.Post, error) {
		return s.postRepo.GetByID(ctx, id)
	})
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records the caller's like and returns the refreshed like list.
// Liking a post twice is an error.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewAlreadyLikedError()
	}

	if err := s.postRepo.AddLike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// Unlike removes the caller's like and returns the refreshed like list.
// Unliking a post that was never liked is an error.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.RemoveLike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// AddComment attaches a comment to a post, snapshotting the commenter's name
// and avatar, and returns the refreshed comment list.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) ([]models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldErrors([]models.FieldError{
			{Field: "text", Message: "Text is required"},
		})
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		UserID: user.ID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, in.PostID)
}

// RemoveComment deletes a comment. Only the comment's author may remove it;
// owning the post is not enough.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
