package server

import (
	"devhub/internal/models"
	"devhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	var in service.CreatePostInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID

	post, err := s.postService.Create(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts handles GET /api/posts, newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), postID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), userID, postID); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id and returns the updated like list.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	likes, err := s.postService.Like(c.UserContext(), userID, postID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id and returns the updated like list.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	likes, err := s.postService.Unlike(c.UserContext(), userID, postID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id and returns the post's
// comments, newest first.
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	var in service.AddCommentInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID
	in.PostID = postID

	comments, err := s.postService.AddComment(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// RemoveComment handles DELETE /api/posts/comment/:id/:comment_id.
func (s *Server) RemoveComment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}
	commentID, err := parseID(c, "comment_id", "Comment")
	if err != nil {
		return nil
	}

	comments, err := s.postService.RemoveComment(c.UserContext(), userID, postID, commentID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(comments)
}
