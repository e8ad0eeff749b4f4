package server

import (
	"devhub/internal/middleware"
	"devhub/internal/models"
	"devhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users. On success it returns the created user
// together with a signed bearer token so the client is logged in immediately.
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"user_id", user.ID,
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth.
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.userService.Authenticate(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/auth and returns the authenticated user.
func (s *Server) Me(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(user)
}

// ListUsers handles GET /api/users with limit/offset pagination.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, err := s.userRepo.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}
