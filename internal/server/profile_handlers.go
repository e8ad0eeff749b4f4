package server

import (
	"devhub/internal/middleware"
	"devhub/internal/models"
	"devhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetByUser(c.UserContext(), userID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile. The request body replaces the
// caller's profile document wholesale.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	var in service.UpsertProfileInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID

	profile, err := s.profileService.Upsert(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:user_id.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id", "Profile")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetByUser(c.UserContext(), userID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile. It removes the account together
// with its profile, posts, likes and comments.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteAccount(c.UserContext(), userID); err != nil {
		return models.Respond(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account deleted",
		"user_id", userID,
	)

	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	var in service.ExperienceInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID

	profile, err := s.profileService.AddExperience(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	expID, err := parseID(c, "exp_id", "Experience")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveExperience(c.UserContext(), userID, expID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}

	var in service.EducationInput
	if err := c.BodyParser(&in); err != nil {
		return models.Respond(c, models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID

	profile, err := s.profileService.AddEducation(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return nil
	}
	eduID, err := parseID(c, "edu_id", "Education")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveEducation(c.UserContext(), userID, eduID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(profile)
}

// GithubRepos handles GET /api/profile/github/:username and proxies the
// user's five most recent public repositories.
func (s *Server) GithubRepos(c *fiber.Ctx) error {
	repos, err := s.githubService.Repos(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(repos)
}
