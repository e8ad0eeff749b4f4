package server

import (
	"errors"
	"strconv"

	"devhub/internal/middleware"
	"devhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPaginationLimit = 50
	maxPaginationLimit     = 100
)

// errResponseWritten signals that a helper already wrote the error response
// and the handler should return nil to Fiber.
var errResponseWritten = errors.New("response already written")

// parseID reads a numeric route parameter. A value that does not parse as a
// positive integer cannot name any stored resource, so it reports the
// resource as not found rather than complaining about the format.
func parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.Respond(c, models.NewNotFoundError(resource, raw))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPaginationLimit)
	if limit <= 0 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// currentUser returns the authenticated user ID or writes a 401 response.
func currentUser(c *fiber.Ctx) (uint, error) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok || uid == 0 {
		_ = models.Respond(c, models.NewUnauthorizedError("Authorization required"))
		return 0, errResponseWritten
	}
	return uid, nil
}
