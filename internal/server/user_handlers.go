package server

import (
	"relay/internal/models"
	"relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// ListUsers handles GET /api/users
//
// Pagination is naive: page*size offset slicing, out-of-range pages yield an
// empty list. Without page/size everyone is returned.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 0)

	users, err := s.userService.List(c.UserContext(), page, size)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	result, err := s.userService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(result)
}

// UpdateUser handles PUT /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), id, input)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.Delete(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

// GetUserStatus handles GET /api/users/:id/status
func (s *Server) GetUserStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.userService.GetStatus(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": id, "status": status})
}

// SetUserStatus handles PUT /api/users/:id/status
func (s *Server) SetUserStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.UserStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.SetStatus(c.UserContext(), id, req.Status); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": id, "status": req.Status})
}

// ListUserStatuses handles GET /api/users/statuses
func (s *Server) ListUserStatuses(c *fiber.Ctx) error {
	statuses, err := s.userService.ListStatuses(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(statuses)
}
