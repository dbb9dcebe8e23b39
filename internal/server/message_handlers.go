package server

import (
	"relay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetInbox handles GET /api/messages: every message the authenticated user
// sent or received, oldest first.
func (s *Server) GetInbox(c *fiber.Ctx) error {
	messages, err := s.messageService.Inbox(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(messages)
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		Text       string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Receiver ID is required"))
	}

	message, err := s.messageService.Send(c.UserContext(), currentUserID(c), req.ReceiverID, req.Text)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversation handles GET /api/messages/conversation/:userId
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.Conversation(c.UserContext(), currentUserID(c), otherID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(messages)
}
