package service

import (
	"context"
	"strings"

	"relay/internal/models"
	"relay/internal/repository"
)

// MessageService provides direct-message creation and retrieval.
//
// Sending does NOT require the two users to be friends: any two existing
// users may message each other.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send persists a new message from one user to another.
func (s *MessageService) Send(ctx context.Context, fromID, toID uint, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Message text cannot be empty")
	}

	if _, err := s.userRepo.GetByID(ctx, fromID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   fromID,
		ReceiverID: toID,
		Text:       text,
		IsRead:     false,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation returns all messages between the two users, oldest first.
// The result is the same regardless of argument order.
func (s *MessageService) Conversation(ctx context.Context, userID1, userID2 uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID1); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID2); err != nil {
		return nil, err
	}
	return s.messageRepo.GetConversation(ctx, userID1, userID2)
}

// Inbox returns every message the user sent or received, oldest first, with
// all conversations interleaved.
func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetAllForUser(ctx, userID)
}
