package service

import (
	"context"
	"strings"

	"relay/internal/models"
	"relay/internal/repository"
)

// UserService provides user directory operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SearchResult is the outcome of a directory search. TotalMatches counts the
// partial matches when the result came from the partial scan; exact matches
// report 1.
type SearchResult struct {
	User         *models.User `json:"user"`
	TotalMatches int          `json:"total_matches"`
}

// Search finds a single user: exact username first, then exact email, then
// the first case-insensitive partial match on either field.
func (s *UserService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query cannot be empty")
	}

	user, err := s.userRepo.GetByUsername(ctx, query)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return &SearchResult{User: user, TotalMatches: 1}, nil
	}

	user, err = s.userRepo.GetByEmail(ctx, query)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return &SearchResult{User: user, TotalMatches: 1}, nil
	}

	matches, err := s.userRepo.SearchPartial(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, models.NewNotFoundMessage("No users found matching the search criteria")
	}

	// First match only; callers wanting more get the count.
	return &SearchResult{User: &matches[0], TotalMatches: len(matches)}, nil
}

// List returns a page of users. Pagination is naive offset slicing: an
// out-of-range page yields an empty list. size <= 0 returns everyone.
func (s *UserService) List(ctx context.Context, page, size int) ([]models.User, error) {
	limit := -1
	offset := 0
	if size > 0 {
		if page < 0 {
			page = 0
		}
		limit = size
		offset = page * size
	}
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// UpdateProfileInput carries the fields to change; empty fields are left
// untouched.
type UpdateProfileInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Credential string `json:"password"`
}

// UpdateProfile changes username/email/credential for a user, enforcing that
// username and email are not already taken by a different user.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = input.Username
	}

	if input.Email != "" {
		existing, err := s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewConflictError("Email already taken")
		}
		user.Email = input.Email
	}

	if input.Credential != "" {
		user.Credential = input.Credential
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. The user's friend requests and messages go
// with it (cascade, see UserRepository.Delete).
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// GetStatus returns the user's presence status.
func (s *UserService) GetStatus(ctx context.Context, id uint) (models.UserStatus, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// SetStatus updates the user's presence status.
func (s *UserService) SetStatus(ctx context.Context, id uint, status models.UserStatus) error {
	switch status {
	case models.UserStatusOnline, models.UserStatusOffline, models.UserStatusAway:
	default:
		return models.NewValidationError("Invalid status value")
	}
	return s.userRepo.UpdateStatus(ctx, id, status)
}

// ListStatuses returns the presence status of every user.
func (s *UserService) ListStatuses(ctx context.Context) ([]models.UserStatusInfo, error) {
	return s.userRepo.ListStatuses(ctx)
}
