package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"relay/internal/middleware"
	"relay/internal/models"
	"relay/internal/repository"
	"relay/internal/session"
)

// AuthService handles registration, login, logout and session resolution.
// Credentials are compared as opaque strings, exactly as stored.
type AuthService struct {
	userRepo repository.UserRepository
	sessions session.Store
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessions session.Store) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates a new account. New users start OFFLINE.
func (s *AuthService) Register(ctx context.Context, username, email, credential string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || credential == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already exists")
	}

	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		Credential: credential,
		Status:     models.UserStatusOffline,
		CreatedAt:  time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "new user registered", slog.String("username", username))
	return user, nil
}

// Login authenticates by username (falling back to email), marks the user
// ONLINE and issues a session token. A wrong username and a wrong credential
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, credential string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, username)
		if err != nil {
			return nil, "", err
		}
	}
	if user == nil || user.Credential != credential {
		middleware.Logger.WarnContext(ctx, "failed login attempt", slog.String("username", username))
		return nil, "", models.NewNotFoundMessage("Invalid username or password")
	}

	if err := s.userRepo.UpdateStatus(ctx, user.ID, models.UserStatusOnline); err != nil {
		return nil, "", err
	}
	user.Status = models.UserStatusOnline

	token, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "user logged in", slog.String("username", user.Username))
	return user, token, nil
}

// Logout removes the session and marks the user OFFLINE. Logging out an
// unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return models.NewInternalError(err)
	}
	if sess == nil {
		return nil
	}

	if err := s.userRepo.UpdateStatus(ctx, sess.UserID, models.UserStatusOffline); err != nil {
		// The session is cleared regardless; a missing user must not keep a
		// token alive.
		middleware.Logger.WarnContext(ctx, "failed to mark user offline on logout",
			slog.Any("user_id", sess.UserID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "user logged out", slog.String("username", sess.Username))
	return nil
}

// CurrentUser resolves a token to its user. Returns (nil, nil) when the
// token is unknown or the user no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if sess == nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
