// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"relay/internal/cache"
	"relay/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SearchPartial(ctx context.Context, query string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateStatus(ctx context.Context, id uint, status models.UserStatus) error
	ListStatuses(ctx context.Context) ([]models.UserStatusInfo, error)
	ResetAllStatuses(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser is the cache representation of a user. models.User hides
// Credential from JSON with `json:"-"`, which would strip it on the cache
// round-trip, so the cache gets its own struct with every field tagged.
type cachedUser struct {
	ID         uint              `json:"id"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	Credential string            `json:"credential"`
	Status     models.UserStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

func newCachedUser(user *models.User) cachedUser {
	return cachedUser{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Credential: user.Credential,
		Status:     user.Status,
		CreatedAt:  user.CreatedAt,
	}
}

func (c *cachedUser) toModel() *models.User {
	return &models.User{
		ID:         c.ID,
		Username:   c.Username,
		Email:      c.Email,
		Credential: c.Credential,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var cached cachedUser
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &cached, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		cached = newCachedUser(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return cached.toModel(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) SearchPartial(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports
	// "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Delete removes a user and, in the same transaction, every friend request
// and message the user participates in. The schema has no FK cascade, so the
// cleanup is explicit here.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).
			Delete(&models.Message{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status models.UserStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) ListStatuses(ctx context.Context) ([]models.UserStatusInfo, error) {
	var statuses []models.UserStatusInfo
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id AS user_id, username, status").
		Order("id ASC").
		Scan(&statuses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return statuses, nil
}

// ResetAllStatuses forces every user OFFLINE. Run once at process start to
// repair statuses left behind by sessions that never logged out. Redis
// outlives the process, so the affected users' cache entries are invalidated
// too.
func (r *userRepository) ResetAllStatuses(ctx context.Context) (int64, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("status <> ?", models.UserStatusOffline).
		Pluck("id", &ids).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ?", ids).
		Update("status", models.UserStatusOffline)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	for _, id := range ids {
		cache.InvalidateUser(ctx, id)
	}
	return result.RowsAffected, nil
}
