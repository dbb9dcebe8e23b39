package repository

import (
	"context"
	"errors"
	"time"

	"relay/internal/models"

	"gorm.io/gorm"
)

// FriendRequestRepository defines persistence operations for the friend
// request ledger.
type FriendRequestRepository interface {
	Create(ctx context.Context, request *models.FriendRequest) error
	GetByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	// GetBetweenUsers finds the row for the unordered pair, regardless of
	// which side sent it. Returns (nil, nil) when no row exists.
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	ListPendingForReceiver(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	ListAcceptedForUser(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	// SetStatus updates the row status and re-stamps created_at, which doubles
	// as the last-status-change time.
	SetStatus(ctx context.Context, id uint, status models.FriendRequestStatus) error
	Delete(ctx context.Context, id uint) error
	// Transaction runs fn against a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(FriendRequestRepository) error) error
}

type friendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository returns a new FriendRequestRepository implementation.
func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRequestRepository) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRequestRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRequestRepository) ListPendingForReceiver(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Preload("Sender").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *friendRequestRepository) ListAcceptedForUser(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, models.FriendRequestAccepted).
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *friendRequestRepository) SetStatus(ctx context.Context, id uint, status models.FriendRequestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"created_at": time.Now(),
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Friend request", id)
	}
	return nil
}

func (r *friendRequestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRequestRepository) Transaction(ctx context.Context, fn func(FriendRequestRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&friendRequestRepository{db: tx})
	})
}
