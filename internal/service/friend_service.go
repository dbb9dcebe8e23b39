// Package service contains the business logic for the application.
package service

import (
	"context"
	"log/slog"

	"relay/internal/middleware"
	"relay/internal/models"
	"relay/internal/repository"
)

// FriendService implements the friend request state machine and the derived
// friendship relation.
//
// The ledger keeps one effective row per unordered pair of users:
// PENDING -> ACCEPTED | REJECTED. A REJECTED row is reused: sending again
// from either side flips it back to PENDING. ACCEPTED is sticky: sending
// again is a no-op. Friendship itself is never stored; it is derived from
// ACCEPTED rows on every query.
type FriendService struct {
	friendRepo repository.FriendRequestRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRequestRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequestResult reports the outcome of SendRequest. AlreadyFriends is set
// when the pair was already ACCEPTED and the call was a no-op.
type SendRequestResult struct {
	Request        *models.FriendRequest `json:"request,omitempty"`
	AlreadyFriends bool                  `json:"already_friends"`
}

// SendRequest sends a friend request from one user to another.
//
// The read-modify-write on the pair's row runs in a single transaction so
// concurrent identical calls cannot create a second row for the pair.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID uint) (*SendRequestResult, error) {
	if fromID == toID {
		return nil, models.NewSelfRequestError()
	}

	if _, err := s.userRepo.GetByID(ctx, fromID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	var result *SendRequestResult
	err := s.friendRepo.Transaction(ctx, func(repo repository.FriendRequestRepository) error {
		existing, err := repo.GetBetweenUsers(ctx, fromID, toID)
		if err != nil {
			return err
		}

		if existing != nil {
			switch existing.Status {
			case models.FriendRequestAccepted:
				// Already friends: succeed without touching the row.
				result = &SendRequestResult{Request: existing, AlreadyFriends: true}
				return nil
			case models.FriendRequestRejected:
				// Reuse the row: flip back to PENDING and re-stamp.
				if err := repo.SetStatus(ctx, existing.ID, models.FriendRequestPending); err != nil {
					return err
				}
				refreshed, err := repo.GetByID(ctx, existing.ID)
				if err != nil {
					return err
				}
				result = &SendRequestResult{Request: refreshed}
				return nil
			default:
				return models.NewDuplicateRequestError()
			}
		}

		request := &models.FriendRequest{
			SenderID:   fromID,
			ReceiverID: toID,
			Status:     models.FriendRequestPending,
		}
		if err := repo.Create(ctx, request); err != nil {
			return err
		}
		created, err := repo.GetByID(ctx, request.ID)
		if err != nil {
			return err
		}
		result = &SendRequestResult{Request: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Accept accepts a pending friend request. The request id is authoritative;
// no sender/receiver identity check is made on transitions.
func (s *FriendService) Accept(ctx context.Context, requestID uint) (*models.FriendRequest, error) {
	return s.transition(ctx, requestID, models.FriendRequestAccepted)
}

// Reject rejects a pending friend request. The row is kept so a later send
// from either side can revive it.
func (s *FriendService) Reject(ctx context.Context, requestID uint) (*models.FriendRequest, error) {
	return s.transition(ctx, requestID, models.FriendRequestRejected)
}

func (s *FriendService) transition(ctx context.Context, requestID uint, status models.FriendRequestStatus) (*models.FriendRequest, error) {
	var result *models.FriendRequest
	err := s.friendRepo.Transaction(ctx, func(repo repository.FriendRequestRepository) error {
		request, err := repo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != models.FriendRequestPending {
			return models.NewInvalidStateError("Friend request is not pending")
		}
		if err := repo.SetStatus(ctx, requestID, status); err != nil {
			return err
		}
		result, err = repo.GetByID(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel deletes a still-pending friend request. Unlike reject, the row is
// gone for good; a later send creates a fresh one.
func (s *FriendService) Cancel(ctx context.Context, requestID uint) error {
	return s.friendRepo.Transaction(ctx, func(repo repository.FriendRequestRepository) error {
		request, err := repo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != models.FriendRequestPending {
			return models.NewInvalidStateError("Friend request is not pending")
		}
		return repo.Delete(ctx, requestID)
	})
}

// ListPending returns pending friend requests addressed to the user.
func (s *FriendService) ListPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.friendRepo.ListPendingForReceiver(ctx, userID)
}

// ListFriends derives the user's friends from ACCEPTED ledger rows.
//
// A row whose counterpart no longer resolves is logged and skipped rather
// than failing the whole listing. This deliberately masks dangling
// references on the read path; mutations get no such leniency.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.friendRepo.ListAcceptedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(rows))
	for _, row := range rows {
		counterpartID := row.SenderID
		if counterpartID == userID {
			counterpartID = row.ReceiverID
		}
		friend, err := s.userRepo.GetByID(ctx, counterpartID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "skipping friend with unresolvable counterpart",
				slog.Any("request_id", row.ID),
				slog.Any("counterpart_id", counterpartID),
				slog.String("error", err.Error()),
			)
			continue
		}
		friends = append(friends, *friend)
	}
	return friends, nil
}

// AreFriends reports whether the two users are friends. Any internal failure
// resolves to false; this read path never errors.
func (s *FriendService) AreFriends(ctx context.Context, userID1, userID2 uint) bool {
	friends, err := s.ListFriends(ctx, userID1)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "friendship check failed, reporting not friends",
			slog.Any("user_id", userID1),
			slog.Any("other_id", userID2),
			slog.String("error", err.Error()),
		)
		return false
	}
	for _, friend := range friends {
		if friend.ID == userID2 {
			return true
		}
	}
	return false
}
