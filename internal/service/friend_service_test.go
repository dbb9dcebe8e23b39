package service

import (
	"context"
	"errors"
	"testing"

	"relay/internal/models"
)

func TestFriendServiceSendRequestToSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo())
	_, err := svc.SendRequest(context.Background(), 3, 3)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeSelfRequest {
		t.Fatalf("expected self-request app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestUnknownReceiver(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: id}, nil
	}

	svc := NewFriendService(noopFriendRepo(), users)
	_, err := svc.SendRequest(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestAlreadyFriends(t *testing.T) {
	repo := noopFriendRepo()
	repo.getBetweenUsersFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, Status: models.FriendRequestAccepted}, nil
	}
	statusChanged := false
	repo.setStatusFn = func(context.Context, uint, models.FriendRequestStatus) error {
		statusChanged = true
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	result, err := svc.SendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.AlreadyFriends {
		t.Error("expected already_friends")
	}
	if statusChanged {
		t.Error("accepted row must not be touched")
	}
}

func TestFriendServiceSendRequestRevivesRejectedRow(t *testing.T) {
	repo := noopFriendRepo()
	repo.getBetweenUsersFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, SenderID: 2, ReceiverID: 1, Status: models.FriendRequestRejected}, nil
	}
	var revivedID uint
	var revivedTo models.FriendRequestStatus
	repo.setStatusFn = func(_ context.Context, id uint, status models.FriendRequestStatus) error {
		revivedID, revivedTo = id, status
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: id, SenderID: 2, ReceiverID: 1, Status: models.FriendRequestPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	result, err := svc.SendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revivedID != 7 || revivedTo != models.FriendRequestPending {
		t.Fatalf("expected row 7 flipped to PENDING, got %d -> %s", revivedID, revivedTo)
	}
	if result.Request == nil || result.Request.ID != 7 {
		t.Fatalf("expected the same row back, got %+v", result.Request)
	}
	if result.AlreadyFriends {
		t.Error("revived request must not report already_friends")
	}
}

func TestFriendServiceSendRequestDuplicatePending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getBetweenUsersFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, Status: models.FriendRequestPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeDuplicateRequest {
		t.Fatalf("expected duplicate-request app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestCreatesFreshRow(t *testing.T) {
	repo := noopFriendRepo()
	var created *models.FriendRequest
	repo.createFn = func(_ context.Context, request *models.FriendRequest) error {
		request.ID = 11
		created = request
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: id, SenderID: 1, ReceiverID: 2, Status: models.FriendRequestPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	result, err := svc.SendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.SenderID != 1 || created.ReceiverID != 2 {
		t.Fatalf("expected fresh row 1->2, got %+v", created)
	}
	if created.Status != models.FriendRequestPending {
		t.Errorf("expected PENDING, got %s", created.Status)
	}
	if result.Request.ID != 11 {
		t.Errorf("expected created row back, got %+v", result.Request)
	}
}

func TestFriendServiceAcceptNotPending(t *testing.T) {
	for _, status := range []models.FriendRequestStatus{models.FriendRequestAccepted, models.FriendRequestRejected} {
		repo := noopFriendRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
			return &models.FriendRequest{ID: id, Status: status}, nil
		}

		svc := NewFriendService(repo, noopUserRepo())
		_, err := svc.Accept(context.Background(), 5)
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeInvalidState {
			t.Fatalf("status %s: expected invalid-state app error, got %#v", status, err)
		}
	}
}

func TestFriendServiceAcceptPending(t *testing.T) {
	repo := noopFriendRepo()
	calls := 0
	repo.getByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
		calls++
		status := models.FriendRequestPending
		if calls > 1 {
			status = models.FriendRequestAccepted
		}
		return &models.FriendRequest{ID: id, Status: status}, nil
	}
	var set models.FriendRequestStatus
	repo.setStatusFn = func(_ context.Context, _ uint, status models.FriendRequestStatus) error {
		set = status
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	request, err := svc.Accept(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set != models.FriendRequestAccepted {
		t.Errorf("expected SetStatus ACCEPTED, got %s", set)
	}
	if request.Status != models.FriendRequestAccepted {
		t.Errorf("expected reloaded ACCEPTED row, got %s", request.Status)
	}
}

func TestFriendServiceCancelNotPending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: id, Status: models.FriendRequestAccepted}, nil
	}
	deleted := false
	repo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	err := svc.Cancel(context.Background(), 5)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeInvalidState {
		t.Fatalf("expected invalid-state app error, got %#v", err)
	}
	if deleted {
		t.Error("settled row must not be deleted")
	}
}

func TestFriendServiceCancelPending(t *testing.T) {
	repo := noopFriendRepo()
	var deletedID uint
	repo.deleteFn = func(_ context.Context, id uint) error {
		deletedID = id
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	if err := svc.Cancel(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != 5 {
		t.Errorf("expected row 5 deleted, got %d", deletedID)
	}
}

func TestFriendServiceListFriendsSkipsDanglingCounterpart(t *testing.T) {
	repo := noopFriendRepo()
	repo.listAcceptedForUserFn = func(context.Context, uint) ([]models.FriendRequest, error) {
		return []models.FriendRequest{
			{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.FriendRequestAccepted},
			{ID: 2, SenderID: 3, ReceiverID: 1, Status: models.FriendRequestAccepted},
		}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 3 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: id}, nil
	}

	svc := NewFriendService(repo, users)
	friends, err := svc.ListFriends(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Fatalf("expected only user 2, got %+v", friends)
	}
}

func TestFriendServiceAreFriendsFailsOpen(t *testing.T) {
	repo := noopFriendRepo()
	repo.listAcceptedForUserFn = func(context.Context, uint) ([]models.FriendRequest, error) {
		return nil, models.NewInternalError(errors.New("db down"))
	}

	svc := NewFriendService(repo, noopUserRepo())
	if svc.AreFriends(context.Background(), 1, 2) {
		t.Error("expected false on internal failure")
	}
}

func TestFriendServiceAreFriendsBothDirections(t *testing.T) {
	repo := noopFriendRepo()
	repo.listAcceptedForUserFn = func(_ context.Context, userID uint) ([]models.FriendRequest, error) {
		return []models.FriendRequest{
			{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.FriendRequestAccepted},
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	if !svc.AreFriends(context.Background(), 1, 2) {
		t.Error("expected friends from sender side")
	}
	if !svc.AreFriends(context.Background(), 2, 1) {
		t.Error("expected friends from receiver side")
	}
}
