package service

import (
	"context"

	"relay/internal/models"
	"relay/internal/repository"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	searchPartialFn    func(context.Context, string) ([]models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
	updateStatusFn     func(context.Context, uint, models.UserStatus) error
	listStatusesFn     func(context.Context) ([]models.UserStatusInfo, error)
	resetAllStatusesFn func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) SearchPartial(ctx context.Context, query string) ([]models.User, error) {
	return s.searchPartialFn(ctx, query)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) UpdateStatus(ctx context.Context, id uint, status models.UserStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *userRepoStub) ListStatuses(ctx context.Context) ([]models.UserStatusInfo, error) {
	return s.listStatusesFn(ctx)
}
func (s *userRepoStub) ResetAllStatuses(ctx context.Context) (int64, error) {
	return s.resetAllStatusesFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		searchPartialFn:    func(context.Context, string) ([]models.User, error) { return nil, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		updateStatusFn:     func(context.Context, uint, models.UserStatus) error { return nil },
		listStatusesFn:     func(context.Context) ([]models.UserStatusInfo, error) { return nil, nil },
		resetAllStatusesFn: func(context.Context) (int64, error) { return 0, nil },
	}
}

type friendRepoStub struct {
	createFn                 func(context.Context, *models.FriendRequest) error
	getByIDFn                func(context.Context, uint) (*models.FriendRequest, error)
	getBetweenUsersFn        func(context.Context, uint, uint) (*models.FriendRequest, error)
	listPendingForReceiverFn func(context.Context, uint) ([]models.FriendRequest, error)
	listAcceptedForUserFn    func(context.Context, uint) ([]models.FriendRequest, error)
	setStatusFn              func(context.Context, uint, models.FriendRequestStatus) error
	deleteFn                 func(context.Context, uint) error
}

func (s *friendRepoStub) Create(ctx context.Context, request *models.FriendRequest) error {
	return s.createFn(ctx, request)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return s.getBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) ListPendingForReceiver(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.listPendingForReceiverFn(ctx, userID)
}
func (s *friendRepoStub) ListAcceptedForUser(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.listAcceptedForUserFn(ctx, userID)
}
func (s *friendRepoStub) SetStatus(ctx context.Context, id uint, status models.FriendRequestStatus) error {
	return s.setStatusFn(ctx, id, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// Transaction runs fn against the stub itself; tests do not exercise
// transactional isolation.
func (s *friendRepoStub) Transaction(_ context.Context, fn func(repository.FriendRequestRepository) error) error {
	return fn(s)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn: func(context.Context, *models.FriendRequest) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.FriendRequest, error) {
			return &models.FriendRequest{ID: id, Status: models.FriendRequestPending}, nil
		},
		getBetweenUsersFn:        func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		listPendingForReceiverFn: func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		listAcceptedForUserFn:    func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		setStatusFn:              func(context.Context, uint, models.FriendRequestStatus) error { return nil },
		deleteFn:                 func(context.Context, uint) error { return nil },
	}
}

type messageRepoStub struct {
	createFn          func(context.Context, *models.Message) error
	getConversationFn func(context.Context, uint, uint) ([]models.Message, error)
	getAllForUserFn   func(context.Context, uint) ([]models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetConversation(ctx context.Context, userID1, userID2 uint) ([]models.Message, error) {
	return s.getConversationFn(ctx, userID1, userID2)
}
func (s *messageRepoStub) GetAllForUser(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.getAllForUserFn(ctx, userID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:          func(context.Context, *models.Message) error { return nil },
		getConversationFn: func(context.Context, uint, uint) ([]models.Message, error) { return nil, nil },
		getAllForUserFn:   func(context.Context, uint) ([]models.Message, error) { return nil, nil },
	}
}
