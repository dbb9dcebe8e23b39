package server

import (
	"testing"

	"relay/internal/models"
	"relay/internal/repository"
	"relay/internal/service"
	"relay/internal/session"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a Server against an in-memory sqlite DB and an
// in-process session store. Metrics and Redis stay out of the picture.
func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Message{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRequestRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	sessions := session.NewStore(nil)

	s := &Server{
		db:          db,
		sessions:    sessions,
		userRepo:    userRepo,
		friendRepo:  friendRepo,
		messageRepo: messageRepo,
	}
	s.authService = service.NewAuthService(userRepo, sessions)
	s.userService = service.NewUserService(userRepo)
	s.friendService = service.NewFriendService(friendRepo, userRepo)
	s.messageService = service.NewMessageService(messageRepo, userRepo)
	return s, db
}

func createServerTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:   username,
		Email:      username + "@example.com",
		Credential: "password123",
		Status:     models.UserStatusOffline,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}
