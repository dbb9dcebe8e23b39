package repository

import (
	"context"
	"testing"
	"time"

	"relay/internal/models"
)

func TestMessageRepositoryGetConversation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	db.Create(&models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Text: "first", CreatedAt: base})
	db.Create(&models.Message{SenderID: bob.ID, ReceiverID: alice.ID, Text: "second", CreatedAt: base.Add(time.Minute)})
	db.Create(&models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Text: "third", CreatedAt: base.Add(2 * time.Minute)})
	// Unrelated conversation must not leak in.
	db.Create(&models.Message{SenderID: alice.ID, ReceiverID: carol.ID, Text: "other", CreatedAt: base})

	conv, err := repo.GetConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(conv) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv))
	}
	for i, want := range []string{"first", "second", "third"} {
		if conv[i].Text != want {
			t.Errorf("position %d: expected %q, got %q", i, want, conv[i].Text)
		}
	}

	// Same result regardless of argument order.
	flipped, err := repo.GetConversation(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("flipped conversation: %v", err)
	}
	if len(flipped) != len(conv) || flipped[0].ID != conv[0].ID {
		t.Errorf("expected symmetric result, got %d messages", len(flipped))
	}
}

func TestMessageRepositoryGetAllForUser(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	db.Create(&models.Message{SenderID: bob.ID, ReceiverID: alice.ID, Text: "from bob", CreatedAt: base})
	db.Create(&models.Message{SenderID: alice.ID, ReceiverID: carol.ID, Text: "to carol", CreatedAt: base.Add(time.Minute)})
	db.Create(&models.Message{SenderID: bob.ID, ReceiverID: carol.ID, Text: "not alice", CreatedAt: base})

	inbox, err := repo.GetAllForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(inbox))
	}
	if inbox[0].Text != "from bob" || inbox[1].Text != "to carol" {
		t.Errorf("expected ascending interleave, got %q then %q", inbox[0].Text, inbox[1].Text)
	}
}

func TestMessageRepositoryCreateStampsTime(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	message := &models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Text: "hi"}
	if err := repo.Create(context.Background(), message); err != nil {
		t.Fatalf("create: %v", err)
	}
	if message.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}
}
