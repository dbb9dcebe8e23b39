// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// FriendRequestStatus represents the state of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestPending indicates a request awaiting a decision.
	FriendRequestPending FriendRequestStatus = "PENDING"
	// FriendRequestAccepted indicates an accepted request; the pair are friends.
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
	// FriendRequestRejected indicates a rejected request. The row is kept and
	// flips back to PENDING if either side sends again.
	FriendRequestRejected FriendRequestStatus = "REJECTED"
)

// FriendRequest is the ledger row for a pair of users. The row is directed
// (sender/receiver) but queried as an unordered pair: at most one effective
// row exists per pair, and it is reused across REJECTED -> PENDING cycles.
//
// CreatedAt doubles as the last-status-change time: every transition
// re-stamps it.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SenderID   uint                `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint                `gorm:"not null;index" json:"receiver_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(10);default:'PENDING'" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}
