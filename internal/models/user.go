// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserStatus represents a user's presence status.
type UserStatus string

const (
	// UserStatusOnline indicates the user has an active session.
	UserStatusOnline UserStatus = "ONLINE"
	// UserStatusOffline indicates the user has no active session.
	UserStatusOffline UserStatus = "OFFLINE"
	// UserStatusAway indicates the user set themselves away.
	UserStatusAway UserStatus = "AWAY"
)

// User represents a registered account.
//
// Credential is stored and compared as an opaque string, with no hashing.
// Clients that want hashed credentials must hash before calling the API.
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Username   string     `gorm:"unique;not null" json:"username"`
	Email      string     `gorm:"unique;not null" json:"email"`
	Credential string     `gorm:"not null" json:"-"`
	Status     UserStatus `gorm:"type:varchar(10);default:'OFFLINE'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UserStatusInfo is the payload returned by status listings.
type UserStatusInfo struct {
	UserID   uint       `json:"user_id"`
	Username string     `json:"username"`
	Status   UserStatus `json:"status"`
}
