package models

import "time"

// User is a credential store record. Email is the identity key and is
// unique across all records; IsVerified transitions to true exactly once.
type User struct {
	ID           int64
	Email        string
	Firstname    string
	Lastname     string
	PasswordHash string
	IsVerified   bool
	CreatedAt    time.Time
}
