package domain

import (
	"time"
)

// User represents an AthleTrack account.
type User struct {
	ID           int64     `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`   // Unique, compared case-insensitively
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	DateJoined   time.Time `bson:"dateJoined" json:"dateJoined"`
}

