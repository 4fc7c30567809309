package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// Accounts are managed elsewhere; the comment subsystem only reads them.
type User struct {
	ID             int64     // Unique identifier
	Username       string    // Login username (unique)
	FirstName      string    // Given name
	LastName       string    // Family name
	ProfilePicture string    // Avatar URL
	CreatedAt      time.Time // Account creation timestamp
	UpdatedAt      time.Time // Last profile update timestamp
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByIDs retrieves the users that exist among the given ids. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)
}

// Actor is the authenticated caller of a write operation. The zero value is anonymous.
type Actor struct {
	UserID int64
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID > 0
}
