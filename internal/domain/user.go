package domain

import "context"

// User is a person known to the user directory.
// swagger:model User
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRepository is the user directory used to confirm referenced users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// ListByIDs returns the users found among ids; missing ids are simply absent from the result.
	ListByIDs(ctx context.Context, ids []string) ([]*User, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
