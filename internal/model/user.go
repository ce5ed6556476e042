package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents an account row in the credential store.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // "-" hides from JSON output
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AccountView is the outward representation of a user. It never carries the
// password hash.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// View strips private fields from the user.
func (u *User) View() *AccountView {
	return &AccountView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// SignupRequest represents the data needed to create an account.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest carries the same fields as signup; all three must match.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found. Login failures
	// collapse into it as well.
	ErrUserNotFound = errors.New("user not found")

	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
)
