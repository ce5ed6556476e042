package model

import (
	"errors"

	"github.com/google/uuid"
)

// TokenClaims is the decoded identity carried by an access token.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
}

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenInvalid means the token verified but its subject no longer exists.
	ErrTokenInvalid = errors.New("token subject no longer exists")
)

// Token API error codes (used in HTTP responses)
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

// TokenResponse is returned after signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
