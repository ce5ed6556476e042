package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"socialmedia/internal/config"
	"socialmedia/internal/model"
)

// TokenType is reported next to every issued access token.
const TokenType = "bearer"

// accessClaims is the signed payload. exp comes from RegisteredClaims.
type accessClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg config.TokenConfig) (*TokenService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token config: %w", err)
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		method: jwt.GetSigningMethod(cfg.Algorithm),
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token for account that expires after the configured ttl.
func (s *TokenService) Issue(account *model.AccountView) (string, error) {
	return s.IssueWithTTL(account, s.ttl)
}

// IssueWithTTL signs a token for account that expires after ttl.
func (s *TokenService) IssueWithTTL(account *model.AccountView, ttl time.Duration) (string, error) {
	claims := accessClaims{
		ID:       account.ID.String(),
		Username: account.Username,
		Email:    account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// identity. It does not check that the account still exists.
func (s *TokenService) Verify(tokenString string) (*model.TokenClaims, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenMalformed
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil || claims.Username == "" || claims.Email == "" {
		return nil, model.ErrTokenMalformed
	}

	return &model.TokenClaims{
		UserID:   id,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
