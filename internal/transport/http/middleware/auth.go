package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// AccountKey is the context key for the authenticated account
	AccountKey contextKey = "account"
)

// TokenVerifier decodes and checks a bearer token.
type TokenVerifier interface {
	Verify(token string) (*model.TokenClaims, error)
}

// AccountResolver loads the account a verified token refers to.
type AccountResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.AccountView, error)
}

// AuthMiddleware requires a valid bearer token whose subject still exists.
// A missing token is 403; a bad, expired or orphaned token is 401.
func AuthMiddleware(tokens TokenVerifier, accounts AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				httputil.WriteForbidden(w, "Not authenticated")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				if errors.Is(err, model.ErrTokenExpired) {
					httputil.WriteUnauthorizedWithCode(w, model.CodeTokenExpired, "Token has expired")
					return
				}
				httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Could not validate credentials")
				return
			}

			account, err := accounts.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, model.ErrUserNotFound) {
					w.Header().Set("WWW-Authenticate", "Bearer")
					httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Could not validate credentials")
					return
				}
				slog.ErrorContext(r.Context(), "Failed to resolve token subject",
					slog.String("user_id", claims.UserID.String()),
					slog.Any("error", err),
				)
				httputil.WriteInternalError(w, "Failed to authenticate request")
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetAccountFromContext extracts the authenticated account from the request
// context.
func GetAccountFromContext(ctx context.Context) (*model.AccountView, bool) {
	account, ok := ctx.Value(AccountKey).(*model.AccountView)
	return account, ok
}
