package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
)

type stubVerifier struct {
	claims *model.TokenClaims
	err    error
}

func (s stubVerifier) Verify(string) (*model.TokenClaims, error) {
	return s.claims, s.err
}

type stubResolver struct {
	account *model.AccountView
	err     error
}

func (s stubResolver) GetByID(context.Context, uuid.UUID) (*model.AccountView, error) {
	return s.account, s.err
}

func TestAuthMiddleware(t *testing.T) {
	account := &model.AccountView{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	claims := &model.TokenClaims{UserID: account.ID, Username: "alice", Email: "alice@example.com"}

	tests := []struct {
		name        string
		header      string
		verifier    stubVerifier
		resolver    stubResolver
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "valid token",
			header:     "Bearer good",
			verifier:   stubVerifier{claims: claims},
			resolver:   stubResolver{account: account},
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing header",
			wantStatus:  http.StatusForbidden,
			wantCode:    httputil.ErrCodeForbidden,
			wantMessage: "Not authenticated",
		},
		{
			name:        "wrong scheme",
			header:      "Basic dXNlcjpwYXNz",
			wantStatus:  http.StatusForbidden,
			wantCode:    httputil.ErrCodeForbidden,
			wantMessage: "Not authenticated",
		},
		{
			name:        "expired",
			header:      "Bearer old",
			verifier:    stubVerifier{err: model.ErrTokenExpired},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    model.CodeTokenExpired,
			wantMessage: "Token has expired",
		},
		{
			name:        "malformed",
			header:      "Bearer junk",
			verifier:    stubVerifier{err: model.ErrTokenMalformed},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    model.CodeTokenInvalid,
			wantMessage: "Could not validate credentials",
		},
		{
			name:        "deleted subject",
			header:      "Bearer orphan",
			verifier:    stubVerifier{claims: claims},
			resolver:    stubResolver{err: model.ErrUserNotFound},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    model.CodeTokenInvalid,
			wantMessage: "Could not validate credentials",
		},
		{
			name:       "lookup failure",
			header:     "Bearer good",
			verifier:   stubVerifier{claims: claims},
			resolver:   stubResolver{err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   httputil.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *model.AccountView
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = GetAccountFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.verifier, tt.resolver)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, account, got)
				return
			}

			assert.Nil(t, got)
			var resp httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Error.Message)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
