package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
	"socialmedia/internal/service"
)

// AuthHandler groups signup and login endpoints.
type AuthHandler struct {
	userService  *service.UserService
	tokenService *service.TokenService
}

func NewAuthHandler(userService *service.UserService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Signup creates an account and returns an access token for it.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			httputil.WriteConflict(w, "Email is already registered")
		case errors.Is(err, model.ErrUsernameTaken):
			httputil.WriteConflict(w, "Username is already registered")
		default:
			slog.ErrorContext(r.Context(), "Signup failed", slog.Any("error", err))
			httputil.WriteInternalError(w, "Failed to create account")
		}
		return
	}

	h.writeToken(w, r, account)
}

// Login exchanges username, email and password for an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.userService.Authenticate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", slog.Any("error", err))
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	h.writeToken(w, r, account)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, r *http.Request, account *model.AccountView) {
	token, err := h.tokenService.Issue(account)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to issue token",
			slog.String("user_id", account.ID.String()),
			slog.Any("error", err),
		)
		httputil.WriteInternalError(w, "Failed to issue token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.TokenResponse{
		AccessToken: token,
		TokenType:   service.TokenType,
	})
}
