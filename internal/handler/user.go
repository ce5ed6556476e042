package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
	"socialmedia/internal/service"
	"socialmedia/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the authenticated account.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.GetAccountFromContext(r.Context())
	if !ok {
		httputil.WriteForbidden(w, "Not authenticated")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, account)
}

// Delete removes the authenticated account along with its posts, comments,
// likes and follow edges.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.GetAccountFromContext(r.Context())
	if !ok {
		httputil.WriteForbidden(w, "Not authenticated")
		return
	}

	if err := h.userService.Delete(r.Context(), account.ID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		slog.ErrorContext(r.Context(), "Account delete failed",
			slog.String("user_id", account.ID.String()),
			slog.Any("error", err),
		)
		httputil.WriteInternalError(w, "Failed to delete account")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.MessageResponse{
		Message: "User deleted successfully",
	})
}
