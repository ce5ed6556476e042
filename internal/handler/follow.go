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

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

// Follow handles POST /users/follow?username_to_follow=X.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.GetAccountFromContext(r.Context())
	if !ok {
		httputil.WriteForbidden(w, "Not authenticated")
		return
	}

	target := r.URL.Query().Get("username_to_follow")
	if target == "" {
		httputil.WriteUnprocessable(w, "username_to_follow is required")
		return
	}

	follow, err := h.followService.Follow(r.Context(), account, target)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteForbidden(w, "User can't follow themselves")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteForbidden(w, "You are already following this user")
		default:
			slog.ErrorContext(r.Context(), "Follow failed",
				slog.String("follower", account.Username),
				slog.String("target", target),
				slog.Any("error", err),
			)
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, follow)
}

// Unfollow handles DELETE /users/unfollow?username_to_unfollow=X.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.GetAccountFromContext(r.Context())
	if !ok {
		httputil.WriteForbidden(w, "Not authenticated")
		return
	}

	target := r.URL.Query().Get("username_to_unfollow")
	if target == "" {
		httputil.WriteUnprocessable(w, "username_to_unfollow is required")
		return
	}

	if err := h.followService.Unfollow(r.Context(), account, target); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotUnfollowSelf):
			httputil.WriteForbidden(w, "User can't unfollow themselves")
		case errors.Is(err, model.ErrNotFollowing):
			httputil.WriteForbidden(w, "User can't unfollow user they dont follow")
		default:
			slog.ErrorContext(r.Context(), "Unfollow failed",
				slog.String("follower", account.Username),
				slog.String("target", target),
				slog.Any("error", err),
			)
			httputil.WriteInternalError(w, "Failed to unfollow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.MessageResponse{
		Message: "Successfully unfollowed user",
	})
}
