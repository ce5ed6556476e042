package handler

import (
	"net/http"
	"os"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
)

// Root confirms the API is up.
func Root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, model.MessageResponse{
		Message: "Welcome to the Social Media Backend API",
	})
}

// Instance reports which host served the request, for load balancer checks.
func Instance(w http.ResponseWriter, r *http.Request) {
	hostname, err := os.Hostname()
	if err != nil {
		httputil.WriteInternalError(w, "Failed to resolve hostname")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"instance": hostname})
}

func Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
