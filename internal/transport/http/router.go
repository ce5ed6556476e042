package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"socialmedia/internal/handler"
	"socialmedia/internal/logger"
	"socialmedia/internal/metrics"
	authmw "socialmedia/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	FollowHandler *handler.FollowHandler

	Tokens   authmw.TokenVerifier
	Accounts authmw.AccountResolver

	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.StructuredLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// System endpoints
	r.Get("/", handler.Root)
	r.Get("/instance", handler.Instance)
	r.Get("/health", handler.Health)
	r.Handle("/metrics", metrics.Handler())

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)

		// Protected routes - require a bearer token for a live account
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.Tokens, cfg.Accounts))

			r.Get("/me", cfg.UserHandler.Me)
			r.Delete("/delete", cfg.UserHandler.Delete)
			r.Post("/follow", cfg.FollowHandler.Follow)
			r.Delete("/unfollow", cfg.FollowHandler.Unfollow)
		})
	})

	return r
}
