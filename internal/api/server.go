// Package api provides the HTTP JSON API for blogs, users, reading lists and sessions.
package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogApp/internal/auth"
	"blogApp/internal/ratelimit"
	"blogApp/internal/validation"
	"blogApp/repository"
)

// Options configures the HTTP server.
type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	LoginPerMinute float64
	LoginBurst     int

	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db           *sql.DB
	users        *repository.UserRepository
	blogs        *repository.BlogRepository
	sessions     *repository.SessionRepository
	readings     *repository.ReadingListRepository
	auth         *auth.Authenticator
	issuer       *auth.Issuer
	validator    *validation.Validator
	loginLimiter *ratelimit.KeyedRateLimiter
	router       *chi.Mux
	logger       *slog.Logger
	origins      []string
	trustProxy   bool
}

// NewServer creates a server with all routes configured. Call Close when done.
func NewServer(d *sql.DB, opts Options, logger *slog.Logger) *Server {
	sessions := repository.NewSessionRepository(d)
	users := repository.NewUserRepository(d)
	s := &Server{
		db:           d,
		users:        users,
		blogs:        repository.NewBlogRepository(d),
		sessions:     sessions,
		readings:     repository.NewReadingListRepository(d),
		auth:         auth.NewAuthenticator(opts.JWTSecret, sessions, users),
		issuer:       auth.NewIssuer(opts.JWTSecret, opts.TokenTTL),
		validator:    validation.New(),
		loginLimiter: ratelimit.New(opts.LoginPerMinute, opts.LoginBurst),
		router:       chi.NewRouter(),
		logger:       logger,
		origins:      opts.AllowedOrigins,
		trustProxy:   opts.TrustProxyHeaders,
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.trustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(s.logRequests)
	s.router.Use(recordMetrics)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.With(s.requireSession).Delete("/logout", s.handleLogout)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", s.handleListBlogs)
			r.With(s.requireSession).Post("/", s.handleCreateBlog)
			r.Get("/{id}", s.handleGetBlog)
			r.Put("/{id}", s.handleUpdateLikes)
			r.With(s.requireSession).Delete("/{id}", s.handleDeleteBlog)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{username}", s.handleRenameUser)
		})

		r.Route("/readinglists", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Post("/", s.handleAddReading)
			r.Put("/{id}", s.handleMarkRead)
		})
	})
}
