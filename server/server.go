package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jrsteele09/go-auth-client/authapi"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/posts"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/users"
)

// Repos holds all repository dependencies for the Server.
type Repos struct {
	Users users.UserRepo // Repository for user accounts
	Posts posts.Repo     // Repository for blog posts
}

// Server is the reference blog API: the three auth endpoints the session
// manager talks to, plus the authenticated list-posts route.
type Server struct {
	config      config.Server
	repos       Repos
	tokens      *token.Creator
	refreshRepo *token.RefreshStore
	limiter     *rate.Limiter
	router      chi.Router
	log         zerolog.Logger
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

func WithLogger(log zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// New initializes the Server with required dependencies.
func New(cfg config.Server, repos Repos, tokens *token.Creator, refreshRepo *token.RefreshStore, options ...ServerOption) (*Server, error) {
	if repos.Users == nil {
		return nil, errors.New("[server.New] Users repo is required")
	}
	if repos.Posts == nil {
		return nil, errors.New("[server.New] Posts repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[server.New] token creator is required")
	}
	if refreshRepo == nil {
		return nil, errors.New("[server.New] refresh store is required")
	}

	s := &Server{
		config:      cfg,
		repos:       repos,
		tokens:      tokens,
		refreshRepo: refreshRepo,
		limiter:     rate.NewLimiter(rate.Limit(cfg.AuthRatePerSecond), cfg.AuthRateBurst),
		log:         zerolog.Nop(),
	}

	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.LoggingMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(s.RateLimitMiddleware)
		r.Post(authapi.RouteSignup, s.SignupHandler())
		r.Post(authapi.RouteLogin, s.LoginHandler())
		r.Post(authapi.RouteRefresh, s.RefreshHandler())
	})

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)
		r.Get(posts.RoutePosts, s.ListPostsHandler())
	})

	s.router = r
}

// LoggingMiddleware emits one structured event per request.
func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Msg("request")
	})
}

// RateLimitMiddleware bounds the rate of credential-guessing attempts on the
// auth endpoints.
func (s *Server) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, errorBody("Too Many Requests", "Too many authentication attempts"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
