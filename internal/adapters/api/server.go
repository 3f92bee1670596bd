// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalogapi.app/internal/core/account"
	"catalogapi.app/internal/core/catalog"
	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	RateLimitRPS   int
	AllowedOrigins []string
	CookieName     string
	CookieTTL      time.Duration
	SecureCookies  bool
	ServeFrontend  bool
	FrontendDir    string
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	accountUseCase AccountUseCase
	catalogUseCase CatalogUseCase
	tokens         ports.TokenIssuer
	health         SystemHealthChecker
	metrics        RequestMetrics
	logger         ports.Logger
	gate           *OriginGate
}

// Use case interfaces that the HTTP adapter depends on
type AccountUseCase interface {
	Signup(ctx context.Context, params account.SignupParams) (*account.User, error)
	Login(ctx context.Context, params account.LoginParams) (*account.User, error)
	VerifyEmail(ctx context.Context, params account.VerifyEmailParams) (*account.User, error)
	ForgotPassword(ctx context.Context, params account.ForgotPasswordParams) error
	ResetPassword(ctx context.Context, params account.ResetPasswordParams) error
	CurrentUser(ctx context.Context, userID string) (*account.User, error)
}

type CatalogUseCase interface {
	Trending(ctx context.Context, media catalog.MediaType) (catalog.Content, error)
	Trailers(ctx context.Context, media catalog.MediaType, id int64) (catalog.Content, error)
	Details(ctx context.Context, media catalog.MediaType, id int64) (catalog.Content, error)
	Similar(ctx context.Context, media catalog.MediaType, id int64) (catalog.Content, error)
	ByCategory(ctx context.Context, media catalog.MediaType, category string) (catalog.Content, error)
	Search(ctx context.Context, userID string, kind catalog.SearchType, query string) (catalog.Content, error)
	History(ctx context.Context, userID string) ([]catalog.HistoryItem, error)
	RemoveHistoryItem(ctx context.Context, userID string, mediaID int64) error
}

type SystemHealthChecker interface {
	CheckAll(ctx context.Context) map[string]ports.HealthStatus
}

type RequestMetrics interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	AccountUseCase      AccountUseCase
	CatalogUseCase      CatalogUseCase
	TokenIssuer         ports.TokenIssuer
	SystemHealthChecker SystemHealthChecker
	Metrics             RequestMetrics
	Logger              ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	cfg := opts.Config
	if cfg.CookieName == "" {
		cfg.CookieName = "jwt-netflix"
	}
	if cfg.CookieTTL <= 0 {
		cfg.CookieTTL = 15 * 24 * time.Hour
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &HTTPServerAdapter{
		router:         router,
		config:         cfg,
		accountUseCase: opts.AccountUseCase,
		catalogUseCase: opts.CatalogUseCase,
		tokens:         opts.TokenIssuer,
		health:         opts.SystemHealthChecker,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
		gate:           NewOriginGate(cfg.AllowedOrigins, opts.Logger),
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.AccountUseCase == nil {
		return errors.NewValidationError("account use case is required")
	}
	if opts.CatalogUseCase == nil {
		return errors.NewValidationError("catalog use case is required")
	}
	if opts.TokenIssuer == nil {
		return errors.NewValidationError("token issuer is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	if s.metrics != nil {
		s.router.Use(s.metricsMiddleware())
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	s.router.Use(s.corsMiddleware())

	v1 := s.router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(s.config.RateLimitRPS))
	v1.GET("/health", s.getHealth)

	accountRoutes := v1.Group("/account")
	{
		accountRoutes.POST("/signup", s.signup)
		accountRoutes.POST("/login", s.login)
		accountRoutes.POST("/logout", s.logout)
		accountRoutes.POST("/verify-email", s.verifyEmail)
		accountRoutes.POST("/forgot-password", s.forgotPassword)
		accountRoutes.POST("/reset-password/:token", s.resetPassword)
		accountRoutes.GET("/authCheck", s.authMiddleware(), s.authCheck)
	}

	s.mountMediaRoutes(v1.Group("/movie", s.authMiddleware()), catalog.MediaTypeMovie)
	s.mountMediaRoutes(v1.Group("/tv", s.authMiddleware()), catalog.MediaTypeTV)

	searchRoutes := v1.Group("/search", s.authMiddleware())
	{
		searchRoutes.GET("/person/:query", s.search(catalog.SearchTypePerson))
		searchRoutes.GET("/movie/:query", s.search(catalog.SearchTypeMovie))
		searchRoutes.GET("/tv/:query", s.search(catalog.SearchTypeTV))
		searchRoutes.GET("/history", s.searchHistory)
		searchRoutes.DELETE("/history/:id", s.removeFromSearchHistory)
	}

	if s.config.ServeFrontend {
		s.setupFrontend()
	}
}

func (s *HTTPServerAdapter) mountMediaRoutes(group *gin.RouterGroup, media catalog.MediaType) {
	group.GET("/trending", s.trending(media))
	group.GET("/:id/trailers", s.trailers(media))
	group.GET("/:id/details", s.details(media))
	group.GET("/:id/similar", s.similar(media))
	group.GET("/category/:category", s.byCategory(media))
}

// getHealth handles GET /api/v1/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	if s.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		return
	}

	results := s.health.CheckAll(c.Request.Context())
	status, code := "healthy", http.StatusOK
	for _, r := range results {
		if r.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}
	c.JSON(code, gin.H{"status": status, "components": results})
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
