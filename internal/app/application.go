package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"catalogapi.app/internal/adapters/api"
	"catalogapi.app/internal/adapters/infrastructure"
	"catalogapi.app/internal/config"
	"catalogapi.app/internal/core/account"
	"catalogapi.app/internal/core/catalog"
	"catalogapi.app/internal/ports"
	"github.com/gin-gonic/gin"
)

type Application struct {
	config *config.Config

	// Use Cases
	accountUseCase *account.UseCase
	catalogUseCase *catalog.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	container *DependencyContainer
	ports     *ports.ApplicationPorts
}

// NewApplication loads configuration from the environment and connects
// to every backing service
func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	slog.Info("Initializing application ports...")
	container, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}
	slog.Info("Application ports initialized successfully")

	return NewApplicationWithDependencies(cfg, container)
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, container *DependencyContainer) (*Application, error) {
	app := &Application{
		config:    cfg,
		container: container,
		ports:     container.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	accountUseCase, err := account.NewUseCase(account.UseCaseDependencies{
		Users:               a.ports.UserRepository,
		Hasher:              a.ports.PasswordHasher,
		Notifier:            a.ports.AccountNotifier,
		Logger:              a.ports.Logger,
		ClientBaseURL:       a.config.App.ClientBaseURL(),
		VerificationCodeTTL: time.Duration(a.config.Auth.VerificationCodeTTLHours) * time.Hour,
		ResetTokenTTL:       time.Duration(a.config.Auth.ResetTokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("create account use case: %w", err)
	}
	a.accountUseCase = accountUseCase

	catalogUseCase, err := catalog.NewUseCase(catalog.UseCaseDependencies{
		Provider: a.ports.CatalogProvider,
		History:  a.ports.SearchHistoryRepository,
		Logger:   a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create catalog use case: %w", err)
	}
	a.catalogUseCase = catalogUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			RateLimitRPS:   a.config.Server.RateLimitRPS,
			AllowedOrigins: a.config.App.AllowedOrigins(),
			CookieName:     a.config.Auth.CookieName,
			CookieTTL:      time.Duration(a.config.Auth.TokenTTLHours) * time.Hour,
			SecureCookies:  a.config.App.IsProduction(),
			ServeFrontend:  a.config.App.ShouldServeFrontend(),
			FrontendDir:    a.config.App.FrontendDistDir,
		},
		AccountUseCase:      a.accountUseCase,
		CatalogUseCase:      a.catalogUseCase,
		TokenIssuer:         a.ports.TokenIssuer,
		SystemHealthChecker: infrastructure.NewSystemHealthChecker(a.ports.HealthCheckers...),
		Metrics:             a.container.Metrics(),
		Logger:              a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	// Store router for testing access
	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully", "allowedOrigins", a.config.App.AllowedOrigins())
	return nil
}

// Start serves HTTP until Shutdown is called
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.container.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}
