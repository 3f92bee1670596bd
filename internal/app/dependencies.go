package app

import (
	"fmt"
	"log/slog"
	"time"

	"catalogapi.app/internal/adapters/database"
	"catalogapi.app/internal/adapters/email"
	"catalogapi.app/internal/adapters/external"
	"catalogapi.app/internal/adapters/infrastructure"
	"catalogapi.app/internal/config"
	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DependencyContainer struct {
	config  *config.Config
	db      *gorm.DB
	metrics *infrastructure.PrometheusMetrics
	closers []func() error
	ports   *ports.ApplicationPorts
}

// NewDependencyContainer connects to PostgreSQL, migrates the schema and
// builds every adapter
func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return NewDependencyContainerWithDB(cfg, db)
}

// NewDependencyContainerWithDB builds the adapters around an open database
func NewDependencyContainerWithDB(cfg *config.Config, db *gorm.DB) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:  cfg,
		db:      db,
		metrics: infrastructure.NewPrometheusMetrics(),
	}

	if err := container.runMigrations(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	slog.Info("Initializing database connection...")

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("Database connection established successfully")
	return db, nil
}

func (c *DependencyContainer) runMigrations() error {
	slog.Info("Running database migrations...")

	if err := database.AutoMigrate(c.db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	appLogger := c.initializeLogger()

	// Database repositories
	userRepo := database.NewUserRepositoryAdapter(c.db)
	historyRepo := database.NewSearchHistoryRepositoryAdapter(c.db)

	tokenIssuer, err := infrastructure.NewJWTTokenIssuer(c.config.Auth.JWTSecret,
		time.Duration(c.config.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("create token issuer: %w", err)
	}

	// Email: SMTP transport and file templates
	sender := email.NewSMTPSender(email.SenderConfig{
		Host:     c.config.Email.SMTPHost,
		Port:     c.config.Email.SMTPPort,
		Username: c.config.Email.SMTPUsername,
		Password: c.config.Email.SMTPPassword,
		From:     c.config.Email.Sender(),
	}, appLogger)
	if err := sender.ValidateConfiguration(); err != nil {
		slog.Warn("SMTP sender is not fully configured", "error", err)
	}

	notifier, err := email.NewAccountEmailNotifier(email.NotifierConfig{
		Sender:    sender,
		Templates: email.NewTemplateStore(c.config.Email.TemplateDir),
		AppURL:    c.config.App.ClientBaseURL(),
		Logger:    appLogger,
		Recorder:  c.metrics,
	})
	if err != nil {
		return fmt.Errorf("create account notifier: %w", err)
	}

	// Catalog: TMDB behind logging and caching decorators
	cacheProvider, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	if closer, ok := cacheProvider.(interface{ Close() error }); ok {
		c.closers = append(c.closers, closer.Close)
	}
	slog.Info("Cache provider initialized", "type", c.config.Cache.Type.String())

	tmdb := external.NewTMDBProviderAdapter(external.TMDBProviderParams{
		APIKey:  c.config.TMDB.APIKey,
		BaseURL: c.config.TMDB.BaseURL,
		Timeout: time.Duration(c.config.TMDB.TimeoutSeconds) * time.Second,
		Logger:  appLogger,
	})
	logged := external.NewCatalogProviderLoggingDecorator(tmdb, tmdb.GetProviderName(), appLogger)

	catalogProvider, err := external.NewCachedCatalogProvider(external.CachedCatalogProviderParams{
		Provider:  logged,
		Cache:     cacheProvider,
		TTL:       time.Duration(c.config.Cache.TTLMinutes) * time.Minute,
		CacheType: c.config.Cache.Type.String(),
		Metrics:   c.metrics,
		Logger:    appLogger,
	})
	if err != nil {
		return fmt.Errorf("create cached catalog provider: %w", err)
	}

	c.ports = &ports.ApplicationPorts{
		UserRepository:          userRepo,
		SearchHistoryRepository: historyRepo,
		TokenIssuer:             tokenIssuer,
		PasswordHasher:          infrastructure.NewBcryptPasswordHasher(0),

		AccountNotifier: notifier,

		CatalogProvider: catalogProvider,

		Logger:         appLogger,
		HealthCheckers: []ports.HealthChecker{
			infrastructure.NewDatabaseHealthChecker(c.db),
			infrastructure.NewEmailHealthChecker(c.config.Email.SMTPHost, c.config.Email.SMTPPort, c.config.Email.SMTPUsername),
			infrastructure.NewCacheHealthChecker(cacheProvider, c.config.Cache.Type.String()),
		},
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// initializeLogger returns the file logger when LOG_FILE_PATH is set and
// the process-wide slog logger otherwise
func (c *DependencyContainer) initializeLogger() ports.Logger {
	if c.config.Log.FilePath == "" {
		return infrastructure.NewSlogLoggerAdapter(slog.Default())
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath, logger.ParseLevel(c.config.Log.Level))
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return infrastructure.NewSlogLoggerAdapter(slog.Default())
	}

	c.closers = append(c.closers, fileLogger.Close)
	slog.Info("File logging enabled", "path", c.config.Log.FilePath)
	return fileLogger
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetrics {
	return c.metrics
}

// Cleanup releases the cache client, log file and database pool
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil

	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			if err := db.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
