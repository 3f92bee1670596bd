package config

import (
	"fmt"
	"strings"

	"catalogapi.app/pkg/errors"
	"github.com/kelseyhightower/envconfig"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPortNumber      = 65535

	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	App      AppConfig      `split_words:"true"`
	Email    EmailConfig    `split_words:"true"`
	Auth     AuthConfig     `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	TMDB     TMDBConfig
	Cache    CacheConfig `split_words:"true"`
	Log      LogConfig   `split_words:"true"`
}

type ServerConfig struct {
	Port         int `envconfig:"PORT" default:"5000"`
	RateLimitRPS int `envconfig:"RATE_LIMIT_RPS" default:"100"`
}

// AppConfig holds the deployment flags that shape CORS and frontend serving
type AppConfig struct {
	Environment     string `envconfig:"NODE_ENV" default:"development"`
	ClientURL       string `envconfig:"CLIENT_URL"`
	DevClientURL    string `envconfig:"DEV_CLIENT_URL" default:"http://localhost:5173"`
	ServeFrontend   bool   `envconfig:"SERVE_FRONTEND" default:"false"`
	FrontendDistDir string `envconfig:"FRONTEND_DIST_DIR" default:"frontend/dist"`
}

// IsProduction reports whether NODE_ENV is production
func (a AppConfig) IsProduction() bool {
	return a.Environment == EnvironmentProduction
}

// ClientBaseURL returns the frontend URL the backend links to and trusts first
func (a AppConfig) ClientBaseURL() string {
	if a.IsProduction() && a.ClientURL != "" {
		return a.ClientURL
	}
	return a.DevClientURL
}

// AllowedOrigins computes the CORS allowlist. In production the configured
// client URL is added together with its trailing-slash variant.
func (a AppConfig) AllowedOrigins() []string {
	origins := []string{a.ClientBaseURL()}

	if a.IsProduction() && a.ClientURL != "" {
		origins = append(origins, a.ClientURL)
		if strings.HasSuffix(a.ClientURL, "/") {
			origins = append(origins, strings.TrimSuffix(a.ClientURL, "/"))
		} else {
			origins = append(origins, a.ClientURL+"/")
		}
	}

	return origins
}

// ShouldServeFrontend reports whether the bundled frontend is served by this process
func (a AppConfig) ShouldServeFrontend() bool {
	return a.IsProduction() && a.ServeFrontend
}

type EmailConfig struct {
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"GOOGLE_APP_EMAIL"`
	SMTPPassword string `envconfig:"GOOGLE_APP_PASSWORD"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS"`
	TemplateDir  string `envconfig:"EMAIL_TEMPLATE_DIR" default:"templates/email-templates"`
}

// Sender returns the envelope sender, which defaults to the SMTP account
func (e EmailConfig) Sender() string {
	if e.FromAddress != "" {
		return e.FromAddress
	}
	return e.SMTPUsername
}

type AuthConfig struct {
	JWTSecret                string `envconfig:"JWT_SECRET"`
	CookieName               string `envconfig:"JWT_COOKIE_NAME" default:"jwt-netflix"`
	TokenTTLHours            int    `envconfig:"JWT_TTL_HOURS" default:"360"`
	VerificationCodeTTLHours int    `envconfig:"VERIFICATION_CODE_TTL_HOURS" default:"24"`
	ResetTokenTTLMinutes     int    `envconfig:"RESET_TOKEN_TTL_MINUTES" default:"60"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"catalogapi"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type TMDBConfig struct {
	APIKey         string `envconfig:"TMDB_API_KEY"`
	BaseURL        string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	TimeoutSeconds int    `envconfig:"TMDB_TIMEOUT_SECONDS" default:"10"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type       CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes int         `envconfig:"CACHE_TTL_MINUTES" default:"10"`
	Redis      RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath string `envconfig:"LOG_FILE_PATH"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.TMDB.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("PORT must be between 1 and 65535", nil)
	}
	if s.RateLimitRPS < 0 {
		return errors.NewConfigurationError("RATE_LIMIT_RPS cannot be negative", nil)
	}
	return nil
}

func (a *AppConfig) Validate() error {
	if a.Environment != EnvironmentDevelopment && a.Environment != EnvironmentProduction {
		return errors.NewConfigurationError("NODE_ENV must be one of: development, production", nil)
	}
	if !isHTTPURL(a.ClientBaseURL()) {
		return errors.NewConfigurationError("client URL must start with http:// or https://", nil)
	}
	if a.ServeFrontend && a.FrontendDistDir == "" {
		return errors.NewConfigurationError("FRONTEND_DIST_DIR cannot be empty when SERVE_FRONTEND is set", nil)
	}
	return nil
}

func (e *EmailConfig) Validate() error {
	if e.SMTPHost == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_HOST cannot be empty", nil)
	}
	if e.SMTPPort < 1 || e.SMTPPort > maxPortNumber {
		return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
	}
	if (e.SMTPUsername == "") != (e.SMTPPassword == "") {
		return errors.NewConfigurationError("GOOGLE_APP_EMAIL and GOOGLE_APP_PASSWORD must both be provided or both be empty", nil)
	}
	if e.TemplateDir == "" {
		return errors.NewConfigurationError("EMAIL_TEMPLATE_DIR cannot be empty", nil)
	}
	return nil
}

func (a *AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return errors.NewConfigurationError("JWT_SECRET cannot be empty", nil)
	}
	if a.CookieName == "" {
		return errors.NewConfigurationError("JWT_COOKIE_NAME cannot be empty", nil)
	}
	if a.TokenTTLHours < 1 {
		return errors.NewConfigurationError("JWT_TTL_HOURS must be at least 1 hour", nil)
	}
	if a.VerificationCodeTTLHours < 1 {
		return errors.NewConfigurationError("VERIFICATION_CODE_TTL_HOURS must be at least 1 hour", nil)
	}
	if a.ResetTokenTTLMinutes < 1 {
		return errors.NewConfigurationError("RESET_TOKEN_TTL_MINUTES must be at least 1 minute", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (t *TMDBConfig) Validate() error {
	if t.APIKey == "" {
		return errors.NewConfigurationError("TMDB_API_KEY cannot be empty", nil)
	}
	if !isHTTPURL(t.BaseURL) {
		return errors.NewConfigurationError("TMDB_BASE_URL must start with http:// or https://", nil)
	}
	if t.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("TMDB_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.TTLMinutes < 1 || c.TTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}
	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 || r.ReadTimeout < 1 || r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS timeouts must be at least 1 second", nil)
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
