package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"fileshelf/internal/pkg/validator"
)

const (
	defaultLoginPassword     = "1234"
	defaultAllowedExtensions = "png,jpg,jpeg,pdf,txt"
)

// Config holds every runtime setting. Values come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	AppEnv              string `env:"APP_ENV,default=dev"`
	HTTPAddr            string `env:"HTTP_ADDR,default=:8080" validate:"required"`
	DatabaseURL         string `env:"DATABASE_URL,default=fileshelf.db" validate:"required"`
	UploadDir           string `env:"UPLOAD_DIR,default=./uploads" validate:"required"`
	AllowedExtensionRaw string `env:"ALLOWED_EXTENSIONS"`
	MaxUploadMB         int    `env:"MAX_UPLOAD_MB,default=50" validate:"min=1"`
	ValidateReplaceType bool   `env:"VALIDATE_REPLACE_TYPE,default=false"`
	LoginUsername       string `env:"LOGIN_USERNAME,default=admin" validate:"required"`
	LoginPassword       string `env:"LOGIN_PASSWORD,default=1234" validate:"required"`
	CORSAllowedOrigins  string `env:"CORS_ALLOWED_ORIGINS"`
	LogLevel            string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	LogDir              string `env:"LOG_DIR"`
	ShutdownTimeoutRaw  string `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// Derived by Finalize.
	AllowedExtensions []string
	ShutdownTimeout   time.Duration
}

// Load reads .env (if present) and the environment into a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize derives parsed fields and validates. Call it again after
// overriding raw fields (for example from command-line flags).
func (c *Config) Finalize() error {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	raw := strings.TrimSpace(c.AllowedExtensionRaw)
	if raw == "" {
		raw = defaultAllowedExtensions
	}
	c.AllowedExtensions = c.AllowedExtensions[:0]
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			c.AllowedExtensions = append(c.AllowedExtensions, ext)
		}
	}

	var err error
	c.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeoutRaw)
	if err != nil {
		return err
	}

	return validateConfig(c)
}

// MaxUploadBytes is the per-file upload limit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// CORSOrigins returns the extra origins from CORS_ALLOWED_ORIGINS.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func validateConfig(cfg *Config) error {
	if fields := validator.Validate(cfg); fields != nil {
		return fmt.Errorf("invalid config: %s", validator.Describe(fields))
	}
	if len(cfg.AllowedExtensions) == 0 {
		return fmt.Errorf("ALLOWED_EXTENSIONS must list at least one extension")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.LoginPassword, defaultLoginPassword) {
		return fmt.Errorf("in prod/release LOGIN_PASSWORD must be set and not default")
	}
	return nil
}

func isProdLike(appEnv string) bool {
	return appEnv == "prod" || appEnv == "production" || appEnv == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}
