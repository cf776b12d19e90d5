package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "fileshelf.db", cfg.DatabaseURL)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "pdf", "txt"}, cfg.AllowedExtensions)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes())
	assert.False(t, cfg.ValidateReplaceType)
	assert.Equal(t, "admin", cfg.LoginUsername)
	assert.Equal(t, "1234", cfg.LoginPassword)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.CORSOrigins())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UPLOAD_DIR", "/srv/files")
	t.Setenv("ALLOWED_EXTENSIONS", " .GIF, csv ,,")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("VALIDATE_REPLACE_TYPE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/files", cfg.UploadDir)
	assert.Equal(t, []string{"gif", "csv"}, cfg.AllowedExtensions)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadBytes())
	assert.True(t, cfg.ValidateReplaceType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":        "verbose",
		"MAX_UPLOAD_MB":    "0",
		"SHUTDOWN_TIMEOUT": "soon",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(name, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestProdRejectsDefaultPassword(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOGIN_PASSWORD")

	t.Setenv("LOGIN_PASSWORD", "s3cret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestFinalizeAfterOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	cfg.UploadDir = ""
	assert.Error(t, cfg.Finalize())
}
