package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "session-secret")
	t.Setenv("IDENTITY_SECRET", "identity-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "catalog_admin", cfg.DBName)
	assert.Equal(t, int64(10), cfg.PageSize)
	assert.Equal(t, int64(100), cfg.SearchWindow)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.CursorTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("SESSION_TTL", "2")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(25), cfg.PageSize)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://admin.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("PAGE_SIZE", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(10), cfg.PageSize)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("IDENTITY_SECRET", "identity-secret")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	require.Error(t, err)
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadReportsBrokenDotEnv(t *testing.T) {
	setRequired(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestLoadWithoutDotEnv(t *testing.T) {
	setRequired(t)
	chdirTemp(t)

	_, err := Load()
	require.NoError(t, err)
}
