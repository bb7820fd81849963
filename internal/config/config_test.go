package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 3*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Redis.LoginPerMinute)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  driver: mongo
  name: tracker
jwt:
  secret: file-secret
  expiration: 45m
s3:
  region: eu-central-1
  bucket_name: exports
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "tracker", cfg.Database.Name)
	assert.Equal(t, 45*time.Minute, cfg.JWT.Expiration)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=dotenv-secret\n"), 0o600))
	// t.Setenv restores the original value once the test ends.
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.JWT.Secret)
}

func TestLoadConfig_Validation(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "s", "DATABASE_DRIVER": "sqlite"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}
