package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: identity
  log:
    level: debug
storage:
  driver: memory
jwt:
  secret: file-secret-file-secret-file-secret
  accessTTL: 15m
  includeRoles: false
auth:
  defaultRole: MEMBER
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))

	return dir
}

func TestLoadWithEnv_KeepsDefaultsForMissingKeys(t *testing.T) {
	t.Chdir(writeConfig(t, testYAML))

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "identity", cfg.Env.ServiceName)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, "/api/v1", cfg.JWT.Issuer)
	assert.False(t, cfg.JWT.IncludeRoles)
	assert.True(t, cfg.JWT.IncludePermissions)
	assert.True(t, cfg.JWT.IncludeUserDetails)
	assert.Equal(t, "MEMBER", cfg.Auth.DefaultRole)
	assert.Equal(t, "identity-service", cfg.Auth.ClientID)
}

func TestLoadWithEnv_EnvOverridesFile(t *testing.T) {
	t.Chdir(writeConfig(t, testYAML))
	t.Setenv("JWT_SECRET", "env-secret-env-secret-env-secret-env")
	t.Setenv("JWT_ACCESSTTL", "30m")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "env-secret-env-secret-env-secret-env", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = StorageDriverMemory
	assert.Error(t, cfg.Validate(), "no signing secret")

	cfg.JWT.Secret = "validate-secret-validate-secret-32"
	require.NoError(t, cfg.Validate())

	cfg.Storage.Driver = StorageDriverPostgres
	assert.Error(t, cfg.Validate(), "postgres driver without postgres section")

	cfg.Storage.Driver = "cassandra"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Storage.Driver = StorageDriverMemory
	cfg.JWT.Secret = "validate-secret-validate-secret-32"
	cfg.JWT.RefreshTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestShippedConfig_HasNoSigningSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadWithEnv[Config]("config", ".")
	require.NoError(t, err)

	assert.Empty(t, cfg.JWT.Secret)
	assert.ErrorContains(t, cfg.Validate(), "jwt.secret")
}
