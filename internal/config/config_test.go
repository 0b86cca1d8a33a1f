package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"database_url": "postgres://localhost/registry",
		"min_containment_length": 8,
		"period": "Q4 25",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/registry", cfg.DatabaseURL)
	assert.Equal(t, 8, cfg.MinContainmentLength)
	assert.Equal(t, "Q4 25", cfg.Period)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{MinContainmentLength: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{MinContainmentLength: 6}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Period: "Q1 26"}
	defaults := Config{
		DatabaseURL:          "postgres://localhost/registry",
		Period:               "Q4 25",
		MinContainmentLength: 6,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres://localhost/registry", merged.DatabaseURL)
	assert.Equal(t, "Q1 26", merged.Period) // explicit value wins
	assert.Equal(t, 6, merged.MinContainmentLength)
}

func TestOperatorAuth(t *testing.T) {
	hash, err := HashPassword("compass-operator")
	require.NoError(t, err)

	t.Setenv("OPERATOR_PASSWORD_HASH", hash)
	auth, err := NewOperatorAuth()
	require.NoError(t, err)

	assert.True(t, auth.Verify("compass-operator"))
	assert.False(t, auth.Verify("wrong"))
}

func TestOperatorAuth_MissingEnv(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD_HASH", "")
	_, err := NewOperatorAuth()
	assert.Error(t, err)
}

func TestOperatorAuth_NotAHash(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD_HASH", "plaintext-password")
	_, err := NewOperatorAuth()
	assert.Error(t, err)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "12")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 12, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}
