package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "PORT", "EMPLOYEE_STORE", "EMPLOYEE_TABLE_NAME",
		"CORS_ALLOWED_ORIGINS", "FILTER_CASE_SENSITIVE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.FilterCaseSensitive)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMPLOYEE_STORE", "DynamoDB")
	t.Setenv("EMPLOYEE_TABLE_NAME", "employees")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("FILTER_CASE_SENSITIVE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://directory.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreDynamoDB, cfg.Store)
	assert.Equal(t, "employees", cfg.TableName)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDBEndpoint)
	assert.True(t, cfg.FilterCaseSensitive)
	assert.Equal(t, []string{"http://localhost:3000", "https://directory.example.com"}, cfg.AllowedOrigins)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("EMPLOYEE_STORE", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "EMPLOYEE_STORE")
}

func TestLoadDynamoDBRequiresTable(t *testing.T) {
	t.Setenv("EMPLOYEE_STORE", "dynamodb")
	t.Setenv("EMPLOYEE_TABLE_NAME", "")

	_, err := Load()
	assert.ErrorContains(t, err, "EMPLOYEE_TABLE_NAME")
}

func TestLoadLambda(t *testing.T) {
	t.Run("missing table name", func(t *testing.T) {
		t.Setenv("EMPLOYEE_TABLE_NAME", "")

		_, err := LoadLambda()
		assert.ErrorContains(t, err, "EMPLOYEE_TABLE_NAME is not specified")
	})

	t.Run("table name set", func(t *testing.T) {
		t.Setenv("EMPLOYEE_TABLE_NAME", "employees")
		t.Setenv("ENVIRONMENT", "")

		cfg, err := LoadLambda()
		require.NoError(t, err)
		assert.Equal(t, "employees", cfg.TableName)
		assert.Equal(t, StoreDynamoDB, cfg.Store)
		assert.Equal(t, "production", cfg.Environment)
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_TEST_TABLE=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DOTENV_TEST_TABLE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("DOTENV_TEST_TABLE"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
