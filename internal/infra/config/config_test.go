package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"PORT",
		"EMBEDDER_URL",
		"EMBEDDING_MODEL",
		"CHAT_MODEL",
		"CHAT_TIMEOUT_SECONDS",
		"CHAT_REQUESTS_PER_SECOND",
		"OTEL_LOGS_ENABLED",
	}
	for _, key := range envVars {
		_ = os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "9020", cfg.Port)
	assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ChatModel)
	assert.Equal(t, 120, cfg.ChatTimeout)
	assert.Equal(t, 2.0, cfg.ChatRPS)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CHAT_MODEL", "llama-3.1-8b-instant")
	t.Setenv("CHAT_TIMEOUT_SECONDS", "45")
	t.Setenv("CHAT_REQUESTS_PER_SECOND", "0.5")
	t.Setenv("OTEL_LOGS_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.ChatModel)
	assert.Equal(t, 45, cfg.ChatTimeout)
	assert.Equal(t, 0.5, cfg.ChatRPS)
	assert.True(t, cfg.OTelEnabled)
}

func TestLoad_SecretFromFile(t *testing.T) {
	_ = os.Unsetenv("CHAT_API_KEY")

	path := filepath.Join(t.TempDir(), "api_key")
	assert.NoError(t, os.WriteFile(path, []byte("gsk_test_key\n"), 0o600))
	t.Setenv("CHAT_API_KEY_FILE", path)

	cfg := Load()

	assert.Equal(t, "gsk_test_key", cfg.ChatAPIKey)
}

func TestLoad_SecretEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_key")
	assert.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))
	t.Setenv("CHAT_API_KEY_FILE", path)
	t.Setenv("CHAT_API_KEY", "from-env")

	cfg := Load()

	assert.Equal(t, "from-env", cfg.ChatAPIKey)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("CHAT_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 120, cfg.ChatTimeout)
}
