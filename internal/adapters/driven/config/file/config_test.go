package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.toml")

	settings, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, settings.DefaultTopK)
	assert.Equal(t, domain.DefaultAlpha, settings.Alpha)
	assert.Equal(t, domain.DefaultMaxContextChars, settings.MaxContextChars)
	assert.Equal(t, domain.EmbeddingProviderOllama, settings.Embedding.Provider)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/tmp/taxsearch-test"
default_top_k = 10
alpha = 0.7
max_context_chars = 4000

[embedding]
provider = "ollama"
model = "nomic-embed-text"
dimensions = 768
timeout_seconds = 60
`)

	settings, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/taxsearch-test", settings.DataDir)
	assert.Equal(t, 10, settings.DefaultTopK)
	assert.InDelta(t, 0.7, settings.Alpha, 1e-9)
	assert.Equal(t, 4000, settings.MaxContextChars)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, 768, settings.Embedding.Dimensions)
	assert.Equal(t, 60*time.Second, settings.Embedding.Timeout)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "this is { not toml")

	_, err := Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoad_OutOfRangeValuesRejected(t *testing.T) {
	cases := map[string]string{
		"top_k too large": "default_top_k = 100",
		"negative alpha":  "alpha = -0.5",
		"alpha above one": "alpha = 1.5",
		"bad provider":    "[embedding]\nprovider = \"mystery\"",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)

			_, err := Load(path)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestLoad_OpenAIRequiresAPIKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	path := writeConfig(t, "[embedding]\nprovider = \"openai\"")

	_, err := Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv(apiKeyEnv, "sk-test-key")
	path := writeConfig(t, "[embedding]\nprovider = \"openai\"")

	settings, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", settings.Embedding.APIKey)
}

func TestWrite_RoundTripsWithoutAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	settings := domain.DefaultSettings()
	settings.DefaultTopK = 8
	settings.Embedding.APIKey = "sk-secret"

	require.NoError(t, Write(path, settings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-secret",
		"API key must never be written to disk")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.DefaultTopK)
}
