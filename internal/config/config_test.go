package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAPERBRIEF_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("PAPERBRIEF_OUTPUT_DIR", "")

	cfg := Load("")

	assert.Equal(t, "summaries", cfg.Output.Dir)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Equal(t, 30, cfg.Query.MaxResults)
	assert.Equal(t, []string{"cs.HC", "cs.CY", "cs.CL"}, cfg.Query.Categories)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "arxiv-api", cfg.Sites[0].Scanner)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paperbrief.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
output:
  dir: /tmp/briefs
openai:
  model: from-file
query:
  maxResults: 5
sites:
  - name: journal
    scanner: html-listing
    options:
      listingUrl: https://journal.example.org/latest
      baseUrl: https://journal.example.org
      detailSelector: section#summary
`), 0o644))

	t.Setenv("PAPERBRIEF_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "from-env")
	t.Setenv("PAPERBRIEF_OUTPUT_DIR", "")

	cfg := Load(path)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/briefs", cfg.Output.Dir)
	assert.Equal(t, 5, cfg.Query.MaxResults)

	// Env wins over the file for credential and model.
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "from-env", cfg.OpenAI.Model)

	// File-level defaults that were not overridden survive.
	assert.Equal(t, 0.2, cfg.OpenAI.Temperature)
	assert.Equal(t, 350, cfg.OpenAI.MaxTokens)

	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "journal", cfg.Sites[0].Name)
	assert.Equal(t, "section#summary", cfg.Sites[0].Options["detailSelector"])
}

func TestLoadEnvConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paperbrief.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query:\n  maxResults: 12\n"), 0o644))

	t.Setenv("PAPERBRIEF_CONFIG", path)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("PAPERBRIEF_OUTPUT_DIR", "")

	cfg := Load("")

	assert.Equal(t, 12, cfg.Query.MaxResults)
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv("PAPERBRIEF_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("PAPERBRIEF_OUTPUT_DIR", "")

	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 30, cfg.Query.MaxResults)
	assert.Equal(t, "summaries", cfg.Output.Dir)
}
