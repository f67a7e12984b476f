package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, int64(20), cfg.Merge.MaxFileSizeMB)
	assert.Equal(t, 50, cfg.Merge.MaxFiles)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOMMERGE_SERVER_PORT", ":9090")
	t.Setenv("BOMMERGE_MERGE_MAX_FILES", "3")
	t.Setenv("BOMMERGE_MERGE_MAX_FILE_SIZE_MB", "5")
	t.Setenv("BOMMERGE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Merge.MaxFiles)
	assert.Equal(t, int64(5), cfg.Merge.MaxFileSizeMB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Port)
}
