package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir string, cfg map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadDefaultsOnly(t *testing.T) {
	loader := NewLoader(ConfigPrecedence{})
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "openrouter", cfg.API.Provider)
	assert.Equal(t, 16384, cfg.Loop.MaxResultChars)
	// The step ceiling is never defaulted.
	assert.Zero(t, cfg.Loop.MaxSteps)
	require.NotNil(t, cfg.Storage.SaveTranscripts)
	assert.True(t, *cfg.Storage.SaveTranscripts)
}

func TestLoadMergesFiles(t *testing.T) {
	userDir := t.TempDir()
	projectDir := t.TempDir()

	userPath := writeConfigFile(t, userDir, map[string]interface{}{
		"agent": map[string]interface{}{"model": "user/model"},
		"loop":  map[string]interface{}{"max_steps": 5},
	})
	projectPath := writeConfigFile(t, projectDir, map[string]interface{}{
		"agent":   map[string]interface{}{"model": "project/model"},
		"storage": map[string]interface{}{"save_transcripts": false},
	})

	loader := NewLoader(ConfigPrecedence{
		UserConfig:    userPath,
		ProjectConfig: projectPath,
	})
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Project overrides user where set; user values survive elsewhere.
	assert.Equal(t, "project/model", cfg.Agent.Model)
	assert.Equal(t, 5, cfg.Loop.MaxSteps)
	require.NotNil(t, cfg.Storage.SaveTranscripts)
	assert.False(t, *cfg.Storage.SaveTranscripts)
}

func TestLoadMissingFilesIgnored(t *testing.T) {
	loader := NewLoader(ConfigPrecedence{
		UserConfig: filepath.Join(t.TempDir(), "does-not-exist.json"),
	})
	_, err := loader.Load()
	assert.NoError(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	loader := NewLoader(ConfigPrecedence{UserConfig: path})
	_, err := loader.Load()
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DROVER_MODEL", "env/model")
	t.Setenv("DROVER_MAX_STEPS", "7")
	t.Setenv("DROVER_CALL_TIMEOUT", "45s")

	loader := NewLoader(ConfigPrecedence{EnvironmentPrefix: "DROVER"})
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "env/model", cfg.Agent.Model)
	assert.Equal(t, 7, cfg.Loop.MaxSteps)
	assert.Equal(t, 45*time.Second, cfg.Loop.CallTimeout)
}

func TestAPIKeyFromEnvVarIndirection(t *testing.T) {
	t.Setenv("MY_CUSTOM_KEY", "sk-test")

	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]interface{}{
		"api": map[string]interface{}{"api_key_env_var": "MY_CUSTOM_KEY"},
	})

	loader := NewLoader(ConfigPrecedence{UserConfig: path})
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.API.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	v := NewValidator()

	cfg := DefaultConfig()
	cfg.Logging.Level = "shout"
	assert.Error(t, v.Validate(cfg))

	cfg = DefaultConfig()
	cfg.Guard.ExtraPatterns = []string{"[unclosed"}
	err := v.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid guard pattern")

	cfg = DefaultConfig()
	cfg.MCPServers = []MCPServerConfig{{Name: "x"}}
	assert.Error(t, v.Validate(cfg))

	cfg = DefaultConfig()
	assert.NoError(t, v.Validate(cfg))
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Agent.Model = "saved/model"
	cfg.Loop.MaxSteps = 12

	loader := NewLoader(ConfigPrecedence{})
	require.NoError(t, loader.SaveFile(cfg, path))

	reloaded, err := NewLoader(ConfigPrecedence{UserConfig: path}).Load()
	require.NoError(t, err)
	assert.Equal(t, "saved/model", reloaded.Agent.Model)
	assert.Equal(t, 12, reloaded.Loop.MaxSteps)
}
