package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shroud/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceWithPath(filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceWithPath(path)

	cfg := DefaultConfig()
	cfg.BackendURL = "https://proxy.example:8443/api"
	cfg.Timeout = "15s"
	cfg.UISettings.WrapWidth = 100
	cfg.Log.Level = "debug"
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 15*time.Second, loaded.TimeoutDuration())
}

func TestLoadFromPathKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend_url = \"http://10.0.0.2:9000\"\n"), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9000", cfg.BackendURL)
	assert.True(t, cfg.UISettings.ShowSnippets)
	assert.Equal(t, "shroud.log", cfg.Log.File)
	assert.Zero(t, cfg.TimeoutDuration())
}

func TestLoadFromPathRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"not toml":       "backend_url = ",
		"relative url":   `backend_url = "/api"`,
		"bad scheme":     `backend_url = "ftp://x.example"`,
		"bad timeout":    "timeout = \"soon\"\nbackend_url = \"http://x\"",
		"negative width": "backend_url = \"http://x\"\n[ui]\nwrap_width = -1",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewConfigService().LoadFromPath(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	_, err := NewConfigServiceWithBus(bus, filepath.Join(t.TempDir(), "config.toml")).Load()
	require.NoError(t, err)

	select {
	case e := <-got:
		ev := e.(eventbus.ConfigLoadedEvent)
		assert.Empty(t, ev.Path, "defaults were used")
		assert.Equal(t, DefaultBackendURL, ev.BackendURL)
	case <-time.After(time.Second):
		t.Fatal("no ConfigLoaded event")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SHROUD_BACKEND_URL", "https://env.example")
	t.Setenv("SHROUD_LOG_LEVEL", "debug")
	t.Setenv("SHROUD_LOG_FILE", "/tmp/shroud-test.log")
	t.Setenv("SHROUD_TIMEOUT", "3s")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "https://env.example", cfg.BackendURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/shroud-test.log", cfg.Log.File)
	assert.Equal(t, 3*time.Second, cfg.TimeoutDuration())
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SHROUD_TIMEOUT", "forever")
	assert.Error(t, ApplyEnv(DefaultConfig()))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SHROUD_BACKEND_URL=http://dotenv.example\nSHROUD_LOG_LEVEL=warn\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"),
		[]byte("SHROUD_BACKEND_URL=http://staging.example\n"), 0644))

	t.Setenv("SHROUD_ENV", "staging")
	// registered so t.Setenv restores them after godotenv writes
	t.Setenv("SHROUD_BACKEND_URL", "")
	t.Setenv("SHROUD_LOG_LEVEL", "")
	os.Unsetenv("SHROUD_BACKEND_URL")
	os.Unsetenv("SHROUD_LOG_LEVEL")

	require.NoError(t, LoadDotEnv(dir))

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "http://staging.example", cfg.BackendURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadDotEnvMissingFiles(t *testing.T) {
	t.Setenv("SHROUD_ENV", "nowhere")
	assert.NoError(t, LoadDotEnv(t.TempDir()))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if _, err := os.UserConfigDir(); err != nil {
		t.Skip("no user config dir on this platform")
	}
	path := DefaultPath()
	assert.Equal(t, "config.toml", filepath.Base(path))
	assert.Equal(t, "shroud", filepath.Base(filepath.Dir(path)))
}
