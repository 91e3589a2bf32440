package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig points the config file lookup at a path that does not exist
// so tests never pick up a developer's real config.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("QUERYSIM_CONFIG", filepath.Join(t.TempDir(), "absent.json"))
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(1048576), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "analyst", cfg.Auth.Username)
	assert.Equal(t, "analystpass", cfg.Auth.Password)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "", cfg.Storage.Path)
	assert.Equal(t, 50, cfg.Storage.SeedRows)
	assert.Equal(t, int64(0), cfg.Synth.Seed)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QUERYSIM_ADDR", ":9090")
	t.Setenv("QUERYSIM_AUTH_TOKEN_TTL", "5")
	t.Setenv("QUERYSIM_LOG_LEVEL", "debug")
	t.Setenv("QUERYSIM_SYNTH_SEED", "1234")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(1234), cfg.Synth.Seed)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"server":  {"addr": ":7070"},
		"storage": {"seed_rows": 10},
		"logging": {"level": "warn"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("QUERYSIM_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Storage.SeedRows)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched fields still carry their defaults.
	assert.Equal(t, "analyst", cfg.Auth.Username)
}

func TestLoadConfig_FlagOverridesWin(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QUERYSIM_ADDR", ":9090")

	cfg, err := LoadConfigWithOverrides(map[string]interface{}{
		"addr":      ":6060",
		"db-path":   "/tmp/warehouse.db",
		"log-level": "error",
		"seed":      int64(7),
	})
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.Server.Addr)
	assert.Equal(t, "/tmp/warehouse.db", cfg.Storage.Path)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, int64(7), cfg.Synth.Seed)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "bad log level",
			env:  map[string]string{"QUERYSIM_LOG_LEVEL": "verbose"},
			want: "invalid log level",
		},
		{
			name: "bad log format",
			env:  map[string]string{"QUERYSIM_LOG_FORMAT": "xml"},
			want: "invalid log format",
		},
		{
			name: "bad read timeout",
			env:  map[string]string{"QUERYSIM_READ_TIMEOUT": "soon"},
			want: "invalid server read timeout",
		},
		{
			name: "empty password",
			env:  map[string]string{"QUERYSIM_AUTH_PASSWORD": ""},
			want: "must not be empty",
		},
		{
			name: "zero token ttl",
			env:  map[string]string{"QUERYSIM_AUTH_TOKEN_TTL": "0"},
			want: "token TTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "data.db"), ExpandPath("~/data.db"))
	assert.Equal(t, "/var/lib/data.db", ExpandPath("/var/lib/data.db"))
	assert.Equal(t, "", ExpandPath(""))
}
