package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "full config",
			config: Config{
				ListenAddr:   "127.0.0.1:9000",
				APIKey:       "secret",
				RemoteURL:    "https://fmt.example.com",
				MaxBodyBytes: 1024,
				Timeout:      "5s",
				MaxDepth:     8,
				Formatters: []FormatterConfig{
					{Command: "gofmt", Languages: []string{"go"}},
				},
			},
			wantErr: false,
		},
		{
			name:    "invalid listen addr",
			config:  Config{ListenAddr: "8080"},
			wantErr: true,
			errMsg:  "invalid listen_addr",
		},
		{
			name:    "invalid remote scheme",
			config:  Config{RemoteURL: "ftp://fmt.example.com"},
			wantErr: true,
			errMsg:  "remote_url must use http or https",
		},
		{
			name:    "negative body limit",
			config:  Config{MaxBodyBytes: -1},
			wantErr: true,
			errMsg:  "max_body_bytes",
		},
		{
			name:    "negative depth",
			config:  Config{MaxDepth: -1},
			wantErr: true,
			errMsg:  "max_depth",
		},
		{
			name:    "invalid timeout",
			config:  Config{Timeout: "soon"},
			wantErr: true,
			errMsg:  "invalid timeout",
		},
		{
			name:    "formatter without command",
			config:  Config{Formatters: []FormatterConfig{{Languages: []string{"go"}}}},
			wantErr: true,
			errMsg:  "formatters[0]: command is required",
		},
		{
			name:    "formatter without languages",
			config:  Config{Formatters: []FormatterConfig{{Command: "gofmt"}}},
			wantErr: true,
			errMsg:  "at least one language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateServer(t *testing.T) {
	assert.EqualError(t, (&Config{}).ValidateServer(), "api_key is required")
	assert.NoError(t, (&Config{APIKey: "k"}).ValidateServer())
}

func TestConfig_ValidateRemote(t *testing.T) {
	assert.EqualError(t, (&Config{APIKey: "k"}).ValidateRemote(), "remote_url is required")
	assert.EqualError(t, (&Config{RemoteURL: "http://x"}).ValidateRemote(), "api_key is required")
	assert.NoError(t, (&Config{APIKey: "k", RemoteURL: "http://x"}).ValidateRemote())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultListenAddr, cfg.Addr())
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.BodyLimit())
	assert.Equal(t, DefaultTimeout, cfg.FormatTimeout())

	cfg = &Config{ListenAddr: ":9000", MaxBodyBytes: 10, Timeout: "250ms"}
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, int64(10), cfg.BodyLimit())
	assert.Equal(t, 250*time.Millisecond, cfg.FormatTimeout())
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("BBFMT vars take precedence", func(t *testing.T) {
		t.Setenv("BBFMT_API_KEY", "bbfmt-key")
		t.Setenv("API_KEY", "legacy-key")
		t.Setenv("BBFMT_LISTEN_ADDR", ":9999")
		t.Setenv("BBFMT_REMOTE_URL", "https://remote.example.com")

		cfg := &Config{APIKey: "file-key"}
		cfg.LoadFromEnv()

		assert.Equal(t, "bbfmt-key", cfg.APIKey)
		assert.Equal(t, ":9999", cfg.ListenAddr)
		assert.Equal(t, "https://remote.example.com", cfg.RemoteURL)
	})

	t.Run("API_KEY fallback", func(t *testing.T) {
		t.Setenv("BBFMT_API_KEY", "")
		t.Setenv("API_KEY", "legacy-key")

		cfg := &Config{}
		cfg.LoadFromEnv()
		assert.Equal(t, "legacy-key", cfg.APIKey)
	})

	t.Run("unset vars keep file values", func(t *testing.T) {
		t.Setenv("BBFMT_API_KEY", "")
		t.Setenv("API_KEY", "")
		t.Setenv("BBFMT_LISTEN_ADDR", "")
		t.Setenv("BBFMT_REMOTE_URL", "")

		cfg := &Config{APIKey: "file-key", ListenAddr: ":1234"}
		cfg.LoadFromEnv()
		assert.Equal(t, "file-key", cfg.APIKey)
		assert.Equal(t, ":1234", cfg.ListenAddr)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/bbfmt/config.yml", DefaultConfigPath())
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "bbfmt", "config.yml"), DefaultConfigPath())
	})
}

func TestResolvePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/tmp/c.yml", ResolvePath("/tmp/c.yml"))
	assert.Equal(t, "/xdg/bbfmt/config.yml", ResolvePath(""))
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := &Config{
		ListenAddr: ":9000",
		APIKey:     "secret",
		Timeout:    "3s",
		Formatters: []FormatterConfig{
			{Name: "gofmt", Command: "gofmt", Languages: []string{"go"}},
			{Command: "black", Args: []string{"--quiet", "-"}, Languages: []string{"python"}},
		},
	}
	require.NoError(t, original.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("listen_addr: [unclosed"), 0600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("BBFMT_API_KEY", "env-key")
	t.Setenv("BBFMT_LISTEN_ADDR", "")
	t.Setenv("BBFMT_REMOTE_URL", "")

	dir := t.TempDir()

	cfg, err := LoadWithEnv(filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":7000\"\napi_key: file-key\n"), 0600))
	cfg, err = LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "env-key", cfg.APIKey)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("formatters: {command: ["), 0600))
	_, err = LoadWithEnv(bad)
	require.Error(t, err)
}
