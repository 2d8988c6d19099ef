package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/tilde/constants"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Errorf("Expected defaults %+v, got %+v", def, cfg)
	}
	if cfg.Terminal.ReadTimeout != constants.DefaultReadTimeout {
		t.Errorf("Expected %v read timeout, got %v", constants.DefaultReadTimeout, cfg.Terminal.ReadTimeout)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err == nil {
		t.Fatal("Expected error for missing explicit config")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
file = "/tmp/tilde.log"

[terminal]
read_timeout = "300ms"
force_fallback = true
watch_resize = false

[render]
banner = "hello"
max_frame_bytes = 4096
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/tilde.log" {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}
	if cfg.Log.MaxSize != constants.DefaultLogMaxSize {
		t.Errorf("Expected default max size, got %d", cfg.Log.MaxSize)
	}
	if cfg.Terminal.ReadTimeout != 300*time.Millisecond || !cfg.Terminal.ForceFallback || cfg.Terminal.WatchResize {
		t.Errorf("Unexpected terminal config %+v", cfg.Terminal)
	}
	if cfg.Render.Banner != "hello" || cfg.Render.MaxFrameBytes != 4096 {
		t.Errorf("Unexpected render config %+v", cfg.Render)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"debug\"\n")
	t.Setenv("TILDE_LOG_LEVEL", "warn")
	t.Setenv("TILDE_TERMINAL_READ_TIMEOUT", "200ms")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected env level warn, got %q", cfg.Log.Level)
	}
	if cfg.Terminal.ReadTimeout != 200*time.Millisecond {
		t.Errorf("Expected env timeout 200ms, got %v", cfg.Terminal.ReadTimeout)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("TILDE_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--log-level", "trace", "--force-fallback"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(path, fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "trace" {
		t.Errorf("Expected flag level trace, got %q", cfg.Log.Level)
	}
	if !cfg.Terminal.ForceFallback {
		t.Error("Expected force fallback from flag")
	}
	if cfg.Log.File != "" {
		t.Errorf("Unset flag must not override, got log file %q", cfg.Log.File)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{"Level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"Negative max size", "[log]\nmax_size = -1\n", "log.max_size"},
		{"Zero timeout", "[terminal]\nread_timeout = \"0s\"\n", "terminal.read_timeout"},
		{"Huge timeout", "[terminal]\nread_timeout = \"1m\"\n", "terminal.read_timeout"},
		{"Frame bytes", "[render]\nmax_frame_bytes = 0\n", "render.max_frame_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), nil)
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("Expected error naming %s, got %v", tt.key, err)
			}
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "[log\nlevel = "), nil); err == nil {
		t.Fatal("Expected parse error")
	}
}
