package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pmallet/go-md2overleaf/internal/config"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if cfg.Script.Path != "{vault}/markdown_to_tex.sh" {
		t.Errorf("Script.Path = %q", cfg.Script.Path)
	}
	if cfg.Script.DrawingPath != "{vault}/excalidraw_to_png.sh" {
		t.Errorf("Script.DrawingPath = %q", cfg.Script.DrawingPath)
	}
	if cfg.Upload.URL != "https://oshi.at" {
		t.Errorf("Upload.URL = %q", cfg.Upload.URL)
	}
	if cfg.Editor.BaseURL != "https://www.overleaf.com/docs" {
		t.Errorf("Editor.BaseURL = %q", cfg.Editor.BaseURL)
	}
	if cfg.Editor.Engine != "xelatex" {
		t.Errorf("Editor.Engine = %q", cfg.Editor.Engine)
	}
	if !cfg.Editor.AutoOpen {
		t.Error("Editor.AutoOpen = false, want true")
	}
	if cfg.Output.Dir != "" {
		t.Errorf("Output.Dir = %q, want empty (derived from vault)", cfg.Output.Dir)
	}
}

// ---------------------------------------------------------------------------
// TestValidate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		valid   bool
		wantErr error // sentinel to match, nil to only require failure
	}{
		{
			name:   "defaults are valid",
			mutate: func(*config.Config) {},
			valid:  true,
		},
		{
			name:    "empty upload url",
			mutate:  func(c *config.Config) { c.Upload.URL = "" },
			wantErr: config.ErrInvalidURL,
		},
		{
			name:    "upload url without scheme",
			mutate:  func(c *config.Config) { c.Upload.URL = "oshi.at" },
			wantErr: config.ErrInvalidURL,
		},
		{
			name:    "upload url with ftp scheme",
			mutate:  func(c *config.Config) { c.Upload.URL = "ftp://oshi.at" },
			wantErr: config.ErrInvalidURL,
		},
		{
			name:    "editor base url invalid",
			mutate:  func(c *config.Config) { c.Editor.BaseURL = "not a url" },
			wantErr: config.ErrInvalidURL,
		},
		{
			name:    "empty engine",
			mutate:  func(c *config.Config) { c.Editor.Engine = "" },
			wantErr: config.ErrEmptyEngine,
		},
		{
			name:   "empty script path",
			mutate: func(c *config.Config) { c.Script.Path = "" },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.valid {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfigExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `script:
  path: /opt/tools/convert.sh
upload:
  url: http://upload.example
editor:
  engine: pdflatex
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Provided fields override defaults; the rest stay at defaults.
	if cfg.Script.Path != "/opt/tools/convert.sh" {
		t.Errorf("Script.Path = %q", cfg.Script.Path)
	}
	if cfg.Upload.URL != "http://upload.example" {
		t.Errorf("Upload.URL = %q", cfg.Upload.URL)
	}
	if cfg.Editor.Engine != "pdflatex" {
		t.Errorf("Editor.Engine = %q", cfg.Editor.Engine)
	}
	if cfg.Script.DrawingPath != "{vault}/excalidraw_to_png.sh" {
		t.Errorf("Script.DrawingPath = %q, want default preserved", cfg.Script.DrawingPath)
	}
	if cfg.Editor.BaseURL != "https://www.overleaf.com/docs" {
		t.Errorf("Editor.BaseURL = %q, want default preserved", cfg.Editor.BaseURL)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("uplaod:\n  url: https://oshi.at\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := config.LoadConfig(path)
	if !errors.Is(err, config.ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("upload:\n  url: not-a-url\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := config.LoadConfig(path)
	if !errors.Is(err, config.ErrInvalidURL) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidURL", err)
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigEmptyName(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig("")
	if !errors.Is(err, config.ErrEmptyConfigName) {
		t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
	}
}

// ---------------------------------------------------------------------------
// TestSaveConfig
// ---------------------------------------------------------------------------

// Save-then-load round trip through the user config directory, redirected
// into a temp dir via XDG_CONFIG_HOME.
func TestSaveConfigRoundTrip(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user config dir redirection uses XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Upload.URL = "http://upload.example"
	cfg.Editor.AutoOpen = false

	path, err := config.SaveConfig("work", cfg)
	if err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	if filepath.Base(path) != "work.yaml" {
		t.Errorf("SaveConfig() path = %q, want work.yaml leaf", path)
	}

	loaded, err := config.LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}
	if loaded.Upload.URL != "http://upload.example" {
		t.Errorf("round-tripped Upload.URL = %q", loaded.Upload.URL)
	}
	if loaded.Editor.AutoOpen {
		t.Error("round-tripped Editor.AutoOpen = true, want false")
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Editor.Engine = ""

	if _, err := config.SaveConfig("broken", cfg); !errors.Is(err, config.ErrEmptyEngine) {
		t.Errorf("SaveConfig() error = %v, want ErrEmptyEngine", err)
	}
}

func TestSaveConfigEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := config.SaveConfig("", config.DefaultConfig()); !errors.Is(err, config.ErrEmptyConfigName) {
		t.Errorf("SaveConfig() error = %v, want ErrEmptyConfigName", err)
	}
}
