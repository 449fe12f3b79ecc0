// Package config holds the persisted settings record for md2overleaf.
// Settings are read once at job start and saved explicitly; the export
// pipeline itself never mutates them.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmallet/go-md2overleaf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidURL      = errors.New("invalid URL in config")
	ErrEmptyEngine     = errors.New("editor.engine cannot be empty")
)

// appDirName is the subdirectory under the user config directory searched
// for named config files, and the target of SaveConfig.
const appDirName = "md2overleaf"

// Config holds all settings for the export pipeline.
type Config struct {
	Script ScriptConfig `yaml:"script"`
	Upload UploadConfig `yaml:"upload"`
	Editor EditorConfig `yaml:"editor"`
	Output OutputConfig `yaml:"output"`
}

// ScriptConfig locates the external converter scripts. Paths may contain the
// {vault} placeholder, expanded against the vault root at job start.
type ScriptConfig struct {
	Path        string `yaml:"path"`        // markdown-to-LaTeX converter
	DrawingPath string `yaml:"drawingPath"` // drawing-to-raster converter
}

// UploadConfig defines the archive upload endpoint. The same URL is invoked
// by the upload step and used to recognize the hosted-file URL in its output.
type UploadConfig struct {
	URL string `yaml:"url"`
}

// EditorConfig defines the remote editor deep-link parameters.
type EditorConfig struct {
	BaseURL  string `yaml:"baseURL"`
	Engine   string `yaml:"engine"`
	AutoOpen bool   `yaml:"autoOpen"`
}

// OutputConfig defines the job output directory.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = <vault>/.md2overleaf
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Script: ScriptConfig{
			Path:        "{vault}/markdown_to_tex.sh",
			DrawingPath: "{vault}/excalidraw_to_png.sh",
		},
		Upload: UploadConfig{URL: "https://oshi.at"},
		Editor: EditorConfig{
			BaseURL:  "https://www.overleaf.com/docs",
			Engine:   "xelatex",
			AutoOpen: true,
		},
	}
}

// Validate checks URL fields and required values.
func (c *Config) Validate() error {
	if c.Script.Path == "" {
		return fmt.Errorf("script.path cannot be empty")
	}
	if err := validateURL("upload.url", c.Upload.URL); err != nil {
		return err
	}
	if err := validateURL("editor.baseURL", c.Editor.BaseURL); err != nil {
		return err
	}
	if c.Editor.Engine == "" {
		return ErrEmptyEngine
	}
	return nil
}

// validateURL requires an absolute http(s) URL.
func validateURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %s = %q", ErrInvalidURL, field, value)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the settings to the user config directory under the
// given name, creating the directory as needed. Returns the written path.
func SaveConfig(name string, cfg *Config) (string, error) {
	if name == "" {
		return "", ErrEmptyConfigName
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return "", err
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	dir := filepath.Join(userConfigDir, appDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
