package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmallet/go-md2overleaf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides scriptable overrides without requiring a YAML file.
type envConfig struct {
	ConfigPath    string // MD2OL_CONFIG: config file name or path
	Vault         string // MD2OL_VAULT: vault root
	OutputDir     string // MD2OL_OUTPUT_DIR: job output directory
	Script        string // MD2OL_SCRIPT: converter script path
	DrawingScript string // MD2OL_DRAWING_SCRIPT: drawing converter script path
	UploadURL     string // MD2OL_UPLOAD_URL: upload endpoint
	NoOpen        bool   // MD2OL_NO_OPEN: disable opening the editor link
}

// knownEnvVars lists valid MD2OL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2OL_CONFIG":         true,
	"MD2OL_VAULT":          true,
	"MD2OL_OUTPUT_DIR":     true,
	"MD2OL_SCRIPT":         true,
	"MD2OL_DRAWING_SCRIPT": true,
	"MD2OL_UPLOAD_URL":     true,
	"MD2OL_NO_OPEN":        true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:    os.Getenv("MD2OL_CONFIG"),
		Vault:         os.Getenv("MD2OL_VAULT"),
		OutputDir:     os.Getenv("MD2OL_OUTPUT_DIR"),
		Script:        os.Getenv("MD2OL_SCRIPT"),
		DrawingScript: os.Getenv("MD2OL_DRAWING_SCRIPT"),
		UploadURL:     os.Getenv("MD2OL_UPLOAD_URL"),
		NoOpen:        os.Getenv("MD2OL_NO_OPEN") != "",
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MD2OL_* variables.
// Helps catch typos like MD2OL_UPLOAD instead of MD2OL_UPLOAD_URL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2OL_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Precedence: CLI flags > env vars > config file > defaults.
// Env values therefore overwrite the loaded config here; flags are merged
// on top afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Script != "" {
		cfg.Script.Path = env.Script
	}
	if env.DrawingScript != "" {
		cfg.Script.DrawingPath = env.DrawingScript
	}
	if env.UploadURL != "" {
		cfg.Upload.URL = env.UploadURL
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.NoOpen {
		cfg.Editor.AutoOpen = false
	}
}
