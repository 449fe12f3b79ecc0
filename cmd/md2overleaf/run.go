package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	md2overleaf "github.com/pmallet/go-md2overleaf"
	"github.com/pmallet/go-md2overleaf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no note document given")
	ErrTooManyArgs = errors.New("expected exactly one note document")
)

// printUsage writes the command synopsis.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: md2overleaf [flags] <note.md>")
	fmt.Fprintln(w, "Exports a note as a LaTeX project archive and uploads it to the remote editor.")
	fmt.Fprintln(w, "Run md2overleaf --help for the flag list.")
}

// run loads settings, merges overrides, and executes one export job.
func run(ctx context.Context, flags *cliFlags, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return ErrNoInput
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: got %d", ErrTooManyArgs, len(args))
	}

	env := loadEnvConfig()
	warnUnknownEnvVars(stderr)

	cfg, err := resolveConfig(flags.config, env.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(env, cfg)
	applyFlags(flags, cfg)

	vault := flags.vault
	if vault == "" {
		vault = env.Vault
	}

	svc := md2overleaf.New(serviceOptions(flags, cfg, stderr)...)

	result, err := svc.Export(ctx, md2overleaf.Input{
		DocumentPath: args[0],
		VaultRoot:    vault,
		OutputDir:    cfg.Output.Dir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Created %s\n", result.ArchivePath)
	if result.EditorURL != "" {
		fmt.Fprintln(stdout, result.EditorURL)
	}
	return nil
}

// resolveConfig loads the named config, or defaults when none is given.
// A config explicitly named on the flag or env must exist; its absence is an
// error rather than a silent fallback.
func resolveConfig(flagPath, envPath string) (*config.Config, error) {
	nameOrPath := flagPath
	if nameOrPath == "" {
		nameOrPath = envPath
	}
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(nameOrPath)
}

// applyFlags overwrites config values with explicitly set flags (flags win).
func applyFlags(flags *cliFlags, cfg *config.Config) {
	if flags.script != "" {
		cfg.Script.Path = flags.script
	}
	if flags.drawingScript != "" {
		cfg.Script.DrawingPath = flags.drawingScript
	}
	if flags.uploadURL != "" {
		cfg.Upload.URL = flags.uploadURL
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.noOpen {
		cfg.Editor.AutoOpen = false
	}
}

// serviceOptions maps merged settings to service options.
func serviceOptions(flags *cliFlags, cfg *config.Config, stderr io.Writer) []md2overleaf.Option {
	opts := []md2overleaf.Option{
		md2overleaf.WithScriptPath(cfg.Script.Path),
		md2overleaf.WithDrawingScriptPath(cfg.Script.DrawingPath),
		md2overleaf.WithUploadURL(cfg.Upload.URL),
		md2overleaf.WithEditorBaseURL(cfg.Editor.BaseURL),
		md2overleaf.WithEngine(cfg.Editor.Engine),
		md2overleaf.WithAutoOpen(cfg.Editor.AutoOpen),
	}

	if flags.quiet {
		opts = append(opts, md2overleaf.WithNotifier(func(string) {}))
	} else {
		opts = append(opts, md2overleaf.WithNotifier(func(msg string) {
			fmt.Fprintln(stderr, msg)
		}))
	}

	if flags.verbose {
		opts = append(opts, md2overleaf.WithLogger(func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}))
	}

	return opts
}
