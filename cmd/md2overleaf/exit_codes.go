package main

import (
	"errors"
	"os"

	md2overleaf "github.com/pmallet/go-md2overleaf"
	"github.com/pmallet/go-md2overleaf/internal/config"
)

// Exit codes for the md2overleaf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful export
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // File not found, permission denied, staging failure
	ExitConverter = 4 // External converter errors
	ExitUpload    = 5 // Upload transport errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter errors (exit 4)
	if errors.Is(err, md2overleaf.ErrConversion) ||
		errors.Is(err, md2overleaf.ErrTexNotFound) {
		return ExitConverter
	}

	// Upload errors (exit 5)
	if errors.Is(err, md2overleaf.ErrUpload) {
		return ExitUpload
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2overleaf.ErrStageBuild) ||
		errors.Is(err, md2overleaf.ErrTemplateMissing) ||
		errors.Is(err, md2overleaf.ErrVaultNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, md2overleaf.ErrEmptyDocumentPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidURL) ||
		errors.Is(err, config.ErrEmptyEngine) {
		return ExitUsage
	}

	return ExitGeneral
}
