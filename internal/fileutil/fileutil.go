// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrWaitTimeout            = errors.New("file did not appear before timeout")
)

// WriteTempFileIn creates a temporary file with the given content inside dir.
// Returns the file path and a cleanup function to remove the file.
// The directory matters: transient drawing payloads must live in the job's
// private output directory, never inside vault asset folders that may sit on
// a slow-synchronizing storage backend.
func WriteTempFileIn(dir, content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp(dir, "md2overleaf-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// CopyFile copies src to dst, creating intermediate directories as needed.
// An existing dst is overwritten.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- paths come from the export job
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst) // #nosec G304 -- destination is inside the staging tree
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// WaitForFile polls until path exists as a regular file or timeout elapses.
// Externally invoked tools only promise that their output file will appear;
// on slow-syncing filesystems the appearance can lag the process exit.
func WaitForFile(path string, timeout time.Duration) error {
	const interval = 50 * time.Millisecond

	deadline := time.Now().Add(timeout)
	for {
		if FileExists(path) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s (waited %s)", ErrWaitTimeout, path, timeout)
		}
		time.Sleep(interval)
	}
}
