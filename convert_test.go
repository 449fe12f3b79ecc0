package md2overleaf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestScriptConverterConvert - external conversion invocation
// ---------------------------------------------------------------------------

func TestScriptConverterConvertSuccess(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	vault := t.TempDir()
	texPath := filepath.Join(outDir, "Notes.tex")

	runner := &fakeRunner{
		handler: func(dir, name string, args []string) (string, string, error) {
			if dir != vault {
				t.Errorf("converter run from %q, want vault root %q", dir, vault)
			}
			if name != "/vault/markdown_to_tex.sh" {
				t.Errorf("converter command = %q", name)
			}
			want := []string{"-v", "/vault/Notes.md"}
			if len(args) != 2 || args[0] != want[0] || args[1] != want[1] {
				t.Errorf("converter args = %v, want %v", args, want)
			}
			if err := os.WriteFile(texPath, []byte(`\section{x}`), 0o600); err != nil {
				t.Fatal(err)
			}
			return "converted", "", nil
		},
	}

	c := &scriptConverter{runner: runner, scriptPath: "/vault/markdown_to_tex.sh", waitTimeout: 2 * time.Second}
	stdout, err := c.Convert(context.Background(), "/vault/Notes.md", vault, texPath)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if stdout != "converted" {
		t.Errorf("Convert() stdout = %q, want %q", stdout, "converted")
	}
}

func TestScriptConverterConvertToolFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		handler: func(dir, name string, args []string) (string, string, error) {
			return "", "pandoc: template not found", errors.New("exit status 1")
		},
	}

	c := &scriptConverter{runner: runner, scriptPath: "conv.sh", waitTimeout: time.Second}
	_, err := c.Convert(context.Background(), "doc.md", t.TempDir(), filepath.Join(t.TempDir(), "doc.tex"))

	if !errors.Is(err, ErrConversion) {
		t.Fatalf("Convert() error = %v, want ErrConversion", err)
	}
	if !strings.Contains(err.Error(), "template not found") {
		t.Errorf("Convert() error %q does not surface stderr", err)
	}
}

// A zero exit with no output file is a distinct failure from the tool
// reporting an error: the tool claimed success.
func TestScriptConverterConvertOutputTimeout(t *testing.T) {
	t.Parallel()

	c := &scriptConverter{
		runner:      &fakeRunner{}, // exits zero, writes nothing
		scriptPath:  "conv.sh",
		waitTimeout: 150 * time.Millisecond,
	}
	_, err := c.Convert(context.Background(), "doc.md", t.TempDir(), filepath.Join(t.TempDir(), "doc.tex"))

	if !errors.Is(err, ErrTexNotFound) {
		t.Fatalf("Convert() error = %v, want ErrTexNotFound", err)
	}
	if errors.Is(err, ErrConversion) {
		t.Error("Convert() timeout must not be reported as a converter failure")
	}
}
