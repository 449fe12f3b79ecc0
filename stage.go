package md2overleaf

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pmallet/go-md2overleaf/internal/fileutil"
)

// Directive patterns patched in the main template document (first match only;
// an absent directive makes the patch a no-op).
var (
	titleDirectivePattern   = regexp.MustCompile(`\\title\{[^{}]*\}`)
	includeDirectivePattern = regexp.MustCompile(`\\input\{[^{}]*\}`)
)

// Title derivation patterns.
var (
	separatorRuns  = regexp.MustCompile(`[-_]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// buildStage materializes the staging tree: the literal contents of the
// eventual archive. The directory is deleted and recreated on every call so
// stale assets from a previous export can never leak into a new archive.
func buildStage(stageDir, vaultRoot, baseName, tex string, tasks []assetCopy, logf func(string, ...any)) error {
	if err := os.RemoveAll(stageDir); err != nil {
		return fmt.Errorf("%w: resetting %s: %v", ErrStageBuild, stageDir, err)
	}
	if err := os.MkdirAll(stageDir, 0o750); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStageBuild, stageDir, err)
	}

	// Asset copies. A missing source degrades the document (broken image
	// reference) but never aborts; a failed copy of an existing file does.
	for _, t := range tasks {
		if !fileutil.FileExists(t.src) {
			logf("stage: skipping missing asset %s", t.src)
			continue
		}
		dst := filepath.Join(stageDir, filepath.FromSlash(t.rel))
		if err := fileutil.CopyFile(t.src, dst); err != nil {
			return fmt.Errorf("%w: %v", ErrStageBuild, err)
		}
	}

	// Shared templates from the vault root, overwriting prior copies.
	if err := copyTemplate(vaultRoot, stageDir, TemplateConfigFile); err != nil {
		return err
	}
	mainPath := filepath.Join(vaultRoot, TemplateMainFile)
	mainContent, err := os.ReadFile(mainPath) // #nosec G304 -- template lives in the vault root
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrTemplateMissing, mainPath)
		}
		return fmt.Errorf("%w: reading %s: %v", ErrStageBuild, mainPath, err)
	}

	patched := patchMainDocument(string(mainContent), DeriveTitle(baseName), baseName)
	if err := os.WriteFile(filepath.Join(stageDir, TemplateMainFile), []byte(patched), 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStageBuild, TemplateMainFile, err)
	}

	// The rewritten LaTeX is written exactly once, after all rewriting and
	// asset resolution is complete.
	texName := baseName + ".tex"
	if err := os.WriteFile(filepath.Join(stageDir, texName), []byte(tex), 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStageBuild, texName, err)
	}

	return nil
}

// copyTemplate copies one shared template from the vault root into the stage.
func copyTemplate(vaultRoot, stageDir, name string) error {
	src := filepath.Join(vaultRoot, name)
	if !fileutil.FileExists(src) {
		return fmt.Errorf("%w: %s", ErrTemplateMissing, src)
	}
	if err := fileutil.CopyFile(src, filepath.Join(stageDir, name)); err != nil {
		return fmt.Errorf("%w: %v", ErrStageBuild, err)
	}
	return nil
}

// patchMainDocument sets the title directive to the derived title and the
// content-inclusion directive to the exported document's base name. Both are
// single first-match substitutions; templates without the directive pass
// through unchanged.
func patchMainDocument(content, title, baseName string) string {
	content = replaceFirst(content, titleDirectivePattern, fmt.Sprintf(`\title{%s}`, title))
	content = replaceFirst(content, includeDirectivePattern, fmt.Sprintf(`\input{%s}`, baseName))
	return content
}

// replaceFirst substitutes only the first match of pattern.
func replaceFirst(s string, pattern *regexp.Regexp, replacement string) string {
	loc := pattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + replacement + s[loc[1]:]
}

// DeriveTitle turns a document base name into a human-readable title:
// extension stripped, runs of hyphen/underscore become single spaces,
// whitespace collapsed and trimmed.
func DeriveTitle(baseName string) string {
	name := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	name = separatorRuns.ReplaceAllString(name, " ")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
