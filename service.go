package md2overleaf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmallet/go-md2overleaf/internal/fileutil"
)

// Default converter script locations, relative to the vault root.
const (
	DefaultScriptPath        = VaultPlaceholder + "/markdown_to_tex.sh"
	DefaultDrawingScriptPath = VaultPlaceholder + "/excalidraw_to_png.sh"
)

// Service orchestrates the note-to-LaTeX export pipeline: convert, rewrite
// references, export embedded drawings, stage, archive, upload, deep-link.
// One export runs at a time; each Export call is a self-contained job.
type Service struct {
	cfg    serviceConfig
	runner CommandRunner
	notify func(msg string)
	logf   func(format string, args ...any)
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithUploadURL, WithRunner).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			scriptPath:        DefaultScriptPath,
			drawingScriptPath: DefaultDrawingScriptPath,
			uploadURL:         DefaultUploadURL,
			editorBaseURL:     DefaultEditorBaseURL,
			engine:            DefaultEngine,
			autoOpen:          true,
			waitTimeout:       defaultWaitTimeout,
		},
		notify: func(msg string) { fmt.Fprintln(os.Stderr, msg) },
		logf:   func(string, ...any) {},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create runner if not injected (e.g., by tests)
	if s.runner == nil {
		s.runner = &ExecRunner{}
	}

	return s
}

// Export runs the full pipeline for one document and returns the produced
// artifacts. Fatal stage failures abort with an error after a user-visible
// notice; recoverable ones degrade the archive and continue.
func (s *Service) Export(ctx context.Context, input Input) (*Result, error) {
	job, err := s.resolveJob(input)
	if err != nil {
		return nil, err
	}

	// Stage 1: external markdown-to-LaTeX conversion.
	converter := &scriptConverter{
		runner:      s.runner,
		scriptPath:  ExpandVaultPath(s.cfg.scriptPath, job.vaultRoot),
		waitTimeout: s.cfg.waitTimeout,
	}
	if _, err := converter.Convert(ctx, job.docPath, job.vaultRoot, job.texPath); err != nil {
		s.notify("conversion failed")
		return nil, err
	}
	s.notify("conversion complete")

	texBytes, err := os.ReadFile(job.texPath) // #nosec G304 -- produced inside the job output dir
	if err != nil {
		return nil, fmt.Errorf("reading converter output: %w", err)
	}
	tex := string(texBytes)

	// Stage 2: reference rewriting. Drawing embeds are collected before the
	// bounded-image pass mutates the buffer; their replacements use exact
	// substring matching and survive the earlier length changes.
	embeds := findDrawingEmbeds(tex)
	tex, tasks := rewriteBoundedImages(tex, job.vaultRoot)

	exporter := &drawingExporter{
		runner:      s.runner,
		scriptPath:  ExpandVaultPath(s.cfg.drawingScriptPath, job.vaultRoot),
		waitTimeout: s.cfg.waitTimeout,
		logf:        s.logf,
	}
	for _, embed := range embeds {
		drawingPath := filepath.Join(job.vaultRoot, filepath.FromSlash(embed.target))
		res := exporter.Export(ctx, drawingPath, job.outDir)
		if res == nil {
			tex = replaceEmbed(tex, embed.full, drawingFailureComment(embed.target))
			continue
		}
		tex = replaceEmbed(tex, embed.full, canonicalInclude(res.rel))
		tasks = append(tasks, assetCopy{src: res.abs, rel: res.rel})
	}

	// Stage 3: staging tree and archive.
	stageDir := filepath.Join(job.outDir, stageDirName)
	if err := buildStage(stageDir, job.vaultRoot, job.baseName, tex, tasks, s.logf); err != nil {
		return nil, err
	}

	archivePath := filepath.Join(job.outDir, job.baseName+".zip")
	if err := writeArchive(stageDir, archivePath); err != nil {
		return nil, err
	}

	result := &Result{TexPath: job.texPath, ArchivePath: archivePath}

	// Stage 4: upload and deep link.
	up := &uploader{
		runner:        s.runner,
		uploadURL:     s.cfg.uploadURL,
		editorBaseURL: s.cfg.editorBaseURL,
		engine:        s.cfg.engine,
	}
	s.notify("uploading " + job.baseName + ".zip")
	output, err := up.Upload(ctx, job.outDir, job.baseName+".zip")
	if err != nil {
		s.notify("upload failed")
		return nil, err
	}

	hostedURL, ok := up.ExtractURL(output)
	if !ok {
		// The archive was shipped; without a recognized URL there is nothing
		// to link to, but the job itself is complete.
		s.notify("upload complete, but no URL found in tool output")
		s.logf("upload output: %s", output)
		return result, nil
	}
	result.UploadURL = hostedURL
	result.EditorURL = up.EditorLink(hostedURL, job.baseName)

	if s.cfg.autoOpen {
		s.notify("opening in editor")
		if err := openURL(ctx, s.runner, result.EditorURL); err != nil {
			s.logf("opening %s: %v", result.EditorURL, err)
		}
	} else {
		s.notify(result.EditorURL)
	}

	return result, nil
}

// exportJob holds the resolved paths for one invocation.
type exportJob struct {
	docPath   string
	vaultRoot string
	outDir    string
	baseName  string
	texPath   string
}

// resolveJob validates the input and fills in defaults: vault root from the
// document's directory, output directory under the vault.
func (s *Service) resolveJob(input Input) (*exportJob, error) {
	if input.DocumentPath == "" {
		return nil, ErrEmptyDocumentPath
	}

	docPath, err := filepath.Abs(input.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("resolving document path: %w", err)
	}
	if !fileutil.FileExists(docPath) {
		return nil, fmt.Errorf("document %s: %w", docPath, os.ErrNotExist)
	}

	vaultRoot := input.VaultRoot
	if vaultRoot == "" {
		vaultRoot = filepath.Dir(docPath)
	}
	vaultRoot, err = filepath.Abs(vaultRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}
	if info, err := os.Stat(vaultRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, vaultRoot)
	}

	outDir := input.OutputDir
	if outDir == "" {
		outDir = filepath.Join(vaultRoot, ".md2overleaf")
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))

	return &exportJob{
		docPath:   docPath,
		vaultRoot: vaultRoot,
		outDir:    outDir,
		baseName:  baseName,
		texPath:   filepath.Join(outDir, baseName+".tex"),
	}, nil
}
