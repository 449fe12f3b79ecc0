package md2overleaf

import (
	"time"
)

// Fixed names inside the staging tree and archive.
const (
	// AssetDir is the archive subdirectory holding every referenced image.
	AssetDir = "pictures"

	// Shared template files copied from the vault root into the stage.
	TemplateConfigFile = "config.tex"
	TemplateMainFile   = "main.tex"

	// stageDirName is the staging subdirectory inside the job output
	// directory. Deleted and recreated on every export.
	stageDirName = "stage"

	// drawingDirName holds raster exports inside the job output directory
	// before they are copied into the stage.
	drawingDirName = "drawings"
)

// Defaults for service configuration.
const (
	DefaultUploadURL     = "https://oshi.at"
	DefaultEditorBaseURL = "https://www.overleaf.com/docs"
	DefaultEngine        = "xelatex"

	// defaultWaitTimeout bounds the polls for externally produced files
	// (the converter's .tex and each drawing raster).
	defaultWaitTimeout = 30 * time.Second
)

// Input contains export parameters for one job.
type Input struct {
	DocumentPath string // Markdown note to export (required)
	VaultRoot    string // Vault filesystem root (default: directory of DocumentPath)
	OutputDir    string // Job output directory (default: <VaultRoot>/.md2overleaf)
}

// Result describes a completed export.
type Result struct {
	TexPath     string // LaTeX file produced by the converter
	ArchivePath string // Final archive
	UploadURL   string // URL extracted from the upload tool output ("" if none recognized)
	EditorURL   string // Deep link into the remote editor ("" if no upload URL)
}

// assetCopy pairs a source file with its forward-slash relative destination
// inside the staging tree. The list is appended during rewriting and drained
// once by the stage builder.
type assetCopy struct {
	src string // absolute source path
	rel string // archive-relative destination, always under AssetDir
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	scriptPath        string
	drawingScriptPath string
	uploadURL         string
	editorBaseURL     string
	engine            string
	autoOpen          bool
	waitTimeout       time.Duration
}

// WithRunner injects a command runner (e.g., a fake for tests).
func WithRunner(r CommandRunner) Option {
	return func(s *Service) { s.runner = r }
}

// WithScriptPath sets the markdown-to-LaTeX converter script path.
// Expand placeholders with ExpandVaultPath before passing.
func WithScriptPath(path string) Option {
	return func(s *Service) { s.cfg.scriptPath = path }
}

// WithDrawingScriptPath sets the drawing-to-raster converter script path.
func WithDrawingScriptPath(path string) Option {
	return func(s *Service) { s.cfg.drawingScriptPath = path }
}

// WithUploadURL sets the upload endpoint. The same URL is invoked by the
// upload step and used to recognize the hosted-file URL in its output.
func WithUploadURL(u string) Option {
	return func(s *Service) { s.cfg.uploadURL = u }
}

// WithEditorBaseURL sets the remote editor base used for deep links.
func WithEditorBaseURL(u string) Option {
	return func(s *Service) { s.cfg.editorBaseURL = u }
}

// WithEngine sets the rendering engine identifier in the deep link.
func WithEngine(engine string) Option {
	return func(s *Service) { s.cfg.engine = engine }
}

// WithAutoOpen controls whether the deep link is opened in the operator's
// default handler after a successful upload.
func WithAutoOpen(open bool) Option {
	return func(s *Service) { s.cfg.autoOpen = open }
}

// WithWaitTimeout bounds the wait for externally produced files.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithWaitTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2overleaf: WithWaitTimeout duration must be positive")
	}
	return func(s *Service) { s.cfg.waitTimeout = d }
}

// WithNotifier sets the sink for user-visible notices ("conversion
// complete", "uploading", ...). Default prints to stderr.
func WithNotifier(notify func(msg string)) Option {
	return func(s *Service) { s.notify = notify }
}

// WithLogger sets the sink for diagnostic messages (skipped assets, failed
// drawing exports). Default discards them.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Service) { s.logf = logf }
}
