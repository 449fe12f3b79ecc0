package md2overleaf

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pmallet/go-md2overleaf/internal/fileutil"
)

// Fenced code block info strings recognized as drawing payloads.
var drawingPayloadLangs = map[string]bool{
	"json":            true,
	"compressed-json": true,
}

// drawingExporter rasterizes embedded vector-drawing documents through the
// external drawing converter script. Script contract:
// `<script> "<payload-file>" "<raster-target>"`, controlled environment.
type drawingExporter struct {
	runner      CommandRunner
	scriptPath  string
	waitTimeout time.Duration
	logf        func(format string, args ...any)
}

// drawingExport is a successful raster export: the archive-relative path the
// rewritten directive points at and the absolute path to copy into the stage.
type drawingExport struct {
	rel string
	abs string
}

// Export converts one embedded-drawing document to a raster asset.
// Any failure returns nil: unreadable document, missing payload block,
// converter error, or a raster that never appears. Callers treat nil as
// "insert a warning comment and keep going"; nothing here aborts the
// pipeline.
func (e *drawingExporter) Export(ctx context.Context, drawingPath, outDir string) *drawingExport {
	src, err := os.ReadFile(drawingPath) // #nosec G304 -- path comes from the document being exported
	if err != nil {
		e.logf("drawing export: reading %s: %v", drawingPath, err)
		return nil
	}

	payload, ok := extractDrawingPayload(src)
	if !ok {
		e.logf("drawing export: no payload block in %s", drawingPath)
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(drawingPath), ".md")
	rasterRel := path.Join(AssetDir, base+".png")
	rasterAbs := filepath.Join(outDir, drawingDirName, base+".png")
	if err := os.MkdirAll(filepath.Dir(rasterAbs), 0o750); err != nil {
		e.logf("drawing export: creating %s: %v", filepath.Dir(rasterAbs), err)
		return nil
	}

	// Transient payload file lives in the job output directory, deliberately
	// outside the vault, and is removed no matter how the invocation ends.
	tmpPath, cleanup, err := fileutil.WriteTempFileIn(outDir, payload, "json")
	if err != nil {
		e.logf("drawing export: %v", err)
		return nil
	}
	defer cleanup()

	if _, stderr, err := e.runner.Run(ctx, outDir, e.scriptPath, tmpPath, rasterAbs); err != nil {
		e.logf("drawing export: converter failed for %s: %v: %s", drawingPath, err, stderr)
		return nil
	}

	// The tool exiting zero only promises the raster; confirm it exists
	// before reporting success.
	if err := fileutil.WaitForFile(rasterAbs, e.waitTimeout); err != nil {
		e.logf("drawing export: %v", err)
		return nil
	}

	return &drawingExport{rel: rasterRel, abs: rasterAbs}
}

// extractDrawingPayload returns the contents of the first fenced code block
// tagged with a drawing payload language.
func extractDrawingPayload(src []byte) (string, bool) {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var payload string
	found := false
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !drawingPayloadLangs[string(fcb.Language(src))] {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		payload = buf.String()
		found = true
		return ast.WalkStop, nil
	})

	return payload, found
}
