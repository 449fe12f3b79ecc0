package md2overleaf

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// The converter emits two broken image-reference notations that must be
// normalized before the project can compile on the remote editor.
var (
	// Pattern A: bounded-image wrapper around an inclusion directive,
	// e.g. \pandocbounded{\includegraphics[keepaspectratio]{pictures/fig.png}}.
	boundedImagePattern = regexp.MustCompile(`\\pandocbounded\{\\includegraphics(?:\[[^\]]*\])?\{([^{}]+)\}\}`)

	// Pattern B: wiki-style document embed that leaked through the converter
	// as escaped bracket groups, e.g. !{[}{[}pictures/Sketch.md{]}{]}.
	// The target is a document, not an image; it needs a secondary export.
	escapedEmbedPattern = regexp.MustCompile(`!?\{\[\}\{\[\}([^{}]+?\.md)\{\]\}\{\]\}`)
)

// embedRef is one Pattern B occurrence: the full matched text and the
// document path it points at (vault-relative).
type embedRef struct {
	full   string
	target string
}

// findDrawingEmbeds collects every Pattern B match in order of appearance.
// Collection happens before any length-changing edit so the matches stay
// valid; each is later replaced by exact substring match, never by offset.
// The target keeps the path as written (slash-normalized), so the drawing
// document is resolved from where it actually lives in the vault.
func findDrawingEmbeds(tex string) []embedRef {
	var refs []embedRef
	for _, m := range escapedEmbedPattern.FindAllStringSubmatch(tex, -1) {
		refs = append(refs, embedRef{full: m[0], target: cleanRefPath(m[1])})
	}
	return refs
}

// rewriteBoundedImages replaces every Pattern A wrapper with the canonical
// inclusion directive and records one asset copy task per reference. The copy
// source resolves from the reference as written; only the destination is
// rooted under the asset directory.
// Missing source files are not checked here; the stage builder skips them.
// Idempotent: canonical directives contain no wrapper and never re-match.
func rewriteBoundedImages(tex, vaultRoot string) (string, []assetCopy) {
	var tasks []assetCopy
	out := boundedImagePattern.ReplaceAllStringFunc(tex, func(match string) string {
		ref := cleanRefPath(boundedImagePattern.FindStringSubmatch(match)[1])
		rel := normalizeAssetPath(ref)
		tasks = append(tasks, assetCopy{
			src: filepath.Join(vaultRoot, filepath.FromSlash(ref)),
			rel: rel,
		})
		return canonicalInclude(rel)
	})
	return out, tasks
}

// replaceEmbed substitutes one Pattern B occurrence by exact substring match.
// Content-based replacement stays correct after earlier edits have shifted
// positions in the buffer.
func replaceEmbed(tex, full, replacement string) string {
	return strings.Replace(tex, full, replacement, 1)
}

// canonicalInclude returns the single inclusion form every image reference
// is normalized to, sized to the full line width.
func canonicalInclude(rel string) string {
	return fmt.Sprintf(`\includegraphics[width=\linewidth]{%s}`, rel)
}

// drawingFailureComment is the substitute for an embed whose export failed,
// naming the target as referenced. A comment keeps the document compilable.
func drawingFailureComment(target string) string {
	return fmt.Sprintf("%% drawing export failed: %s", target)
}

// cleanRefPath normalizes a path the way it is referenced in the document:
// forward slashes, cleaned. The result stays vault-relative and locates the
// source file.
func cleanRefPath(rel string) string {
	p := path.Clean(strings.ReplaceAll(rel, `\`, "/"))
	return strings.TrimPrefix(p, "./")
}

// normalizeAssetPath converts a referenced path to its archive-relative
// destination: cleaned and rooted under AssetDir. References outside the
// asset directory are flattened into it by base name.
func normalizeAssetPath(rel string) string {
	p := cleanRefPath(rel)
	if p == "." || p == "/" {
		return AssetDir
	}
	if p != AssetDir && !strings.HasPrefix(p, AssetDir+"/") {
		p = path.Join(AssetDir, path.Base(p))
	}
	return p
}
