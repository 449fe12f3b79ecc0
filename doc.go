// Package md2overleaf exports a Markdown note as a LaTeX project archive and
// uploads it to a collaborative remote editor.
//
// # Quick Start
//
// Create a service and export a note:
//
//	svc := md2overleaf.New(
//	    md2overleaf.WithScriptPath("{vault}/markdown_to_tex.sh"),
//	)
//
//	result, err := svc.Export(ctx, md2overleaf.Input{
//	    DocumentPath: "/vault/Notes.md",
//	    VaultRoot:    "/vault",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.EditorURL)
//
// # Export Pipeline
//
// One Export call runs these stages in order:
//
//  1. External markdown-to-LaTeX conversion (subprocess, controlled PATH)
//  2. Reference rewriting: bounded-image wrappers and escaped document
//     embeds are normalized to canonical \includegraphics directives
//  3. Embedded-drawing export: each embedded drawing document is rasterized
//     through a second external tool; failures degrade to LaTeX comments
//  4. Stage build: a fresh staging directory mirroring the archive contents,
//     with shared templates (config.tex, main.tex) patched for title and
//     content inclusion
//  5. Archive (zip) and upload via curl, then a deep link into the editor
//
// Fatal failures (converter exit, stage I/O, upload exit) abort the job.
// Recoverable ones (missing assets, failed drawing exports, unrecognized
// upload output) degrade the artifact and continue, so the archive stays
// compilable.
//
// # External Tools
//
// Both converter scripts are invoked with the process environment and PATH
// forced to /usr/local/bin:/usr/bin:/bin, from a fixed working directory.
// The library never parses their output beyond exit status and streams; it
// waits (bounded) for the files they promise to produce.
package md2overleaf
