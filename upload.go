package md2overleaf

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
)

// uploader ships the archive through the external transport (curl) and
// composes the remote-editor deep link.
type uploader struct {
	runner        CommandRunner
	uploadURL     string
	editorBaseURL string
	engine        string
}

// Upload streams the archive to the configured endpoint from the job output
// directory. Returns the combined tool output for URL extraction.
// Non-zero exit is fatal; no retry.
func (u *uploader) Upload(ctx context.Context, outDir, archiveName string) (string, error) {
	stdout, stderr, err := u.runner.Run(ctx, outDir, "curl", u.uploadURL, "-T", archiveName)
	if err != nil {
		if stderr != "" {
			return "", fmt.Errorf("%w: %s", ErrUpload, stderr)
		}
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return stdout + "\n" + stderr, nil
}

// ExtractURL scans tool output for the first URL on the configured upload
// host. The matcher is derived from the endpoint actually invoked, so the
// two cannot drift apart.
func (u *uploader) ExtractURL(output string) (string, bool) {
	parsed, err := url.Parse(u.uploadURL)
	if err != nil || parsed.Host == "" {
		return "", false
	}

	pattern := regexp.MustCompile(`https?://` + regexp.QuoteMeta(parsed.Host) + `(?:/[^\s()"'<>]*)?`)
	match := pattern.FindString(output)
	if match == "" {
		return "", false
	}
	return match, true
}

// EditorLink composes the deep link opening the remote editor preloaded with
// the hosted archive. Every query component is percent-encoded.
func (u *uploader) EditorLink(snipURL, baseName string) string {
	q := url.Values{}
	q.Set("snip_uri", snipURL)
	q.Set("engine", u.engine)
	q.Set("name", baseName)
	return u.editorBaseURL + "?" + q.Encode()
}
