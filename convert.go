package md2overleaf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pmallet/go-md2overleaf/internal/fileutil"
)

// scriptConverter invokes the external markdown-to-LaTeX converter script.
// The script contract: `<script> -v "<absolute-document-path>"`, run from the
// vault root, producing `<outDir>/<base>.tex`.
type scriptConverter struct {
	runner      CommandRunner
	scriptPath  string
	waitTimeout time.Duration
}

// Convert runs the converter and waits for the expected LaTeX file.
// A non-zero exit yields ErrConversion carrying the captured stderr. A zero
// exit followed by no file within the timeout yields ErrTexNotFound, a
// distinct failure since the tool claimed success.
func (c *scriptConverter) Convert(ctx context.Context, docPath, vaultRoot, texPath string) (stdout string, err error) {
	stdout, stderr, err := c.runner.Run(ctx, vaultRoot, c.scriptPath, "-v", docPath)
	if err != nil {
		if stderr != "" {
			return stdout, fmt.Errorf("%w: %s", ErrConversion, stderr)
		}
		return stdout, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	if err := fileutil.WaitForFile(texPath, c.waitTimeout); err != nil {
		if errors.Is(err, fileutil.ErrWaitTimeout) {
			return stdout, fmt.Errorf("%w: %s", ErrTexNotFound, texPath)
		}
		return stdout, err
	}

	return stdout, nil
}
