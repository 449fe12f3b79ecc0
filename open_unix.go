//go:build !windows

package md2overleaf

import (
	"context"
	"runtime"
)

// openURL opens the URL in the operator's default handler.
func openURL(ctx context.Context, runner CommandRunner, u string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	_, _, err := runner.Run(ctx, "", opener, u)
	return err
}
