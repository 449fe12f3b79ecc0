//go:build windows

package md2overleaf

import "context"

// openURL opens the URL in the operator's default handler.
func openURL(ctx context.Context, runner CommandRunner, u string) error {
	_, _, err := runner.Run(ctx, "", "rundll32", "url.dll,FileProtocolHandler", u)
	return err
}
