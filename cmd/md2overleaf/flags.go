package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the export command.
type cliFlags struct {
	config        string
	vault         string
	output        string
	script        string
	drawingScript string
	uploadURL     string
	noOpen        bool
	envFile       string
	quiet         bool
	verbose       bool
	version       bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2overleaf", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.vault, "vault", "", "vault root (default: directory of the note)")
	fs.StringVarP(&f.output, "output", "o", "", "job output directory")
	fs.StringVar(&f.script, "script", "", "markdown-to-LaTeX converter script (supports {vault})")
	fs.StringVar(&f.drawingScript, "drawing-script", "", "drawing-to-raster converter script (supports {vault})")
	fs.StringVar(&f.uploadURL, "upload-url", "", "archive upload endpoint")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the editor link")
	fs.StringVar(&f.envFile, "env-file", "", "load environment variables from file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostic details")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
