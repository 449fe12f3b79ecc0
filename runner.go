package md2overleaf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// minimalPath is the executable search path forced onto every external tool
// invocation. A fixed PATH keeps converter behavior reproducible regardless
// of the operator's shell configuration.
const minimalPath = "/usr/local/bin:/usr/bin:/bin"

// CommandRunner abstracts external tool execution to enable testing without
// real subprocesses. dir is the working directory for the command.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec with a controlled
// environment: the process environment with PATH overridden to minimalPath.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = controlledEnv(os.Environ())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// controlledEnv returns env with every PATH entry replaced by minimalPath.
func controlledEnv(env []string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, fmt.Sprintf("PATH=%s", minimalPath))
}
