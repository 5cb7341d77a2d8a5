// Package cmdexec runs the external tools the pipeline delegates to
// (xcodebuild, ditto, gpg, sign_update, defaults) behind one abstraction so
// output capture and exit classification live in a single place.
package cmdexec

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Runner executes external commands synchronously. Every invocation blocks
// until the tool exits; no timeout is imposed here.
type Runner struct{}

// New creates a command runner.
func New() *Runner {
	return &Runner{}
}

// Run executes name with args in dir and returns the captured stdout. A
// failed start (e.g. missing binary) or non-zero exit is returned as an
// error carrying the command line and the tool's stderr.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	logger := ctxlog.From(ctx)
	logger.Debug("running external command",
		slog.String("command", name),
		slog.Any("args", args),
		slog.String("dir", dir),
	)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", goerr.Wrap(err, "external command failed",
			goerr.V("command", name),
			goerr.V("args", args),
			goerr.V("stderr", strings.TrimSpace(stderr.String())),
		)
	}

	return stdout.String(), nil
}
