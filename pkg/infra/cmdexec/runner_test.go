package cmdexec_test

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/citadelgrad/shiftit-release/pkg/infra/cmdexec"
)

func TestRunner_CapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tools not available")
	}

	out, err := cmdexec.New().Run(context.Background(), "", "echo", "hello")
	gt.NoError(t, err)
	gt.Value(t, out).Equal("hello\n")
}

func TestRunner_RunsInDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tools not available")
	}

	dir := t.TempDir()
	out, err := cmdexec.New().Run(context.Background(), dir, "pwd")
	gt.NoError(t, err)
	gt.String(t, out).Contains(dir)
}

func TestRunner_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tools not available")
	}

	_, err := cmdexec.New().Run(context.Background(), "", "false")
	gt.Error(t, err)
}

func TestRunner_MissingBinary(t *testing.T) {
	_, err := cmdexec.New().Run(context.Background(), "", "no-such-tool-exists")
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, exec.ErrNotFound)).Equal(true)
}
