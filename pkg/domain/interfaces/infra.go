package interfaces

import "context"

// CommandRunner executes one external tool synchronously and captures its
// standard output. All build, archive, sign, decrypt and metadata-query
// invocations go through this seam.
type CommandRunner interface {
	// Run executes name with args in dir (empty dir means the current
	// directory) and returns the captured stdout. A non-zero exit comes back
	// as an error carrying the tool's stderr.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// RepoInspector reports working-tree state for the release preflight checks.
type RepoInspector interface {
	// HasUncommittedChanges reports whether the working tree differs from HEAD.
	HasUncommittedChanges() (bool, error)
}
