package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/citadelgrad/shiftit-release/pkg/domain/interfaces"
	"github.com/citadelgrad/shiftit-release/pkg/domain/types"
)

const encryptedSuffix = ".gpg"

// CredentialResolver turns possibly encrypted credential file paths into
// plaintext file paths. Paths without the encrypted suffix pass through
// unchanged; encrypted ones are decrypted via the external gpg tool into a
// temporary file that lives until Close. Each distinct source path is
// decrypted at most once per process.
type CredentialResolver struct {
	runner interfaces.CommandRunner

	mu    sync.Mutex
	cache map[string]string
	files []string
}

// NewCredentialResolver creates a resolver that shells out through runner.
func NewCredentialResolver(runner interfaces.CommandRunner) *CredentialResolver {
	return &CredentialResolver{
		runner: runner,
		cache:  make(map[string]string),
	}
}

// Resolve returns a plaintext path for the credential at path. The gpg
// requirement surfaces here, not at construction, so runs that never touch
// an encrypted credential work on hosts without gpg.
func (r *CredentialResolver) Resolve(ctx context.Context, path string) (string, error) {
	if !strings.HasSuffix(path, encryptedSuffix) {
		return path, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if resolved, ok := r.cache[path]; ok {
		return resolved, nil
	}

	plaintext, err := r.runner.Run(ctx, "", "gpg", "-d", path)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", goerr.Wrap(types.ErrDecryptionUnavailable,
				"gpg is required to read encrypted credentials", goerr.V("path", path))
		}
		return "", goerr.Wrap(err, "failed to decrypt credential", goerr.V("path", path))
	}

	f, err := os.CreateTemp("", "shiftit-credential-*")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary credential file")
	}

	if _, err := f.WriteString(plaintext); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", goerr.Wrap(err, "failed to write decrypted credential", goerr.V("tmp", f.Name()))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", goerr.Wrap(err, "failed to flush decrypted credential", goerr.V("tmp", f.Name()))
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", goerr.Wrap(err, "failed to close decrypted credential", goerr.V("tmp", f.Name()))
	}

	ctxlog.From(ctx).Debug("decrypted credential", slog.String("source", path))

	r.cache[path] = f.Name()
	r.files = append(r.files, f.Name())
	return f.Name(), nil
}

// Close removes every decrypted temporary file. Safe to call multiple times
// and meant to run on every exit path.
func (r *CredentialResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.files {
		_ = os.Remove(name)
	}
	r.files = nil
	r.cache = make(map[string]string)
}

// LoadToken resolves the credential at path and returns its trimmed content.
func LoadToken(ctx context.Context, resolver *CredentialResolver, path string) (string, error) {
	resolved, err := resolver.Resolve(ctx, path)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read credential", goerr.V("path", resolved))
	}

	return strings.TrimSpace(string(raw)), nil
}
