package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citadelgrad/shiftit-release/pkg/domain/interfaces"
)

// ReadBundleVersion extracts the CFBundleVersion value from the application
// descriptor via the external defaults tool. The result is trimmed but not
// validated; a malformed version fails later at milestone resolution.
func ReadBundleVersion(ctx context.Context, runner interfaces.CommandRunner, plistPath string) (string, error) {
	out, err := runner.Run(ctx, "", "defaults", "read", plistPath, "CFBundleVersion")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read bundle version", goerr.V("plist", plistPath))
	}

	return strings.TrimSpace(out), nil
}
