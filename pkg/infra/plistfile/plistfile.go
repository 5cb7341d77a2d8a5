// Package plistfile reads the application's XML property-list descriptor.
package plistfile

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"howett.net/plist"

	"github.com/citadelgrad/shiftit-release/pkg/domain/types"
)

// StringKey returns the trimmed string value stored under key in the
// property list at path. A missing or blank key is
// types.ErrDescriptorKeyNotFound.
func StringKey(path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open descriptor", goerr.V("path", path))
	}
	defer f.Close()

	var dict map[string]any
	if err := plist.NewDecoder(f).Decode(&dict); err != nil {
		return "", goerr.Wrap(err, "failed to parse descriptor", goerr.V("path", path))
	}

	value, ok := dict[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", goerr.Wrap(types.ErrDescriptorKeyNotFound, "descriptor has no usable value",
			goerr.V("path", path),
			goerr.V("key", key),
		)
	}

	return strings.TrimSpace(value), nil
}
