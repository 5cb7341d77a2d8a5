package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the fatal conditions of the release pipeline. Each
// stage wraps these with goerr.Wrap so callers can classify via errors.Is
// while keeping the contextual values attached at the raise site.
var (
	// ErrMilestoneNotFound means no tracker milestone title is a prefix of
	// the current version. The pipeline cannot continue without one.
	ErrMilestoneNotFound = goerr.New("milestone not found")

	// ErrDecryptionUnavailable means the decryption tool is missing from the
	// host. Raised lazily, only when an encrypted credential is actually read.
	ErrDecryptionUnavailable = goerr.New("decryption tool not available")

	// ErrEmptySignature means the signing tool exited successfully but
	// produced no signature token. An unsigned feed must never be written.
	ErrEmptySignature = goerr.New("signing tool returned an empty signature")

	// ErrDescriptorKeyNotFound means a required key is missing from the
	// application property-list descriptor.
	ErrDescriptorKeyNotFound = goerr.New("descriptor key not found")
)
