package dawg

import "errors"

// Every failure in the pipeline is fatal and wraps one of these
// sentinels, so callers can classify with errors.Is without parsing
// messages.
var (
	// ErrInputUnavailable means the word list could not be opened or read.
	ErrInputUnavailable = errors.New("cannot read word list")

	// ErrOutputUnavailable means the binary index could not be written.
	ErrOutputUnavailable = errors.New("cannot write binary index")

	// ErrCapacityExceeded means the graph has more nodes than the
	// 20-bit first-child index field of the 4-byte format can address.
	ErrCapacityExceeded = errors.New("node count exceeds 20-bit index field")

	// ErrIntegrityFailure means the lexicon reconstructed from the
	// encoded nodes does not hash back to the input checksum.
	ErrIntegrityFailure = errors.New("round-trip checksum mismatch")

	// ErrMalformedState means an internal invariant was violated, or a
	// binary being read is structurally inconsistent.
	ErrMalformedState = errors.New("malformed state")
)
