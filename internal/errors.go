package internal

import "errors"

// Error taxonomy for fetch and corpus operations. Batch operations skip
// and record per-video failures; only filesystem and input errors are
// surfaced immediately.
var (
	// ErrTranscriptUnavailable marks videos with captions disabled or
	// missing in every requested language. Never fatal to a batch.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrNetwork marks transient fetch failures. Retried a bounded
	// number of times, then treated as unavailable.
	ErrNetwork = errors.New("network failure")

	// ErrInvalidInput marks malformed channel IDs, video URLs, formats
	// or keywords. No partial work is attempted.
	ErrInvalidInput = errors.New("invalid input")
)
