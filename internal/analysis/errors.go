package analysis

import "errors"

// Sentinel errors for the analysis pipeline, matched with errors.Is.
var (
	// ErrInputNotFound means the source file is missing on disk. Reported
	// before any decode resource is acquired.
	ErrInputNotFound = errors.New("input file not found")

	// ErrOpenFailed means the file exists but cannot be opened as video
	// (corrupt, unsupported codec, zero bytes).
	ErrOpenFailed = errors.New("cannot open video")

	// ErrNoFrames means decoding succeeded but zero usable frames came out
	// of sampling. Terminal, never retried.
	ErrNoFrames = errors.New("no frames could be sampled")
)
