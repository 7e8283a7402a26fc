package pipeline

import (
	"github.com/kikiluvv/clipvibe/internal/clips"
)

// Result pairs one input path with its analysis outcome. Exactly one of
// Analysis and Err is set.
type Result struct {
	Path     string
	Analysis *clips.Analysis
	Err      error
}

// ProgressFunc is called after each file finishes with the number of
// completed files and the batch total
type ProgressFunc func(done, total int)
