package doc2tex

import "runtime"

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; each holds a whole document
	// in memory.
	MaxPoolSize = 32
)

// ResolvePoolSize determines the number of workers.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for
// containers). Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return min(workers, MaxPoolSize)
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
