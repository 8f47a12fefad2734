// Package parallel runs independent units of work on a bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1, // Demo runs are coarse-grained.
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < max(cfg.MinChunkSize, 2) {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Map calls f for every i in [0, n) under cfg and returns the results in
// index order. When several calls fail, the error with the lowest index wins,
// so the outcome does not depend on scheduling.
func Map[T any](n int, f func(i int) (T, error), cfg Config) ([]T, error) {
	out := make([]T, n)
	errs := make([]error, n)
	For(n, func(i int) {
		out[i], errs[i] = f(i)
	}, cfg)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
