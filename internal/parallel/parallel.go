// Package parallel splits index ranges across goroutines.
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
		MinChunkSize: 8, // A scalar graph per sample is already costly.
	}
}

// Sequential returns a Config that never spawns goroutines.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// Chunks returns the [start, end) ranges For and ForChunks hand to workers.
// A single range covering [0, n) is returned when parallelism does not apply.
func Chunks(n int, cfg Config) [][2]int {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*max(cfg.MinChunkSize, 1) {
		return [][2]int{{0, n}}
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	chunks := make([][2]int, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		chunks = append(chunks, [2]int{start, min(start+chunkSize, n)})
	}
	return chunks
}

// ForChunks executes f(start, end) once per chunk of [0, n), one goroutine
// per chunk. Falls back to a single inline call when parallelism is disabled
// or n is too small.
func ForChunks(n int, f func(start, end int), cfg Config) {
	chunks := Chunks(n, cfg)
	if len(chunks) == 1 {
		f(chunks[0][0], chunks[0][1])
		return
	}

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(c[0], c[1])
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForChunks(n, func(s, e int) {
		for i := s; i < e; i++ {
			f(i)
		}
	}, cfg)
}
