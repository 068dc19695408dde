package viz

import (
	"runtime"
	"sync"
)

// projectChunk is the smallest particle slice worth handing to its own goroutine.
const projectChunk = 512

// parallelFor runs fn over [0, n) split into contiguous chunks, one per
// worker. Small ranges run inline.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	workers = min(workers, n/minChunk)
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
