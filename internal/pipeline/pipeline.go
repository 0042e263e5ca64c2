package pipeline

import (
	"runtime"
	"sync"
)

// Task processes one item. Items are independent; a Task must not write to
// state shared with another item.
type Task[T any] func(item T) error

// Run fans items out to a bounded pool of workers and collects the errors.
// workers <= 0 uses one worker per CPU.
func Run[T any](items []T, workers int, fn Task[T]) []error {
	if len(items) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	workers = min(workers, len(items))

	jobs := make(chan T)
	errs := make(chan error, len(items))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				if err := fn(item); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

// Indexes returns 0..n-1, for running a Task over positions.
func Indexes(n int) []int {
	out := make([]int, max(n, 0))
	for i := range out {
		out[i] = i
	}
	return out
}
