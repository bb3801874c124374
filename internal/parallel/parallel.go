// Package parallel provides the task-distribution primitive used by the
// Searchlight engine: run an ordered list of jobs across a bounded number
// of goroutines and return their results in input order.
package parallel

import (
	"runtime"
	"sync"
)

// Job is a zero-argument deferred call producing one result.
type Job[R any] func() (R, error)

// ResolveWorkers normalizes a worker count. Negative values mean "use all
// available CPUs"; positive values are returned unchanged, capped at n so
// no worker is left without a job.
func ResolveWorkers(workers, n int) int {
	if workers < 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Run executes jobs with at most the given number of concurrent workers
// and returns their results in input order, regardless of completion
// order. When workers is 1 the jobs run sequentially on the calling
// goroutine and the first error aborts the loop immediately. With more
// workers every job still runs to completion, and the first error by
// input order is returned with no results.
func Run[R any](jobs []Job[R], workers int) ([]R, error) {
	results := make([]R, len(jobs))
	workers = ResolveWorkers(workers, len(jobs))

	if workers == 1 {
		for i, job := range jobs {
			r, err := job()
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job[R]) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errs[i] = job()
		}(i, job)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// SplitIndices partitions [0, n) into k ordered, contiguous, non-empty
// chunks, returned as [start, end) bounds. The first n%k chunks carry one
// extra element so sizes never differ by more than one. k is capped at n.
func SplitIndices(n, k int) [][2]int {
	if n <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	base := n / k
	extra := n % k
	bounds := make([][2]int, k)
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		bounds[i] = [2]int{start, start + size}
		start += size
	}
	return bounds
}
