package worker

import (
	"context"
	"iter"
	"sync"
)

// Job is a unit of work run by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job hands back
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	workers int
}

// NewPool creates a pool; non-positive counts run a single worker
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run pulls jobs from the sequence and streams their results. Once ctx ends no
// further job is started. The channel closes after every started job has reported,
// so callers must drain it.
func (p *Pool) Run(ctx context.Context, jobs iter.Seq[Job]) <-chan Result {
	queue := make(chan Job)
	results := make(chan Result, p.workers)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				results <- job.Execute(ctx)
			}
		}()
	}

	go func() {
		defer close(queue)
		for job := range jobs {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case queue <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
