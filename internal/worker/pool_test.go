package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{}
}

// jobsOf yields the given jobs in order
func jobsOf(jobs ...Job) func(yield func(Job) bool) {
	return func(yield func(Job) bool) {
		for _, j := range jobs {
			if !yield(j) {
				return
			}
		}
	}
}

func drain(ch <-chan Result) []Result {
	var out []Result
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_Execution(t *testing.T) {
	var executed int32
	count := 4

	jobs := make([]Job, count)
	for i := range jobs {
		jobs[i] = &mockJob{executed: &executed}
	}

	results := drain(NewPool(2).Run(context.Background(), jobsOf(jobs...)))

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

func TestPool_EmptySequence(t *testing.T) {
	done := make(chan []Result)
	go func() {
		done <- drain(NewPool(3).Run(context.Background(), jobsOf()))
	}()

	select {
	case results := <-done:
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	case <-time.After(1 * time.Second):
		t.Fatal("results not closed for empty job sequence")
	}
}

type concurrencyJob struct {
	start    func()
	end      func()
	duration time.Duration
}

func (j *concurrencyJob) Execute(ctx context.Context) Result {
	if j.start != nil {
		j.start()
	}
	time.Sleep(j.duration)
	if j.end != nil {
		j.end()
	}
	return &mockResult{}
}

func TestPool_ConcurrencyBounded(t *testing.T) {
	workers := 4
	var current, maxConcurrent, completed int32
	var mu sync.Mutex
	totalJobs := 40

	jobs := func(yield func(Job) bool) {
		for i := 0; i < totalJobs; i++ {
			job := &concurrencyJob{
				start: func() {
					curr := atomic.AddInt32(&current, 1)
					mu.Lock()
					if curr > maxConcurrent {
						maxConcurrent = curr
					}
					mu.Unlock()
				},
				end: func() {
					atomic.AddInt32(&current, -1)
					atomic.AddInt32(&completed, 1)
				},
				duration: 5 * time.Millisecond,
			}
			if !yield(job) {
				return
			}
		}
	}

	received := len(drain(NewPool(workers).Run(context.Background(), jobs)))

	if received != totalJobs {
		t.Errorf("expected %d results, got %d", totalJobs, received)
	}
	if atomic.LoadInt32(&completed) != int32(totalJobs) {
		t.Errorf("expected %d completed jobs, got %d", totalJobs, completed)
	}

	mu.Lock()
	peak := maxConcurrent
	mu.Unlock()
	if peak > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", peak, workers)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	results := drain(NewPool(2).Run(context.Background(), jobsOf(
		&mockJob{shouldErr: true},
		&mockJob{shouldErr: false},
	)))
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, res := range results {
		if res.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 error, got %d", failed)
	}
}

func TestPool_CanceledBeforeRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var executed int32
	results := drain(NewPool(2).Run(ctx, jobsOf(&mockJob{executed: &executed}, &mockJob{executed: &executed})))

	if len(results) != 0 {
		t.Errorf("expected no results after cancel, got %d", len(results))
	}
	if atomic.LoadInt32(&executed) != 0 {
		t.Errorf("expected no job to start, got %d", executed)
	}
}

func TestPool_CancelStopsFeeding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var executed int32
	started := make(chan struct{})
	jobs := func(yield func(Job) bool) {
		if !yield(&concurrencyJob{start: func() { close(started) }, duration: 20 * time.Millisecond}) {
			return
		}
		<-started
		cancel()
		for i := 0; i < 10; i++ {
			if !yield(&mockJob{executed: &executed}) {
				return
			}
		}
	}

	done := make(chan []Result)
	go func() { done <- drain(NewPool(1).Run(ctx, jobs)) }()

	select {
	case results := <-done:
		if len(results) != 1 {
			t.Errorf("expected only the started job to report, got %d results", len(results))
		}
		if atomic.LoadInt32(&executed) != 0 {
			t.Errorf("expected no job started after cancel, got %d", executed)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("results not closed after cancel")
	}
}
