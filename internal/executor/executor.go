// Package executor provides the single-threaded cooperative command
// executor of spec §5: every command runs to completion on one goroutine,
// so keyspace mutations never interleave, while any number of callers may
// submit concurrently. golang.org/x/sync/semaphore bounds how many
// submitters may be waiting on the queue at once.
package executor

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Executor serializes job execution onto a single worker goroutine.
type Executor struct {
	jobs chan func()
	sem  *semaphore.Weighted
	done chan struct{}
}

// New starts an Executor. queueSize bounds how many submitted jobs may be
// buffered before Submit blocks; maxInFlight bounds how many Submit calls may
// hold a slot at once (a slot is held from queueing the job until its result
// arrives), and further callers block in Submit until a slot frees.
func New(queueSize int, maxInFlight int64) *Executor {
	e := &Executor{
		jobs: make(chan func(), queueSize),
		sem:  semaphore.NewWeighted(maxInFlight),
		done: make(chan struct{}),
	}
	go e.loop()
	return e
}

func (e *Executor) loop() {
	defer close(e.done)
	for job := range e.jobs {
		job()
	}
}

// Close stops accepting new jobs and waits for the worker to drain the
// queue and exit.
func (e *Executor) Close() {
	close(e.jobs)
	<-e.done
}

// Submit runs fn on the executor's single worker goroutine and returns its
// result, bounding concurrent waiters with the executor's semaphore. It
// blocks until a slot is available, fn has run, and ctx has not been
// canceled first.
func Submit[T any](ctx context.Context, e *Executor, fn func() T) (T, error) {
	var zero T
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}
	defer e.sem.Release(1)

	result := make(chan T, 1)
	select {
	case e.jobs <- func() { result <- fn() }:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case r := <-result:
		return r, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
