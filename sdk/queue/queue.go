// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package queue implements a FIFO task scheduler that bounds both the number
// of running tasks and the rate at which new tasks start.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	ErrClosed       = errors.New("queue is closed")
	ErrTaskPanicked = errors.New("task panicked")
)

// Options tunes a Queue. With Interval > 0 at most IntervalCap tasks start per
// Interval, evenly spaced; with Interval == 0 only Concurrency applies.
type Options struct {
	Concurrency int
	Interval    time.Duration
	IntervalCap int
}

type Queue struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter

	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []func()
	closed bool
	// a job taken off jobs that has not been counted in running yet
	dispatching bool

	running atomic.Int64
	stopped chan struct{}
}

func New(opts Options) *Queue {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	q := &Queue{
		sem:     semaphore.NewWeighted(int64(opts.Concurrency)),
		stopped: make(chan struct{}),
	}
	if opts.Interval > 0 {
		if opts.IntervalCap < 1 {
			opts.IntervalCap = 1
		}
		// burst 1: starts are spaced by Interval/IntervalCap
		q.limiter = rate.NewLimiter(rate.Every(opts.Interval/time.Duration(opts.IntervalCap)), 1)
	}
	q.cond = sync.NewCond(&q.mu)
	go q.dispatch()
	return q
}

// Submit enqueues task on q. The returned future settles with the task's own
// result; a panic inside the task rejects only this future.
func Submit[T any](ctx context.Context, q *Queue, task func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	run := func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.settle(zero, fmt.Errorf("%w: %v", ErrTaskPanicked, r))
			}
		}()
		v, err := task(ctx)
		f.settle(v, err)
	}
	if !q.enqueue(run) {
		var zero T
		f.settle(zero, ErrClosed)
	}
	return f
}

func (q *Queue) enqueue(job func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.jobs = append(q.jobs, job)
	q.cond.Signal()
	return true
}

func (q *Queue) next() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.jobs) == 0 {
		return nil, false
	}
	job := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	q.dispatching = true
	return job, true
}

func (q *Queue) dispatch() {
	defer close(q.stopped)
	ctx := context.Background()
	for {
		job, ok := q.next()
		if !ok {
			return
		}
		// Acquire and Wait only fail on a cancelled context.
		_ = q.sem.Acquire(ctx, 1)
		if q.limiter != nil {
			_ = q.limiter.Wait(ctx)
		}
		q.running.Add(1)
		q.mu.Lock()
		q.dispatching = false
		q.mu.Unlock()
		go func() {
			defer func() {
				q.running.Add(-1)
				q.sem.Release(1)
			}()
			job()
		}()
	}
}

// Close rejects further submissions. Tasks already queued still run; the
// returned channel is closed once the last of them has started.
func (q *Queue) Close() <-chan struct{} {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	return q.stopped
}

// Pending is the number of submitted tasks that have not started yet.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Running is the number of tasks currently executing.
func (q *Queue) Running() int {
	return int(q.running.Load())
}

// Idle reports whether nothing is queued or running.
func (q *Queue) Idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs) == 0 && !q.dispatching && q.running.Load() == 0
}
