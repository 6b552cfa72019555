// Package ratelimit gates every outbound request behind a process-wide
// concurrency cap and a minimum spacing between task starts.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	DefaultMaxConcurrent = 5
	DefaultMinInterval   = 200 * time.Millisecond
)

var ErrClosed = errors.New("rate limiter closed")

type Task func(ctx context.Context) error

type job struct {
	ctx    context.Context
	task   Task
	result chan error
}

// Limiter runs tasks in FIFO order. At most maxConcurrent tasks execute at
// once and successive starts are at least minInterval apart.
type Limiter struct {
	queue chan *job
	slots *semaphore.Weighted
	pace  *rate.Limiter

	done      chan struct{}
	closeOnce sync.Once
}

func New(maxConcurrent int, minInterval time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	l := &Limiter{
		queue: make(chan *job),
		slots: semaphore.NewWeighted(int64(maxConcurrent)),
		pace:  rate.NewLimiter(limit, 1),
		done:  make(chan struct{}),
	}

	go l.dispatch()

	return l
}

// dispatch is the only goroutine that starts tasks, which keeps starts in
// enqueue order.
func (l *Limiter) dispatch() {
	for {
		select {
		case <-l.done:
			return
		case j := <-l.queue:
			if err := l.slots.Acquire(j.ctx, 1); err != nil {
				j.result <- err
				continue
			}

			if err := l.pace.Wait(j.ctx); err != nil {
				l.slots.Release(1)
				j.result <- err
				continue
			}

			go func() {
				defer l.slots.Release(1)
				j.result <- j.task(j.ctx)
			}()
		}
	}
}

// Do enqueues task and waits for its result. The task's error is returned
// unchanged. If ctx ends after the task started, Do returns early but the
// task keeps its slot until it finishes.
func (l *Limiter) Do(ctx context.Context, task Task) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}

	j := &job{
		ctx:    ctx,
		task:   task,
		result: make(chan error, 1),
	}

	select {
	case l.queue <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule is Do for tasks that produce a value.
func Schedule[T any](ctx context.Context, l *Limiter, task func(ctx context.Context) (T, error)) (T, error) {
	out := make(chan T, 1)

	err := l.Do(ctx, func(ctx context.Context) error {
		v, err := task(ctx)
		if err != nil {
			return err
		}
		out <- v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return <-out, nil
}

// Close stops accepting tasks. Running tasks are not interrupted.
func (l *Limiter) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}
