package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_ConcurrencyCap(t *testing.T) {
	t.Parallel()

	l := New(5, time.Millisecond)
	defer l.Close()

	var (
		running int32
		peak    int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Do(context.Background(), func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(30 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(5))
	assert.Equal(t, int32(5), atomic.LoadInt32(&peak), "expected the cap to be reached")
}

func TestLimiter_StartSpacing(t *testing.T) {
	t.Parallel()

	const interval = 50 * time.Millisecond

	l := New(5, interval)
	defer l.Close()

	var (
		mu     sync.Mutex
		starts []time.Time
		wg     sync.WaitGroup
	)

	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	require.Len(t, starts, 6)
	// goroutine wake-up jitter can shave a little off the observed gap
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), interval-10*time.Millisecond)
	}
	assert.GreaterOrEqual(t, starts[5].Sub(starts[0]), 5*interval-10*time.Millisecond)
}

func TestLimiter_FIFO(t *testing.T) {
	t.Parallel()

	l := New(1, 0)
	defer l.Close()

	release := make(chan struct{})
	blocked := make(chan struct{})

	go func() {
		_ = l.Do(context.Background(), func(context.Context) error {
			close(blocked)
			<-release
			return nil
		})
	}()
	<-blocked

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = l.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
		// let each caller block on the queue before the next one arrives
		time.Sleep(10 * time.Millisecond)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestLimiter_PassesErrorsThrough(t *testing.T) {
	t.Parallel()

	l := New(2, 0)
	defer l.Close()

	want := errors.New("boom")
	calls := 0

	err := l.Do(context.Background(), func(context.Context) error {
		calls++
		return want
	})

	assert.Same(t, want, err)
	assert.Equal(t, 1, calls, "limiter must not retry")
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	l := New(2, 0)
	defer l.Close()

	v, err := Schedule(context.Background(), l, func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	v, err = Schedule(context.Background(), l, func(context.Context) (string, error) {
		return "ignored", errors.New("failed")
	})
	assert.Error(t, err)
	assert.Empty(t, v)
}

func TestLimiter_CancelledWhileQueued(t *testing.T) {
	t.Parallel()

	l := New(1, 0)
	defer l.Close()

	release := make(chan struct{})
	blocked := make(chan struct{})
	go func() {
		_ = l.Do(context.Background(), func(context.Context) error {
			close(blocked)
			<-release
			return nil
		})
	}()
	<-blocked
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ran := false
	err := l.Do(ctx, func(context.Context) error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran)
}

func TestLimiter_Closed(t *testing.T) {
	t.Parallel()

	l := New(1, 0)
	l.Close()
	l.Close()

	err := l.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}
