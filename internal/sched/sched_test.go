package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckos/ckos/hardware/clock"
	"github.com/ckos/ckos/log2"
)

func TestRoundRobinCadence(t *testing.T) {
	t.Parallel()

	mclock := clock.NewMock(0)
	var fast, slow int
	rr := NewRoundRobin(log2.NewTest(t, log2.LDebug), mclock, []Task{
		{Name: "fast", Interval: 10 * time.Millisecond, Fn: func(context.Context) error { fast++; return nil }},
		{Name: "slow", Interval: 100 * time.Millisecond, Fn: func(context.Context) error { slow++; return nil }},
	})

	ctx := context.Background()
	// both due at t=0
	ran, err := rr.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ran)

	// nothing due until the fast interval elapses
	ran, _ = rr.Step(ctx)
	assert.Equal(t, 0, ran)

	for i := 0; i < 10; i++ {
		mclock.Advance(10 * time.Millisecond)
		_, err := rr.Step(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 11, fast)
	assert.Equal(t, 2, slow)
}

func TestRoundRobinNoDoubleRunPerStep(t *testing.T) {
	t.Parallel()

	mclock := clock.NewMock(0)
	var n int
	rr := NewRoundRobin(log2.NewTest(t, log2.LDebug), mclock, []Task{
		{Name: "t", Interval: 10 * time.Millisecond, Fn: func(context.Context) error { n++; return nil }},
	})

	// a long stall still yields exactly one catch-up run
	mclock.Advance(10 * time.Second)
	ran, err := rr.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, n)
}

func TestRoundRobinTaskError(t *testing.T) {
	t.Parallel()

	mclock := clock.NewMock(0)
	rr := NewRoundRobin(log2.NewTest(t, log2.LDebug), mclock, []Task{
		{Name: "bad", Interval: time.Millisecond, Fn: func(context.Context) error { return assert.AnError }},
	})
	_, err := rr.Step(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task=bad")
}

func TestThreadsRunStop(t *testing.T) {
	t.Parallel()

	var n uint32
	th := NewThreads(log2.NewTest(t, log2.LDebug))
	done := make(chan error, 1)
	go func() {
		done <- th.Run(context.Background(), []Task{
			{Name: "count", Interval: time.Millisecond, Fn: func(context.Context) error {
				atomic.AddUint32(&n, 1)
				return nil
			}},
		})
	}()

	for atomic.LoadUint32(&n) < 3 {
		time.Sleep(time.Millisecond)
	}
	th.Stop()
	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, atomic.LoadUint32(&n), uint32(3))
}

func TestThreadsTaskErrorStopsAll(t *testing.T) {
	t.Parallel()

	th := NewThreads(log2.NewTest(t, log2.LDebug))
	err := th.Run(context.Background(), []Task{
		{Name: "ok", Interval: time.Millisecond, Fn: func(context.Context) error { return nil }},
		{Name: "bad", Interval: time.Millisecond, Fn: func(context.Context) error { return assert.AnError }},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task=bad")
}

func TestThreadsContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	th := NewThreads(log2.NewTest(t, log2.LDebug))
	done := make(chan error, 1)
	go func() {
		done <- th.Run(ctx, []Task{
			{Name: "idle", Interval: time.Millisecond, Fn: func(context.Context) error { return nil }},
		})
	}()
	cancel()
	require.NoError(t, <-done)
}
