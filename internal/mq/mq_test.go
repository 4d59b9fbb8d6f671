package mq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFORoundTrip(t *testing.T) {
	t.Parallel()

	const capacity = 16
	q := New(capacity)
	assert.Equal(t, capacity, q.Cap())

	for i := 0; i < capacity; i++ {
		require.True(t, q.Put(i), "put i=%d", i)
	}
	assert.Equal(t, capacity, q.Len())

	for i := 0; i < capacity; i++ {
		v, ok := q.Take()
		require.True(t, ok, "take i=%d", i)
		assert.Equal(t, i, v)
	}
	_, ok := q.Take()
	assert.False(t, ok)
}

func TestPutFullRejects(t *testing.T) {
	t.Parallel()

	q := New(16)
	for i := 0; i < 16; i++ {
		require.True(t, q.Put(i))
	}
	// 17th is rejected, contents untouched
	assert.False(t, q.Put(17))
	assert.Equal(t, 16, q.Len())

	v, ok := q.Take()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	// one slot free again
	assert.True(t, q.Put(17))
	assert.False(t, q.Put(18))
	for i := 1; i <= 16; i++ {
		v, ok = q.Take()
		require.True(t, ok)
		if i == 16 {
			assert.Equal(t, 17, v)
		} else {
			assert.Equal(t, i, v)
		}
	}
}

func TestWrapAround(t *testing.T) {
	t.Parallel()

	q := New(4)
	n := 0
	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			require.True(t, q.Put(n+i))
		}
		for i := 0; i < 3; i++ {
			v, ok := q.Take()
			require.True(t, ok)
			assert.Equal(t, n+i, v)
		}
		n += 3
	}
}

func TestTakeWait(t *testing.T) {
	t.Parallel()

	q := New(4)
	_, ok := q.TakeWait(10 * time.Millisecond)
	assert.False(t, ok)

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Put("late")
	}()
	v, ok := q.TakeWait(time.Second)
	require.True(t, ok)
	assert.Equal(t, "late", v)
}

func TestNewInvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New(0) })
}
