// Package mq is the fixed-capacity FIFO channel between tasks.
// Single producer, single consumer per instance. Put rejects when
// full instead of blocking the producer; UI commands are best-effort
// and superseded by the next tick anyway.
package mq

import (
	"sync"
	"time"
)

type Queue struct {
	mu     sync.Mutex
	buf    []interface{}
	head   int
	count  int
	readch chan struct{}
}

func New(capacity int) *Queue {
	if capacity <= 0 {
		panic("code error mq.New capacity must be positive")
	}
	return &Queue{
		buf:    make([]interface{}, capacity),
		readch: make(chan struct{}, 1),
	}
}

func (q *Queue) Cap() int { return len(q.buf) }

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Put copies item into the queue. Returns false without side effect
// when the queue is full.
func (q *Queue) Put(item interface{}) bool {
	q.mu.Lock()
	if q.count == len(q.buf) {
		q.mu.Unlock()
		return false
	}
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = item
	q.count++
	q.mu.Unlock()
	signal(q.readch)
	return true
}

// Take returns the oldest item, or ok=false when empty.
func (q *Queue) Take() (interface{}, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.take()
}

// TakeWait blocks up to timeout for an item. Only legal from the
// single consumer.
func (q *Queue) TakeWait(timeout time.Duration) (interface{}, bool) {
	q.mu.Lock()
	if v, ok := q.take(); ok {
		q.mu.Unlock()
		return v, true
	}
	q.mu.Unlock()

	tmr := time.NewTimer(timeout)
	defer tmr.Stop()
	for {
		select {
		case <-q.readch:
			q.mu.Lock()
			v, ok := q.take()
			q.mu.Unlock()
			if ok {
				return v, true
			}
			// signal raced with a previous Take, keep waiting

		case <-tmr.C:
			return nil, false
		}
	}
}

func (q *Queue) take() (interface{}, bool) {
	if q.count == 0 {
		return nil, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v, true
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
