package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ckos/ckos/hardware/clock"
	"github.com/ckos/ckos/internal/types"
	"github.com/ckos/ckos/log2"
)

func TestDispatchDoubleSubscribe(t *testing.T) {
	log := log2.NewTest(t, log2.LDebug)
	dstop := make(chan struct{})
	d := NewDispatch(log, clock.NewMock(0), dstop)

	go func() {
		sub1stop := make(chan struct{})
		d.SubscribeChan("name", sub1stop)
		close(sub1stop)
		sub2stop := make(chan struct{})
		d.SubscribeChan("name", sub2stop)
		close(dstop)
	}()

	d.Run(nil)
}

func TestDispatchMockSource(t *testing.T) {
	log := log2.NewTest(t, log2.LDebug)
	mclock := clock.NewMock(0)
	mclock.Advance(777 * time.Millisecond)
	dstop := make(chan struct{})
	d := NewDispatch(log, mclock, dstop)

	substop := make(chan struct{})
	ch := d.SubscribeChan("test", substop)
	src := NewMockSource()
	go d.Run([]Source{src})

	src.C <- types.InputEvent{Source: MockSourceTag, Button: types.ButtonA, Pressed: true, TimeMs: 100}
	ev := <-ch
	assert.Equal(t, types.ButtonA, ev.Button)
	assert.True(t, ev.Pressed)
	assert.Equal(t, uint32(100), ev.TimeMs)

	// zero timestamp is stamped from the dispatch clock
	src.C <- types.InputEvent{Source: MockSourceTag, Button: types.ButtonB, Pressed: true}
	ev = <-ch
	assert.Equal(t, types.ButtonB, ev.Button)
	assert.Equal(t, uint32(777), ev.TimeMs)

	close(dstop)
}

func TestDispatchDisabledDrops(t *testing.T) {
	log := log2.NewTest(t, log2.LDebug)
	dstop := make(chan struct{})
	d := NewDispatch(log, clock.NewMock(0), dstop)

	substop := make(chan struct{})
	seen := make(chan types.InputEvent, 4)
	d.SubscribeFunc("test", func(e types.InputEvent) { seen <- e }, substop)
	src := NewMockSource()
	d.Enable(false)
	go d.Run([]Source{src})

	src.C <- types.InputEvent{Source: MockSourceTag, Button: types.ButtonUp, Pressed: true, TimeMs: 1}
	d.Enable(true)
	src.C <- types.InputEvent{Source: MockSourceTag, Button: types.ButtonDown, Pressed: true, TimeMs: 2}
	ev := <-seen
	assert.Equal(t, types.ButtonDown, ev.Button)
	assert.Len(t, seen, 0)

	close(dstop)
}
