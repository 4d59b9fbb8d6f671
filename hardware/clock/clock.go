// Package clock provides the time side of the hardware facade:
// millisecond ticks since boot and UTC wall seconds.
package clock

import (
	"sync"
	"time"

	"github.com/temoto/atomic_clock"
	"github.com/ckos/ckos/internal/types"
)

type Sys struct {
	boot *atomic_clock.Clock
}

var _ types.Clock = &Sys{}

func NewSys() *Sys { return &Sys{boot: atomic_clock.Now()} }

func (s *Sys) TickMs() uint32 {
	return uint32(atomic_clock.Since(s.boot) / time.Millisecond)
}

func (s *Sys) UTCSeconds() uint64 { return uint64(time.Now().UTC().Unix()) }

// Mock is a scripted clock for tests and the cooperative runner's
// deterministic replay mode.
type Mock struct {
	mu     sync.Mutex
	tickMs uint32
	utc    uint64
	restMs uint32
}

var _ types.Clock = &Mock{}

func NewMock(startUTC uint64) *Mock { return &Mock{utc: startUTC} }

func (m *Mock) TickMs() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickMs
}

func (m *Mock) UTCSeconds() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.utc
}

func (m *Mock) Advance(d time.Duration) {
	ms := uint32(d / time.Millisecond)
	m.mu.Lock()
	m.tickMs += ms
	m.restMs += ms
	m.utc += uint64(m.restMs / 1000)
	m.restMs %= 1000
	m.mu.Unlock()
}

func (m *Mock) SetUTC(utc uint64) {
	m.mu.Lock()
	m.utc = utc
	m.mu.Unlock()
}
