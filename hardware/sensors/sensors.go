// Package sensors is the read-only side of the hardware facade.
package sensors

import (
	"sync"
)

// Readings is one polling snapshot. BatteryPercent is 0..100,
// TemperatureC is board temperature in whole degrees.
type Readings struct {
	BatteryPercent uint8
	TemperatureC   int8
	DoorClosed     bool
	LatchEngaged   bool
}

type Reader interface {
	Read() (Readings, error)
}

// Mock serves scripted readings, default is a healthy closed device.
type Mock struct {
	mu  sync.Mutex
	r   Readings
	err error
}

var _ Reader = new(Mock)

func NewMock() *Mock {
	return &Mock{r: Readings{BatteryPercent: 100, TemperatureC: 20, DoorClosed: true}}
}

func (m *Mock) Read() (Readings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.r, m.err
}

func (m *Mock) Set(r Readings) {
	m.mu.Lock()
	m.r = r
	m.mu.Unlock()
}

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
