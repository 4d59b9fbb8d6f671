// Package lock drives the physical lock actuator.
package lock

import (
	"sync"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"

	"github.com/ckos/ckos/log2"
)

type State uint8

const (
	Released State = iota
	Engaged
)

func (s State) String() string {
	if s == Engaged {
		return "engaged"
	}
	return "released"
}

type Actuator interface {
	Engage() error
	Release() error
	State() State
}

// Gpio drives the lock solenoid through one output line. The driver
// caches the commanded state, there is no position feedback on this
// line, the latch sensor covers that.
type Gpio struct {
	mu    sync.Mutex
	log   *log2.Log
	lines gpio.Lineser
	set   gpio.LineSetFunc
	state State
}

var _ Actuator = new(Gpio)

func NewGpio(chip gpio.Chiper, line uint32, log *log2.Log) (*Gpio, error) {
	lines, err := chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, "ckos-lock", line)
	if err != nil {
		return nil, errors.Annotatef(err, "lock gpio line=%d", line)
	}
	return &Gpio{
		log:   log,
		lines: lines,
		set:   lines.SetFunc(line),
	}, nil
}

func (self *Gpio) Engage() error { return self.drive(Engaged, 1) }

func (self *Gpio) Release() error { return self.drive(Released, 0) }

func (self *Gpio) State() State {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.state
}

func (self *Gpio) Close() error { return self.lines.Close() }

func (self *Gpio) drive(state State, value byte) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.set(value)
	if err := self.lines.Flush(); err != nil {
		return errors.Annotatef(err, "lock drive %s", state.String())
	}
	self.state = state
	self.log.Infof("lock %s", state.String())
	return nil
}

// Mock actuator for tests and the simulator.
type Mock struct {
	mu    sync.Mutex
	state State
	err   error
	Ops   []State
}

var _ Actuator = new(Mock)

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Engage() error  { return m.drive(Engaged) }
func (m *Mock) Release() error { return m.drive(Released) }

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *Mock) drive(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.state = s
	m.Ops = append(m.Ops, s)
	return nil
}
