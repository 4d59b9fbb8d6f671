package input

import (
	"time"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
	"github.com/ckos/ckos/internal/types"
)

const GpioTag = "gpio"

const gpioWaitTimeout = 1 * time.Second

// GpioSource reads button edges from GPIO character device lines.
// Lines are requested with both edges so release is seen too, a
// rising edge maps to pressed with the active-high wiring of the pad.
type GpioSource struct {
	chip   gpio.Chiper
	clock  types.Clock
	events chan types.InputEvent
	lines  []gpio.Eventer
}

// compile-time interface compliance test
var _ Source = new(GpioSource)

func (self *GpioSource) String() string { return GpioTag }

func NewGpioSource(chip gpio.Chiper, lines map[uint32]types.Button, clock types.Clock) (*GpioSource, error) {
	self := &GpioSource{
		chip:   chip,
		clock:  clock,
		events: make(chan types.InputEvent, 8),
		lines:  make([]gpio.Eventer, 0, len(lines)),
	}
	for line, button := range lines {
		ev, err := chip.GetLineEvent(line, 0, gpio.GPIOEVENT_REQUEST_BOTH_EDGES, "ckos-buttons")
		if err != nil {
			self.Close()
			return nil, errors.Annotatef(err, "gpio line=%d button=%s", line, button.String())
		}
		self.lines = append(self.lines, ev)
		go self.lineLoop(ev, button)
	}
	return self, nil
}

func (self *GpioSource) Read() (types.InputEvent, error) {
	ev, ok := <-self.events
	if !ok {
		return types.InputEvent{}, gpio.ErrClosed
	}
	return ev, nil
}

func (self *GpioSource) Close() error {
	var err error
	for _, line := range self.lines {
		if e := line.Close(); e != nil && !gpio.IsClosed(e) {
			err = e
		}
	}
	if e := self.chip.Close(); e != nil && !gpio.IsClosed(e) {
		err = e
	}
	return err
}

func (self *GpioSource) lineLoop(line gpio.Eventer, button types.Button) {
	for {
		edge, err := line.Wait(gpioWaitTimeout)
		if gpio.IsTimeout(err) {
			continue
		}
		if err != nil {
			close(self.events)
			return
		}
		ev := types.InputEvent{
			Source:  GpioTag,
			Button:  button,
			Pressed: edge.ID == gpio.GPIOEVENT_EVENT_RISING_EDGE,
		}
		if self.clock != nil {
			ev.TimeMs = self.clock.TickMs()
		}
		self.events <- ev
	}
}
