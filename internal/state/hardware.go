package state

import (
	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"

	"github.com/ckos/ckos/hardware/clock"
	hwdisplay "github.com/ckos/ckos/hardware/display"
	"github.com/ckos/ckos/hardware/input"
	"github.com/ckos/ckos/hardware/lock"
	"github.com/ckos/ckos/hardware/sensors"
	"github.com/ckos/ckos/internal/types"
)

type hardware struct {
	Clock   types.Clock
	Display *hwdisplay.Display
	Input   *input.Dispatch
	Lock    lock.Actuator
	Sensors sensors.Reader

	// Mock source is always registered, the simulator console and
	// tests feed it.
	Mock    *input.MockSource
	sources []input.Source
}

func (g *Global) initHardware() error {
	h := &g.Hardware
	cfg := g.Config

	if h.Clock == nil {
		h.Clock = clock.NewSys()
	}

	d, err := hwdisplay.New(&hwdisplay.Config{
		Codepage: cfg.Hardware.Display.Codepage,
		Width:    cfg.Hardware.Display.Width,
		Height:   cfg.Hardware.Display.Height,
	})
	if err != nil {
		return errors.Annotate(err, "display")
	}
	h.Display = d

	h.Input = input.NewDispatch(g.Log, h.Clock, g.Alive.StopChan())
	h.Mock = input.NewMockSource()
	h.sources = []input.Source{h.Mock}

	if c := cfg.Hardware.Input.DevInputEvent; c.Enable {
		src, err := input.NewDevInputEventSource(c.Device, nil, h.Clock)
		if err != nil {
			return errors.Annotatef(err, "input dev=%s", c.Device)
		}
		h.sources = append(h.sources, src)
	}
	if c := cfg.Hardware.Input.Gpio; c.Enable {
		chip, err := gpio.Open(c.Chip, "ckos")
		if err != nil {
			return errors.Annotatef(err, "input gpio chip=%s", c.Chip)
		}
		src, err := input.NewGpioSource(chip, buttonLines(c.Pinmap), h.Clock)
		if err != nil {
			return errors.Annotate(err, "input gpio")
		}
		h.sources = append(h.sources, src)
	}

	if c := cfg.Hardware.Lock; c.Enable {
		chip, err := gpio.Open(c.Chip, "ckos")
		if err != nil {
			return errors.Annotatef(err, "lock gpio chip=%s", c.Chip)
		}
		act, err := lock.NewGpio(chip, c.Line, g.Log)
		if err != nil {
			return errors.Annotate(err, "lock")
		}
		h.Lock = act
	} else {
		h.Lock = lock.NewMock()
	}

	if h.Sensors == nil {
		h.Sensors = sensors.NewMock()
	}
	return nil
}

// RunInput starts the dispatch fan-out, stopped through Alive.
func (g *Global) RunInput() {
	go g.Hardware.Input.Run(g.Hardware.sources)
}

func buttonLines(pm PinMap) map[uint32]types.Button {
	return map[uint32]types.Button{
		pm.Up:    types.ButtonUp,
		pm.Down:  types.ButtonDown,
		pm.Left:  types.ButtonLeft,
		pm.Right: types.ButtonRight,
		pm.A:     types.ButtonA,
		pm.B:     types.ButtonB,
	}
}
