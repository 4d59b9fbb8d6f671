package input

import (
	"io"
	"os"

	inputevent "github.com/temoto/inputevent-go"
	"github.com/ckos/ckos/internal/types"
)

const DevInputEventTag = "dev-input-event"

// Linux input-event-codes.h, the vendored reader only parses frames.
const evKey = 0x01

// Default evdev scan code map for a plain 6-key pad. Overridable from
// config for boards that wire the pad through a matrix keyboard chip.
var DefaultKeyMap = map[uint16]types.Button{
	103: types.ButtonUp,    // KEY_UP
	108: types.ButtonDown,  // KEY_DOWN
	105: types.ButtonLeft,  // KEY_LEFT
	106: types.ButtonRight, // KEY_RIGHT
	28:  types.ButtonA,     // KEY_ENTER
	1:   types.ButtonB,     // KEY_ESC
}

type DevInputEventSource struct {
	f     io.ReadCloser
	keys  map[uint16]types.Button
	clock types.Clock
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func (self *DevInputEventSource) String() string { return DevInputEventTag }

func NewDevInputEventSource(device string, keys map[uint16]types.Button, clock types.Clock) (*DevInputEventSource, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = DefaultKeyMap
	}
	return &DevInputEventSource{f: f, keys: keys, clock: clock}, nil
}

func (self *DevInputEventSource) Read() (types.InputEvent, error) {
	for {
		ie, err := inputevent.ReadOne(self.f)
		if err != nil {
			return types.InputEvent{}, err
		}
		if ie.Type != evKey || ie.Value == int32(inputevent.KeyStateHold) {
			continue
		}
		button, ok := self.keys[ie.Code]
		if !ok {
			continue
		}
		ev := types.InputEvent{
			Source:  DevInputEventTag,
			Button:  button,
			Pressed: ie.Value == int32(inputevent.KeyStateDown),
		}
		if self.clock != nil {
			ev.TimeMs = self.clock.TickMs()
		}
		return ev, nil
	}
}

func (self *DevInputEventSource) Close() error { return self.f.Close() }
