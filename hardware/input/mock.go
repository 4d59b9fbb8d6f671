package input

import (
	"io"

	"github.com/ckos/ckos/internal/types"
)

const MockSourceTag = "mock"

// MockSource feeds scripted button edges, used by the simulator
// console and by tests.
type MockSource struct {
	C chan types.InputEvent
}

// compile-time interface compliance test
var _ Source = new(MockSource)

func NewMockSource() *MockSource {
	return &MockSource{C: make(chan types.InputEvent, 32)}
}

func (self *MockSource) String() string { return MockSourceTag }

func (self *MockSource) Read() (types.InputEvent, error) {
	ev, ok := <-self.C
	if !ok {
		return types.InputEvent{}, io.EOF
	}
	return ev, nil
}

// Press queues a press+release pair with the given timestamps.
func (self *MockSource) Press(b types.Button, downMs, upMs uint32) {
	self.C <- types.InputEvent{Source: MockSourceTag, Button: b, Pressed: true, TimeMs: downMs}
	self.C <- types.InputEvent{Source: MockSourceTag, Button: b, Pressed: false, TimeMs: upMs}
}

func (self *MockSource) Close() { close(self.C) }
