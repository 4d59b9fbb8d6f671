// Package types holds small values shared across task boundaries.
package types

import (
	"context"
	"fmt"
)

type TaskFunc func(context.Context) error

// Button is the six-key physical control set.
type Button uint8

const (
	ButtonInvalid Button = iota
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA // select/confirm
	ButtonB // back/cancel
	buttonCount
)

func (b Button) Valid() bool { return b > ButtonInvalid && b < buttonCount }

func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	}
	return fmt.Sprintf("invalid(%d)", uint8(b))
}

// ParseButton is the inverse of Button.String, for the sim console.
func ParseButton(s string) Button {
	switch s {
	case "up", "^":
		return ButtonUp
	case "down", "v":
		return ButtonDown
	case "left", "<":
		return ButtonLeft
	case "right", ">":
		return ButtonRight
	case "a", "A":
		return ButtonA
	case "b", "B":
		return ButtonB
	}
	return ButtonInvalid
}

// InputEvent is one edge of one control. TimeMs is the source's
// millisecond tick at capture, used for debounce only.
type InputEvent struct {
	Source  string
	Button  Button
	Pressed bool
	TimeMs  uint32
}

func (e *InputEvent) IsZero() bool { return e.Button == ButtonInvalid }

func (e *InputEvent) String() string {
	return fmt.Sprintf("Input(source=%s button=%s pressed=%t t=%d)", e.Source, e.Button.String(), e.Pressed, e.TimeMs)
}

// Clock abstracts time for the core so the cooperative runner and
// tests can be driven by a scripted schedule.
type Clock interface {
	// TickMs is milliseconds since boot, wraps after ~49 days.
	TickMs() uint32
	// UTCSeconds is wall clock, re-synced only explicitly.
	UTCSeconds() uint64
}
