// Package display is the character frame side of the hardware facade.
// Screens draw into a Frame, the Display flushes it to a Devicer.
package display

import (
	"strings"
)

// 128x64 panel with a 4x4 character cell.
const (
	DefaultWidth  = 32
	DefaultHeight = 16
)

// Frame is a fixed-size grid of character cells. All drawing clips to
// the frame bounds, out-of-range coordinates are silently dropped.
type Frame struct {
	W, H  int
	cells []rune
}

func NewFrame(w, h int) *Frame {
	if w <= 0 || h <= 0 {
		panic("code error frame dimensions must be positive")
	}
	f := &Frame{W: w, H: h, cells: make([]rune, w*h)}
	f.Clear()
	return f
}

func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = ' '
	}
}

func (f *Frame) Set(x, y int, r rune) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	f.cells[y*f.W+x] = r
}

func (f *Frame) At(x, y int) rune {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return 0
	}
	return f.cells[y*f.W+x]
}

func (f *Frame) Text(x, y int, s string) {
	for _, r := range s {
		f.Set(x, y, r)
		x++
	}
}

func (f *Frame) TextCentered(y int, s string) {
	n := len([]rune(s))
	f.Text((f.W-n)/2, y, s)
}

// TextRight aligns the end of s to the right edge.
func (f *Frame) TextRight(y int, s string) {
	n := len([]rune(s))
	f.Text(f.W-n, y, s)
}

func (f *Frame) HLine(y int, r rune) {
	for x := 0; x < f.W; x++ {
		f.Set(x, y, r)
	}
}

// Line returns row y padded to frame width.
func (f *Frame) Line(y int) string {
	if y < 0 || y >= f.H {
		return ""
	}
	return string(f.cells[y*f.W : (y+1)*f.W])
}

func (f *Frame) Lines() []string {
	out := make([]string, f.H)
	for y := 0; y < f.H; y++ {
		out[y] = f.Line(y)
	}
	return out
}

func (f *Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}

func (f *Frame) Copy() *Frame {
	c := &Frame{W: f.W, H: f.H, cells: make([]rune, len(f.cells))}
	copy(c.cells, f.cells)
	return c
}
