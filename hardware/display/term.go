package display

import (
	"fmt"
	"io"
	"sync"
)

// TermDevicer paints the frame into a fixed region of an ANSI
// terminal, used by the simulator frontend.
type TermDevicer struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Devicer = new(TermDevicer)

func NewTermDevicer(w io.Writer) *TermDevicer {
	return &TermDevicer{w: w}
}

func (self *TermDevicer) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	fmt.Fprint(self.w, "\x1b[2J")
}

func (self *TermDevicer) CursorYX(y, x uint8) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	fmt.Fprintf(self.w, "\x1b[%d;%dH", y, x)
	return true
}

func (self *TermDevicer) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.w.Write(b) //nolint:errcheck
}
