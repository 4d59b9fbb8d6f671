package display

import (
	"strings"
	"sync"
)

func NewMockDisplay(opt *Config) (*Display, *MockDevicer) {
	dev := new(MockDevicer)
	d, err := New(opt)
	if err != nil {
		panic(err)
	}
	d.SetDevice(dev)
	return d, dev
}

// MockDevicer records rows for assertions in tests.
type MockDevicer struct {
	mu     sync.Mutex
	row    uint8
	rows   map[uint8]string
	clears int
}

func (self *MockDevicer) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.rows = nil
	self.clears++
}

func (self *MockDevicer) CursorYX(y, x uint8) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.row = y
	return true
}

func (self *MockDevicer) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.rows == nil {
		self.rows = make(map[uint8]string)
	}
	self.rows[self.row] = string(b)
}

func (self *MockDevicer) Row(y uint8) string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.rows[y]
}

func (self *MockDevicer) String() string {
	self.mu.Lock()
	defer self.mu.Unlock()
	lines := make([]string, 0, len(self.rows))
	for y := uint8(1); int(y) <= len(self.rows); y++ {
		lines = append(lines, self.rows[y])
	}
	return strings.Join(lines, "\n")
}
