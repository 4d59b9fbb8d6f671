package display

import (
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
)

// Devicer is the minimal character LCD surface. Write receives one
// row already translated to the device codepage.
type Devicer interface {
	Clear()
	CursorYX(y, x uint8) bool
	Write(b []byte)
}

type Config struct {
	Codepage string
	Width    int
	Height   int
}

// Display owns the presentation path: a Frame comes in, rows go out
// to the devicer in the configured codepage.
type Display struct { //nolint:maligned
	mu     sync.Mutex
	dev    Devicer
	tr     atomic.Value
	width  int
	height int
	last   *Frame
}

func New(opt *Config) (*Display, error) {
	if opt == nil {
		opt = &Config{}
	}
	w, h := opt.Width, opt.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	self := &Display{width: w, height: h}

	if opt.Codepage != "" {
		if err := self.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return self, nil
}

func (self *Display) Size() (w, h int) { return self.width, self.height }

func (self *Display) NewFrame() *Frame { return NewFrame(self.width, self.height) }

func (self *Display) SetCodepage(cp string) error {
	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	self.tr.Store(tr)
	return nil
}

func (self *Display) SetDevice(dev Devicer) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.dev = dev
}

// Present flushes the frame to the devicer row by row. The frame is
// copied so the caller may keep drawing into it.
func (self *Display) Present(f *Frame) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.last = f.Copy()
	if self.dev == nil {
		return
	}
	for y := 0; y < f.H; y++ {
		self.dev.CursorYX(uint8(y+1), 1)
		self.dev.Write(self.translate(f.Line(y)))
	}
}

// Last returns a copy of the most recently presented frame, nil
// before the first present.
func (self *Display) Last() *Frame {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.last == nil {
		return nil
	}
	return self.last.Copy()
}

func (self *Display) translate(s string) []byte {
	result := []byte(s)
	tr, ok := self.tr.Load().(charset.Translator)
	if ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			// untranslatable rune in a screen string is a programming error
			panic(err)
		}
		// translator reuses single internal buffer, make a copy
		result = append([]byte(nil), tb...)
	}
	return result
}
