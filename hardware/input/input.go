// Abstract button input events.
package input

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/ckos/ckos/internal/types"
	"github.com/ckos/ckos/log2"
)

func Drain(ch <-chan types.InputEvent) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

type Source interface {
	Read() (types.InputEvent, error)
	String() string
}

type EventFunc func(types.InputEvent)
type sub struct {
	name string
	ch   chan<- types.InputEvent
	fun  EventFunc
	stop <-chan struct{}
}

// Dispatch fans button edges from any number of sources out to
// subscribers. Events carry the source clock tick so debounce in the
// core works the same for real and simulated input.
type Dispatch struct {
	Log     *log2.Log
	clock   types.Clock
	bus     chan types.InputEvent
	enabled uint32
	mu      sync.Mutex
	subs    map[string]*sub
	stop    <-chan struct{}
}

func NewDispatch(log *log2.Log, clock types.Clock, stop <-chan struct{}) *Dispatch {
	return &Dispatch{
		Log:     log,
		clock:   clock,
		bus:     make(chan types.InputEvent),
		enabled: 1,
		subs:    make(map[string]*sub, 8),
		stop:    stop,
	}
}

// Enable gates all sources at once. While disabled, source readers
// drop events before they reach the bus.
func (self *Dispatch) Enable(e bool) {
	v := uint32(0)
	if e {
		v = 1
	}
	atomic.StoreUint32(&self.enabled, v)
	self.Log.Infof("input enabled=%t", e)
}

func (self *Dispatch) Enabled() bool { return atomic.LoadUint32(&self.enabled) == 1 }

func (self *Dispatch) SubscribeChan(name string, substop <-chan struct{}) chan types.InputEvent {
	target := make(chan types.InputEvent)
	sub := &sub{
		name: name,
		ch:   target,
		stop: substop,
	}
	self.safeSubscribe(sub)
	return target
}

func (self *Dispatch) SubscribeFunc(name string, fun EventFunc, substop <-chan struct{}) {
	sub := &sub{
		name: name,
		fun:  fun,
		stop: substop,
	}
	self.safeSubscribe(sub)
}

func (self *Dispatch) Unsubscribe(name string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if sub, ok := self.subs[name]; ok {
		self.subClose(sub)
	} else {
		panic("code error input sub not found name=" + name)
	}
}

func (self *Dispatch) Run(sources []Source) {
	for _, source := range sources {
		go self.readSource(source)
	}

	for {
		select {
		case event := <-self.bus:
			handled := false
			self.mu.Lock()
			for _, sub := range self.subs {
				self.subFire(sub, event)
				handled = true
			}
			self.mu.Unlock()
			if !handled {
				self.Log.Errorf("input is not handled event=%s", event.String())
			}

		case <-self.stop:
			Drain(self.bus)
			return
		}
	}
}

// Emit stamps the event with the dispatch clock when the source did
// not, then publishes to all subscribers.
func (self *Dispatch) Emit(event types.InputEvent) {
	if event.TimeMs == 0 && self.clock != nil {
		event.TimeMs = self.clock.TickMs()
	}
	select {
	case self.bus <- event:
		self.Log.Debugf("input emit=%s", event.String())
	case <-self.stop:
		return
	}
}

func (self *Dispatch) subFire(sub *sub, event types.InputEvent) {
	select {
	case <-sub.stop:
		self.subClose(sub)
		return
	default:
	}

	if sub.ch == nil && sub.fun == nil {
		panic(fmt.Sprintf("input sub=%s ch=nil fun=nil", sub.name))
	}
	if sub.fun != nil {
		sub.fun(event)
	}
	if sub.ch != nil {
		select {
		case sub.ch <- event:
		case <-sub.stop:
			self.subClose(sub)
		}
	}
}

func (self *Dispatch) subClose(s *sub) {
	if s.ch != nil {
		close(s.ch)
	}
	delete(self.subs, s.name)
}

func (self *Dispatch) safeSubscribe(s *sub) {
	self.mu.Lock()
	if existing, ok := self.subs[s.name]; ok {
		select {
		case <-s.stop:
			panic("code error input subscribe already closed name=" + s.name)
		case <-existing.stop:
			self.subClose(existing)
		default:
			panic("code error input duplicate subscribe name=" + s.name)
		}
	}
	self.subs[s.name] = s
	self.mu.Unlock()
}

func (self *Dispatch) readSource(source Source) {
	tag := source.String()
	for {
		event, err := source.Read()
		if err != nil {
			err = errors.Annotatef(err, "input source=%s", tag)
			self.Log.Fatal(errors.ErrorStack(err))
			return
		}
		if !event.Button.Valid() {
			continue
		}
		if self.Enabled() {
			self.Emit(event)
		} else {
			self.Log.Debugf("input disabled, drop event=%s", event.String())
		}
	}
}
