// Package app is the application logic task: the owner of
// ApplicationState and the single producer of display commands.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ckos/ckos/hardware/lock"
	"github.com/ckos/ckos/hardware/sensors"
	"github.com/ckos/ckos/hardware/storage"
	"github.com/ckos/ckos/internal/display"
	"github.com/ckos/ckos/internal/mq"
	"github.com/ckos/ckos/internal/types"
	"github.com/ckos/ckos/log2"
)

type State uint8

const (
	StateWelcome State = iota
	StateTimezoneSetup
	StateTimeSetup
	StateMenu
	StateLockSetup
	StateLockActive
	StateAgentInteraction
	StateUnlockSequence
	StateSettings
	StateError
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateWelcome:
		return "welcome"
	case StateTimezoneSetup:
		return "timezone-setup"
	case StateTimeSetup:
		return "time-setup"
	case StateMenu:
		return "menu"
	case StateLockSetup:
		return "lock-setup"
	case StateLockActive:
		return "lock-active"
	case StateAgentInteraction:
		return "agent-interaction"
	case StateUnlockSequence:
		return "unlock-sequence"
	case StateSettings:
		return "settings"
	case StateError:
		return "error"
	case StateIdle:
		return "idle"
	}
	return fmt.Sprintf("invalid(%d)", uint8(s))
}

const (
	DefaultDebounceMs  = 150
	DefaultIdleTimeout = 60_000 // ms
	EventQueueCapacity = 16

	pinMinLen = 4
	pinMaxLen = 8
)

// Main menu and settings indexes with behavior attached. The rest of
// the items are informational placeholders.
const (
	menuIndexAgentLock        = 0
	menuIndexEmergencyRelease = 4
	menuIndexSettings         = 6
	menuIndexAbout            = 7
	settingsIndexAbout        = 14
)

var defaultMenuItems = []string{
	"Agent Lock",
	"Custom Lock",
	"Keyholder Lock",
	"Game Mode",
	"Emergency Release",
	"Lock History",
	"Settings",
	"About Device",
}

var defaultSettingsItems = []string{
	"Display Brightness",
	"Display Contrast",
	"Display Sleep Timeout",
	"Sound Settings",
	"Vibration Settings",
	"WiFi Configuration",
	"Bluetooth Settings",
	"Timezone Settings",
	"Language Settings",
	"Power Management",
	"Security Settings",
	"Factory Reset",
	"Firmware Update",
	"Diagnostics",
	"About Device",
}

type Config struct {
	DebounceMs    uint32
	IdleTimeoutMs uint32
	DeviceSerial  string
	MenuItems     []string
	SettingsItems []string
	MaxVisible    int

	// PersistRoot enables snapshot storage under this directory.
	// PersistMem keeps snapshots in process memory instead, for the
	// simulator and tests.
	PersistRoot string
	PersistMem  bool
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.DebounceMs == 0 {
		out.DebounceMs = DefaultDebounceMs
	}
	if out.IdleTimeoutMs == 0 {
		out.IdleTimeoutMs = DefaultIdleTimeout
	}
	if len(out.MenuItems) == 0 {
		out.MenuItems = defaultMenuItems
	}
	if len(out.SettingsItems) == 0 {
		out.SettingsItems = defaultSettingsItems
	}
	if out.MaxVisible == 0 {
		out.MaxVisible = 4
	}
	return out
}

// Logic holds ApplicationState. Tick is the only mutator, events
// arrive through the internal queue and are consumed one per tick.
type Logic struct { //nolint:maligned
	log      *log2.Log
	cfg      Config
	clock    types.Clock
	disp     *display.Dispatcher
	actuator lock.Actuator
	sensors  sensors.Reader
	persist  *storage.Persist
	events   *mq.Queue

	state     State
	prevState State

	firstBoot          bool
	timezoneConfigured bool
	timeConfigured     bool

	utcSeconds  uint64
	offsetHours int8
	dstActive   bool

	menu     cursor
	settings cursor

	agent agentState
	lock  lockState
	pin   pinState
	snap  *snapshot

	lastButton    types.Button
	lastButtonMs  uint32
	lastInputMs   uint32
	lastRemaining uint32
	lastTickMs    uint32
	errorMessage  string
}

func New(log *log2.Log, cfg *Config, clock types.Clock, disp *display.Dispatcher,
	actuator lock.Actuator, sens sensors.Reader) *Logic {

	self := &Logic{
		log:      log,
		cfg:      cfg.withDefaults(),
		clock:    clock,
		disp:     disp,
		actuator: actuator,
		sensors:  sens,
		events:   mq.New(EventQueueCapacity),

		state:     StateWelcome,
		prevState: StateWelcome,
		firstBoot: true,
	}
	self.menu = cursor{count: len(self.cfg.MenuItems), maxVisible: self.cfg.MaxVisible}
	self.settings = cursor{count: len(self.cfg.SettingsItems), maxVisible: self.cfg.MaxVisible}
	self.agent.init()
	self.utcSeconds = clock.UTCSeconds()
	self.initPersist()

	self.disp.Send(display.ActivateScreen(display.ScreenWelcome, nil))
	return self
}

func (self *Logic) initPersist() {
	switch {
	case self.cfg.PersistMem:
		p := new(storage.Persist)
		p.InitMem("app", self.persistTarget(), self.log)
		self.persist = p

	case self.cfg.PersistRoot != "":
		p := new(storage.Persist)
		if err := p.Init("app", self.persistTarget(), self.cfg.PersistRoot, true, self.log); err != nil {
			self.log.Errorf("app persist init err=%v", err)
			return
		}
		self.persist = p

	default:
		return
	}

	if err := self.restore(); err != nil {
		self.log.Errorf("app restore err=%v", err)
	}
}

func (self *Logic) State() State { return self.state }

// Locked reports the persistent lock session flag, not the actuator.
func (self *Logic) Locked() bool { return self.lock.engaged }

// Accept is the producer side of the event queue, called from the
// hardware task. Best-effort: a full queue drops the press.
func (self *Logic) Accept(ev types.InputEvent) bool {
	ok := self.events.Put(ev)
	if !ok {
		self.log.Infof("app event queue full, drop %s", ev.String())
	}
	return ok
}

// Tick runs one application logic iteration: advance time, consume at
// most one button event, then run per-second lock bookkeeping.
func (self *Logic) Tick(ctx context.Context) error {
	_ = ctx
	item, ok := self.events.Take()
	self.tick(item, ok)
	return nil
}

// TickWait is Tick with a blocking wait on the event queue, bounded
// by timeout. The goroutine-per-task runner uses it so a press wakes
// the logic task instead of waiting out the cadence sleep.
func (self *Logic) TickWait(ctx context.Context, timeout time.Duration) error {
	_ = ctx
	item, ok := self.events.TakeWait(timeout)
	self.tick(item, ok)
	return nil
}

func (self *Logic) tick(item interface{}, ok bool) {
	now := self.clock.TickMs()
	self.lastTickMs = now

	if utc := self.clock.UTCSeconds(); utc > self.utcSeconds {
		self.utcSeconds = utc
	}

	if ok {
		if ev, isEvent := item.(types.InputEvent); isEvent {
			self.processEvent(ev)
		}
	} else if self.state != StateIdle && self.state != StateWelcome &&
		self.cfg.IdleTimeoutMs > 0 &&
		now-self.lastInputMs >= self.cfg.IdleTimeoutMs {
		self.changeState(StateIdle)
	}

	self.tickLock()
}

// processEvent applies debounce and routes one press to the current
// state handler. Malformed events are dropped without a state change.
func (self *Logic) processEvent(ev types.InputEvent) {
	if !ev.Pressed || !ev.Button.Valid() {
		return
	}
	if ev.Button == self.lastButton && ev.TimeMs-self.lastButtonMs < self.cfg.DebounceMs {
		self.log.Debugf("app debounce drop %s", ev.String())
		return
	}
	self.lastButton = ev.Button
	self.lastButtonMs = ev.TimeMs
	self.lastInputMs = self.lastTickMs

	self.log.Debugf("app button=%s state=%s", ev.Button.String(), self.state.String())

	switch self.state {
	case StateWelcome:
		self.onWelcome(ev.Button)
	case StateTimezoneSetup:
		self.onTimezoneSetup(ev.Button)
	case StateTimeSetup:
		self.onTimeSetup(ev.Button)
	case StateMenu:
		self.onMenu(ev.Button)
	case StateSettings:
		self.onSettings(ev.Button)
	case StateLockSetup:
		self.onLockSetup(ev.Button)
	case StateLockActive:
		self.onLockActive(ev.Button)
	case StateAgentInteraction:
		self.onAgentInteraction(ev.Button)
	case StateUnlockSequence:
		self.onUnlockSequence(ev.Button)
	case StateError:
		self.onError(ev.Button)
	case StateIdle:
		// wake only, the press is consumed
		self.changeState(self.prevState)
	}
}

// changeState is a no-op for the current state. Every entered state
// re-issues its screen with freshly computed data.
func (self *Logic) changeState(next State) {
	if next == self.state {
		return
	}
	self.log.Infof("app state %s -> %s", self.state.String(), next.String())
	self.prevState = self.state
	self.state = next
	self.enterState(next)
}

func (self *Logic) enterState(s State) {
	switch s {
	case StateWelcome:
		self.disp.Send(display.ActivateScreen(display.ScreenWelcome, nil))

	case StateTimezoneSetup:
		self.sendTimezoneScreen()

	case StateTimeSetup:
		self.disp.Send(display.ActivateScreen(display.ScreenTimeSetup,
			display.TimeData{TimeString: self.localTimeString()}))

	case StateMenu:
		self.menu.reset()
		self.sendMenuScreen()

	case StateSettings:
		self.settings.reset()
		self.sendSettingsScreen()

	case StateLockSetup:
		self.sendAgentSelectionScreen()

	case StateLockActive:
		self.sendLockStatusScreen()

	case StateAgentInteraction:
		self.sendAgentInteractionScreen()

	case StateUnlockSequence:
		self.pin.reset()
		self.sendPinScreen()

	case StateError:
		self.disp.Send(display.ActivateScreen(display.ScreenError,
			display.ErrorData{Message: self.errorMessage}))

	case StateIdle:
		// keep the last frame, display task dims on its own
	}
}

// Fail moves the machine to the error screen. Any button restarts
// into Welcome.
func (self *Logic) Fail(msg string) {
	self.errorMessage = msg
	self.log.Errorf("app fail: %s", msg)
	self.changeState(StateError)
}

func (self *Logic) sendTimezoneScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenTimezoneSetup,
		display.TimezoneData{OffsetHours: self.offsetHours, DstActive: self.dstActive}))
}

func (self *Logic) sendMenuScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenMainMenu, display.MenuData{
		Items:        self.cfg.MenuItems,
		Selection:    self.menu.selection,
		VisibleStart: self.menu.visibleStart,
		MaxVisible:   self.menu.maxVisible,
	}))
}

func (self *Logic) sendSettingsScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenSettings, display.MenuData{
		Title:        "Settings",
		Items:        self.cfg.SettingsItems,
		Selection:    self.settings.selection,
		VisibleStart: self.settings.visibleStart,
		MaxVisible:   self.settings.maxVisible,
	}))
}

func (self *Logic) sendVerificationScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenVerification, display.VerificationData{
		DeviceSerial: self.cfg.DeviceSerial,
		UTCSeconds:   self.utcSeconds,
	}))
}

func (self *Logic) battery() uint8 {
	if self.sensors == nil {
		return 0
	}
	r, err := self.sensors.Read()
	if err != nil {
		self.log.Errorf("app sensors err=%v", err)
		return 0
	}
	return r.BatteryPercent
}
