package display

import (
	"github.com/ckos/ckos/hardware/display"
	"github.com/ckos/ckos/internal/mq"
	"github.com/ckos/ckos/log2"
)

const QueueCapacity = 16

// Dispatcher consumes display commands and paints frames. All its
// registers are private, it never reaches back into the logic task.
type Dispatcher struct {
	log     *log2.Log
	queue   *mq.Queue
	out     *display.Display
	frame   *display.Frame
	current ScreenID
	theme   ThemeID
	last    map[ScreenID]ScreenData
}

func NewDispatcher(log *log2.Log, out *display.Display) *Dispatcher {
	return &Dispatcher{
		log:     log,
		queue:   mq.New(QueueCapacity),
		out:     out,
		frame:   out.NewFrame(),
		current: ScreenWelcome,
		theme:   ThemeDefault,
		last:    make(map[ScreenID]ScreenData, int(screenCount)),
	}
}

// Send enqueues best-effort. A full queue drops the command, the next
// tick's fresher command supersedes it.
func (self *Dispatcher) Send(cmd Command) bool {
	ok := self.queue.Put(cmd)
	if !ok {
		self.log.Infof("display queue full, drop cmd kind=%d screen=%s", cmd.Kind, cmd.Screen.String())
	}
	return ok
}

// Tick drains the queue until empty, then renders exactly one screen
// from its last known data and presents the frame.
func (self *Dispatcher) Tick() {
	for {
		item, ok := self.queue.Take()
		if !ok {
			break
		}
		cmd, ok := item.(Command)
		if !ok {
			self.log.Errorf("display queue foreign item=%#v", item)
			continue
		}
		self.apply(cmd)
	}

	self.frame.Clear()
	self.render(self.frame)
	self.out.Present(self.frame)
}

func (self *Dispatcher) CurrentScreen() ScreenID { return self.current }
func (self *Dispatcher) CurrentTheme() ThemeID   { return self.theme }

func (self *Dispatcher) apply(cmd Command) {
	switch cmd.Kind {
	case CmdActivateScreen:
		self.current = cmd.Screen
		if cmd.Data != nil {
			self.last[cmd.Screen] = cmd.Data
		}

	case CmdSetTheme:
		self.theme = cmd.Theme

	case CmdUpdateAgentMood:
		data, _ := self.last[ScreenAgentInteraction].(AgentInteractionData)
		data.Mood = cmd.Mood
		self.last[ScreenAgentInteraction] = data

	case CmdUpdateLockStatus:
		data, _ := self.last[ScreenLockStatus].(LockStatusData)
		data.TimeRemainingSeconds = cmd.TimeRemainingSeconds
		self.last[ScreenLockStatus] = data

	default:
		self.log.Errorf("display unknown command kind=%d", cmd.Kind)
	}
}

func (self *Dispatcher) render(f *display.Frame) {
	switch self.current {
	case ScreenWelcome:
		renderWelcome(f)
	case ScreenTimezoneSetup:
		data, _ := self.last[ScreenTimezoneSetup].(TimezoneData)
		renderTimezoneSetup(f, data)
	case ScreenTimeSetup:
		data, _ := self.last[ScreenTimeSetup].(TimeData)
		renderTimeSetup(f, data)
	case ScreenMainMenu:
		data, _ := self.last[ScreenMainMenu].(MenuData)
		renderMenu(f, "Main Menu", data)
	case ScreenSettings:
		data, _ := self.last[ScreenSettings].(MenuData)
		renderMenu(f, "Settings", data)
	case ScreenAgentSelection:
		data, _ := self.last[ScreenAgentSelection].(AgentSelectionData)
		renderAgentSelection(f, data)
	case ScreenAgentInteraction:
		data, _ := self.last[ScreenAgentInteraction].(AgentInteractionData)
		renderAgentInteraction(f, data)
	case ScreenLockStatus:
		data, _ := self.last[ScreenLockStatus].(LockStatusData)
		renderLockStatus(f, data)
	case ScreenPinEntry:
		data, _ := self.last[ScreenPinEntry].(PinEntryData)
		renderPinEntry(f, data)
	case ScreenVerification:
		data, _ := self.last[ScreenVerification].(VerificationData)
		renderVerification(f, data)
	case ScreenError:
		data, _ := self.last[ScreenError].(ErrorData)
		renderError(f, data)
	default:
		renderUnknown(f, self.current)
	}
}
