// Package display runs the display task: a command queue in, rendered
// frames out. It owns the current screen register and the last known
// data per screen, nothing here writes back into the logic task.
package display

import (
	"fmt"
)

type ScreenID uint8

const (
	ScreenWelcome ScreenID = iota
	ScreenTimezoneSetup
	ScreenTimeSetup
	ScreenMainMenu
	ScreenAgentSelection
	ScreenAgentInteraction
	ScreenLockStatus
	ScreenPinEntry
	ScreenVerification
	ScreenSettings
	ScreenError
	screenCount
)

func (s ScreenID) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenTimezoneSetup:
		return "timezone-setup"
	case ScreenTimeSetup:
		return "time-setup"
	case ScreenMainMenu:
		return "main-menu"
	case ScreenAgentSelection:
		return "agent-selection"
	case ScreenAgentInteraction:
		return "agent-interaction"
	case ScreenLockStatus:
		return "lock-status"
	case ScreenPinEntry:
		return "pin-entry"
	case ScreenVerification:
		return "verification"
	case ScreenSettings:
		return "settings"
	case ScreenError:
		return "error"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

type ThemeID uint8

const (
	ThemeDefault ThemeID = iota
	ThemeAgentRookie
	ThemeAgentVeteran
	ThemeAgentWarden
)

type CommandKind uint8

const (
	CmdInvalid CommandKind = iota
	CmdActivateScreen
	CmdSetTheme
	CmdUpdateAgentMood
	CmdUpdateLockStatus
)

// Mood is the agent disposition vector, each component in [0,1].
type Mood struct {
	Affection    float32
	Strictness   float32
	Satisfaction float32
	Trust        float32
}

// Command is one display task instruction. It is a value type, the
// producer's Data snapshot is copied into the queue with it.
type Command struct {
	Kind   CommandKind
	Screen ScreenID   // CmdActivateScreen
	Data   ScreenData // CmdActivateScreen, may be nil
	Theme  ThemeID    // CmdSetTheme
	Mood   Mood       // CmdUpdateAgentMood

	// CmdUpdateLockStatus
	TimeRemainingSeconds uint32
}

// ScreenData variants are plain value records, one per screen that
// takes data. They are stored by value in the dispatcher registers.
type ScreenData interface {
	screenData()
}

// MenuData serves both the main menu and the settings list.
type MenuData struct {
	Title        string
	Items        []string
	Selection    int
	VisibleStart int
	MaxVisible   int
}

type TimezoneData struct {
	OffsetHours int8
	DstActive   bool
}

type TimeData struct {
	TimeString string
}

type AgentSelectionData struct {
	Agents    []string
	Selection int
}

type AgentInteractionData struct {
	AgentName string
	Dialog    string
	Options   []string
	Selection int
	Mood      Mood
}

type LockStatusData struct {
	Locked               bool
	AgentName            string
	TimeRemainingSeconds uint32
	SessionTimeSeconds   uint32
	BatteryPercent       uint8
}

type PinEntryData struct {
	Digits     string
	Cursor     int
	ShowDigits bool
}

type VerificationData struct {
	DeviceSerial string
	UTCSeconds   uint64
}

type ErrorData struct {
	Message string
}

func (MenuData) screenData()             {}
func (TimezoneData) screenData()         {}
func (TimeData) screenData()             {}
func (AgentSelectionData) screenData()   {}
func (AgentInteractionData) screenData() {}
func (LockStatusData) screenData()       {}
func (PinEntryData) screenData()         {}
func (VerificationData) screenData()     {}
func (ErrorData) screenData()            {}

func ActivateScreen(screen ScreenID, data ScreenData) Command {
	return Command{Kind: CmdActivateScreen, Screen: screen, Data: data}
}

func SetTheme(theme ThemeID) Command {
	return Command{Kind: CmdSetTheme, Theme: theme}
}

func UpdateAgentMood(m Mood) Command {
	return Command{Kind: CmdUpdateAgentMood, Mood: m}
}

func UpdateLockStatus(remainingSeconds uint32) Command {
	return Command{Kind: CmdUpdateLockStatus, TimeRemainingSeconds: remainingSeconds}
}
