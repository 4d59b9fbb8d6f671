package app

import (
	"github.com/ckos/ckos/helpers/atomic_float"
	"github.com/ckos/ckos/internal/display"
)

type Agent uint8

const (
	AgentRookie Agent = iota
	AgentVeteran
	AgentWarden
	agentCount
)

type agentProfile struct {
	name            string
	theme           display.ThemeID
	durationSeconds uint32
	defaultMood     display.Mood
}

var agentProfiles = [agentCount]agentProfile{
	AgentRookie: {
		name:            "Rookie",
		theme:           display.ThemeAgentRookie,
		durationSeconds: 1 * 3600,
		defaultMood:     display.Mood{Affection: 0.9, Strictness: 0.3, Satisfaction: 0.7, Trust: 0.5},
	},
	AgentVeteran: {
		name:            "Veteran",
		theme:           display.ThemeAgentVeteran,
		durationSeconds: 24 * 3600,
		defaultMood:     display.Mood{Affection: 0.5, Strictness: 0.6, Satisfaction: 0.5, Trust: 0.5},
	},
	AgentWarden: {
		name:            "Warden",
		theme:           display.ThemeAgentWarden,
		durationSeconds: 7 * 24 * 3600,
		defaultMood:     display.Mood{Affection: 0.2, Strictness: 0.9, Satisfaction: 0.4, Trust: 0.3},
	},
}

func (a Agent) valid() bool    { return a < agentCount }
func (a Agent) String() string { return agentProfiles[a].name }

func agentNames() []string {
	out := make([]string, agentCount)
	for i := range agentProfiles {
		out[i] = agentProfiles[i].name
	}
	return out
}

var interactionOptions = []string{
	"Compliment",
	"Ask for time",
	"Report in",
}

// agentState is the mood vector plus the roster and dialog cursors.
// Mood components live in atomic floats so the display task may read
// them for theme hints without entering the logic task.
type agentState struct {
	selected  Agent
	roster    int // selection on the agent selection screen
	dialog    int // selection on the interaction screen
	dialogMsg string

	affection    atomic_float.F32
	strictness   atomic_float.F32
	satisfaction atomic_float.F32
	trust        atomic_float.F32
}

func (a *agentState) init() {
	a.selected = AgentRookie
	a.setMood(agentProfiles[AgentRookie].defaultMood)
	a.dialogMsg = "Reporting for duty."
}

func (a *agentState) setMood(m display.Mood) {
	a.affection.Store(m.Affection)
	a.strictness.Store(m.Strictness)
	a.satisfaction.Store(m.Satisfaction)
	a.trust.Store(m.Trust)
}

func (a *agentState) mood() display.Mood {
	return display.Mood{
		Affection:    a.affection.Load(),
		Strictness:   a.strictness.Load(),
		Satisfaction: a.satisfaction.Load(),
		Trust:        a.trust.Load(),
	}
}

// lockState is the persistent lock session.
type lockState struct {
	engaged         bool
	agent           Agent
	startUTC        uint64
	durationSeconds uint32
}

func (l *lockState) remaining(utc uint64) uint32 {
	if !l.engaged || utc < l.startUTC {
		return 0
	}
	elapsed := utc - l.startUTC
	if elapsed >= uint64(l.durationSeconds) {
		return 0
	}
	return l.durationSeconds - uint32(elapsed)
}

func (l *lockState) sessionSeconds(utc uint64) uint32 {
	if !l.engaged || utc < l.startUTC {
		return 0
	}
	return uint32(utc - l.startUTC)
}

// pinState is the unlock sequence entry buffer plus the pad cursor.
// The pad has 12 keys: digits, delete, accept.
type pinState struct {
	digits []byte
	cursor int
	show   bool
}

const (
	padKeyDelete = 10
	padKeyAccept = 11
	padKeyCount  = 12
)

var padKeys = [padKeyCount]byte{'1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '<', '!'}

func (p *pinState) reset() {
	p.digits = p.digits[:0]
	p.cursor = 0
	p.show = false
}

func (p *pinState) left() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *pinState) right() {
	if p.cursor < padKeyCount-1 {
		p.cursor++
	}
}

func (p *pinState) press() (key byte) {
	key = padKeys[p.cursor]
	if key >= '0' && key <= '9' && len(p.digits) < pinMaxLen {
		p.digits = append(p.digits, key)
	}
	return key
}

func (p *pinState) delete() bool {
	if len(p.digits) == 0 {
		return false
	}
	p.digits = p.digits[:len(p.digits)-1]
	return true
}

func (p *pinState) valid() bool {
	return len(p.digits) >= pinMinLen && len(p.digits) <= pinMaxLen
}
