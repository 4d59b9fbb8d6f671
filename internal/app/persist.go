package app

import (
	"encoding/binary"
	"math"

	"github.com/juju/errors"

	"github.com/ckos/ckos/internal/display"
)

// snapshot is the persisted slice of ApplicationState: setup flags,
// timezone, lock session, agent mood. Fixed-width big endian layout
// behind a magic+version header.
type snapshot struct {
	loaded bool // set by a successful unmarshal

	firstBoot          bool
	timezoneConfigured bool
	timeConfigured     bool
	dstActive          bool
	offsetHours        int8

	lockEngaged     bool
	lockAgent       uint8
	lockStartUTC    uint64
	lockDurationSec uint32

	selectedAgent uint8
	mood          display.Mood
}

const (
	snapshotMagic   = "CKS1"
	snapshotLen     = 4 + 1 + 1 + 1 + 8 + 4 + 1 + 16
	flagFirstBoot   = 1 << 0
	flagTzConf      = 1 << 1
	flagTimeConf    = 1 << 2
	flagDst         = 1 << 3
	flagLockEngaged = 1 << 4
)

func (s *snapshot) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, snapshotLen)
	b = append(b, snapshotMagic...)

	var flags byte
	if s.firstBoot {
		flags |= flagFirstBoot
	}
	if s.timezoneConfigured {
		flags |= flagTzConf
	}
	if s.timeConfigured {
		flags |= flagTimeConf
	}
	if s.dstActive {
		flags |= flagDst
	}
	if s.lockEngaged {
		flags |= flagLockEngaged
	}
	b = append(b, flags, byte(s.offsetHours), s.lockAgent)

	var u64 [8]byte
	binary.BigEndian.PutUint64(u64[:], s.lockStartUTC)
	b = append(b, u64[:]...)
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], s.lockDurationSec)
	b = append(b, u32[:]...)
	b = append(b, s.selectedAgent)

	for _, f := range [4]float32{s.mood.Affection, s.mood.Strictness, s.mood.Satisfaction, s.mood.Trust} {
		binary.BigEndian.PutUint32(u32[:], math.Float32bits(f))
		b = append(b, u32[:]...)
	}
	return b, nil
}

func (s *snapshot) UnmarshalBinary(b []byte) error {
	if len(b) < snapshotLen {
		return errors.Errorf("app snapshot short len=%d", len(b))
	}
	if string(b[:4]) != snapshotMagic {
		return errors.Errorf("app snapshot bad magic %x", b[:4])
	}
	flags := b[4]
	s.firstBoot = flags&flagFirstBoot != 0
	s.timezoneConfigured = flags&flagTzConf != 0
	s.timeConfigured = flags&flagTimeConf != 0
	s.dstActive = flags&flagDst != 0
	s.lockEngaged = flags&flagLockEngaged != 0
	s.offsetHours = int8(b[5])
	s.lockAgent = b[6]
	s.lockStartUTC = binary.BigEndian.Uint64(b[7:])
	s.lockDurationSec = binary.BigEndian.Uint32(b[15:])
	s.selectedAgent = b[19]

	moods := [4]*float32{&s.mood.Affection, &s.mood.Strictness, &s.mood.Satisfaction, &s.mood.Trust}
	for i, p := range moods {
		*p = math.Float32frombits(binary.BigEndian.Uint32(b[20+i*4:]))
	}
	s.loaded = true
	return nil
}

// store pushes the current state into persistent storage. Failures
// are logged only, the device keeps running.
func (self *Logic) store() {
	if self.persist == nil {
		return
	}
	snap := self.persistTarget()
	snap.firstBoot = self.firstBoot
	snap.timezoneConfigured = self.timezoneConfigured
	snap.timeConfigured = self.timeConfigured
	snap.dstActive = self.dstActive
	snap.offsetHours = self.offsetHours
	snap.lockEngaged = self.lock.engaged
	snap.lockAgent = uint8(self.lock.agent)
	snap.lockStartUTC = self.lock.startUTC
	snap.lockDurationSec = self.lock.durationSeconds
	snap.selectedAgent = uint8(self.agent.selected)
	snap.mood = self.agent.mood()

	if err := self.persist.Store(); err != nil {
		self.log.Errorf("app persist store err=%v", err)
	}
}

func (self *Logic) restore() error {
	snap := self.persistTarget()
	if err := self.persist.Load(); err != nil {
		return errors.Trace(err)
	}
	if !snap.loaded {
		// nothing stored yet
		return nil
	}
	self.firstBoot = snap.firstBoot
	self.timezoneConfigured = snap.timezoneConfigured
	self.timeConfigured = snap.timeConfigured
	self.dstActive = snap.dstActive
	self.offsetHours = snap.offsetHours
	self.lock = lockState{
		engaged:         snap.lockEngaged,
		agent:           Agent(snap.lockAgent),
		startUTC:        snap.lockStartUTC,
		durationSeconds: snap.lockDurationSec,
	}
	if a := Agent(snap.selectedAgent); a.valid() {
		self.agent.selected = a
	}
	self.agent.setMood(snap.mood)
	if self.lock.engaged {
		self.disp.Send(display.SetTheme(agentProfiles[self.agent.selected].theme))
	}
	return nil
}

func (self *Logic) persistTarget() *snapshot {
	if self.snap == nil {
		self.snap = new(snapshot)
	}
	return self.snap
}
