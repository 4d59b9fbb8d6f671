package app

import (
	"github.com/ckos/ckos/internal/display"
	"github.com/ckos/ckos/internal/types"
)

func (self *Logic) onWelcome(b types.Button) {
	_ = b // any button
	if self.firstBoot {
		self.changeState(StateTimezoneSetup)
	} else {
		self.changeState(StateMenu)
	}
}

func (self *Logic) onTimezoneSetup(b types.Button) {
	switch b {
	case types.ButtonLeft:
		if self.offsetHours > -12 {
			self.offsetHours--
		}
		self.sendTimezoneScreen()

	case types.ButtonRight:
		if self.offsetHours < 12 {
			self.offsetHours++
		}
		self.sendTimezoneScreen()

	case types.ButtonUp, types.ButtonDown:
		self.dstActive = !self.dstActive
		self.sendTimezoneScreen()

	case types.ButtonA, types.ButtonB:
		if b == types.ButtonA {
			self.timezoneConfigured = true
		}
		self.store()
		if self.firstBoot && !self.timeConfigured {
			self.changeState(StateTimeSetup)
		} else {
			self.changeState(StateMenu)
		}
	}
}

func (self *Logic) onTimeSetup(b types.Button) {
	switch b {
	case types.ButtonA:
		self.timeConfigured = true
		self.firstBoot = false
		self.store()
		self.changeState(StateMenu)

	case types.ButtonB:
		// skip, keep system time
		self.firstBoot = false
		self.store()
		self.changeState(StateMenu)
	}
}

func (self *Logic) onMenu(b types.Button) {
	switch b {
	case types.ButtonUp:
		self.menu.up()
		self.sendMenuScreen()

	case types.ButtonDown:
		self.menu.down()
		self.sendMenuScreen()

	case types.ButtonA:
		switch self.menu.selection {
		case menuIndexSettings:
			self.changeState(StateSettings)
		case menuIndexAgentLock:
			if self.lock.engaged {
				self.changeState(StateLockActive)
			} else {
				self.changeState(StateLockSetup)
			}
		case menuIndexEmergencyRelease:
			if self.lock.engaged {
				self.changeState(StateUnlockSequence)
			} else {
				self.log.Infof("app emergency release: not locked")
			}
		case menuIndexAbout:
			self.sendVerificationScreen()
		default:
			self.log.Infof("app feature not implemented: %s", self.cfg.MenuItems[self.menu.selection])
		}

	case types.ButtonB:
		self.changeState(StateWelcome)
	}
}

func (self *Logic) onSettings(b types.Button) {
	switch b {
	case types.ButtonUp:
		self.settings.up()
		self.sendSettingsScreen()

	case types.ButtonDown:
		self.settings.down()
		self.sendSettingsScreen()

	case types.ButtonA:
		if self.settings.selection == settingsIndexAbout {
			self.sendVerificationScreen()
		}

	case types.ButtonB:
		self.changeState(StateMenu)
	}
}

func (self *Logic) onLockSetup(b types.Button) {
	switch b {
	case types.ButtonUp:
		if self.agent.roster > 0 {
			self.agent.roster--
		}
		self.sendAgentSelectionScreen()

	case types.ButtonDown:
		if self.agent.roster < int(agentCount)-1 {
			self.agent.roster++
		}
		self.sendAgentSelectionScreen()

	case types.ButtonA:
		self.engageLock(Agent(self.agent.roster))

	case types.ButtonB:
		self.changeState(StateMenu)
	}
}

func (self *Logic) engageLock(agent Agent) {
	if !agent.valid() {
		return
	}
	if err := self.actuator.Engage(); err != nil {
		self.Fail("lock actuator engage failed")
		return
	}
	profile := agentProfiles[agent]
	self.agent.selected = agent
	self.agent.setMood(profile.defaultMood)
	self.agent.dialogMsg = "Reporting for duty."
	self.lock = lockState{
		engaged:         true,
		agent:           agent,
		startUTC:        self.utcSeconds,
		durationSeconds: profile.durationSeconds,
	}
	self.lastRemaining = profile.durationSeconds
	self.store()
	self.disp.Send(display.SetTheme(profile.theme))
	self.changeState(StateLockActive)
}

func (self *Logic) onLockActive(b types.Button) {
	switch b {
	case types.ButtonA:
		self.changeState(StateAgentInteraction)

	case types.ButtonDown:
		self.changeState(StateUnlockSequence)

	case types.ButtonUp:
		self.sendLockStatusScreen()

	case types.ButtonB:
		if !self.lock.engaged {
			self.changeState(StateMenu)
		}
		// locked: no way out through B
	}
}

func (self *Logic) onAgentInteraction(b types.Button) {
	switch b {
	case types.ButtonUp:
		if self.agent.dialog > 0 {
			self.agent.dialog--
		}
		self.sendAgentInteractionScreen()

	case types.ButtonDown:
		if self.agent.dialog < len(interactionOptions)-1 {
			self.agent.dialog++
		}
		self.sendAgentInteractionScreen()

	case types.ButtonA:
		self.interact(self.agent.dialog)

	case types.ButtonB:
		self.changeState(StateLockActive)
	}
}

// interact applies one dialog option to the mood vector, every
// component stays clamped to [0,1].
func (self *Logic) interact(option int) {
	a := &self.agent
	switch option {
	case 0: // Compliment
		a.affection.AddClamp(0.05, 0, 1)
		a.satisfaction.AddClamp(0.05, 0, 1)
		a.dialogMsg = "Aw, thank you."

	case 1: // Ask for time
		if a.trust.Load() >= 0.5 {
			a.trust.AddClamp(-0.05, 0, 1)
			if self.lock.durationSeconds > 300 {
				self.lock.durationSeconds -= 300
			} else {
				self.lock.durationSeconds = 0
			}
			a.dialogMsg = "Fine. A little."
		} else {
			a.strictness.AddClamp(0.05, 0, 1)
			a.dialogMsg = "No."
		}

	case 2: // Report in
		a.trust.AddClamp(0.05, 0, 1)
		a.dialogMsg = "Noted."

	default:
		return
	}

	self.store()
	self.disp.Send(display.UpdateAgentMood(a.mood()))
	self.sendAgentInteractionScreen()
}

func (self *Logic) onUnlockSequence(b types.Button) {
	switch b {
	case types.ButtonLeft:
		self.pin.left()
		self.sendPinScreen()

	case types.ButtonRight:
		self.pin.right()
		self.sendPinScreen()

	case types.ButtonA:
		switch key := self.pin.press(); key {
		case '<':
			self.pin.delete()
		case '!':
			if self.pin.valid() {
				self.releaseLock()
				return
			}
			self.log.Infof("app pin invalid length=%d", len(self.pin.digits))
		}
		self.sendPinScreen()

	case types.ButtonB:
		if !self.pin.delete() {
			self.changeState(StateLockActive)
			return
		}
		self.sendPinScreen()
	}
}

func (self *Logic) releaseLock() {
	if err := self.actuator.Release(); err != nil {
		self.Fail("lock actuator release failed")
		return
	}
	self.lock.engaged = false
	self.lastRemaining = 0
	self.store()
	self.disp.Send(display.UpdateLockStatus(0))
	self.disp.Send(display.SetTheme(display.ThemeDefault))
	self.changeState(StateMenu)
}

func (self *Logic) onError(b types.Button) {
	_ = b // any button restarts the UI
	self.errorMessage = ""
	self.changeState(StateWelcome)
}

// tickLock publishes the countdown when the displayed second changes.
func (self *Logic) tickLock() {
	if !self.lock.engaged {
		return
	}
	rem := self.lock.remaining(self.utcSeconds)
	if rem != self.lastRemaining {
		self.lastRemaining = rem
		self.disp.Send(display.UpdateLockStatus(rem))
	}
}

func (self *Logic) sendAgentSelectionScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenAgentSelection, display.AgentSelectionData{
		Agents:    agentNames(),
		Selection: self.agent.roster,
	}))
}

func (self *Logic) sendAgentInteractionScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenAgentInteraction, display.AgentInteractionData{
		AgentName: self.agent.selected.String(),
		Dialog:    self.agent.dialogMsg,
		Options:   interactionOptions,
		Selection: self.agent.dialog,
		Mood:      self.agent.mood(),
	}))
}

func (self *Logic) sendLockStatusScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenLockStatus, display.LockStatusData{
		Locked:               self.lock.engaged,
		AgentName:            self.agent.selected.String(),
		TimeRemainingSeconds: self.lock.remaining(self.utcSeconds),
		SessionTimeSeconds:   self.lock.sessionSeconds(self.utcSeconds),
		BatteryPercent:       self.battery(),
	}))
}

func (self *Logic) sendPinScreen() {
	self.disp.Send(display.ActivateScreen(display.ScreenPinEntry, display.PinEntryData{
		Digits:     string(self.pin.digits),
		Cursor:     self.pin.cursor,
		ShowDigits: self.pin.show,
	}))
}
