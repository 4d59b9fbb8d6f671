package display

import (
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/ckos/ckos/hardware/display"
	"github.com/ckos/ckos/helpers"
)

// Render routines tolerate zero-value data, a screen activated before
// its first data command still draws a safe default.

func renderTitleBar(f *display.Frame, title string) {
	f.TextCentered(0, title)
	f.HLine(1, '-')
}

func renderInputHints(f *display.Frame, hints string) {
	f.Text(0, f.H-1, hints)
}

func renderWelcome(f *display.Frame) {
	f.TextCentered(2, "CKOS")
	f.TextCentered(4, "Chastity Key OS")
	f.TextCentered(5, "Version 2.0")
	f.HLine(7, '-')
	f.TextCentered(9, "Welcome")
	f.TextCentered(10, "Press any key")
	renderInputHints(f, "System Ready")
}

func renderTimezoneSetup(f *display.Frame, data TimezoneData) {
	renderTitleBar(f, "Timezone")
	f.TextCentered(4, fmt.Sprintf("UTC%+d", data.OffsetHours))
	if data.DstActive {
		f.TextCentered(6, "DST: ON")
	} else {
		f.TextCentered(6, "DST: OFF")
	}
	renderInputHints(f, "<>: Zone ^v: DST A: Next")
}

func renderTimeSetup(f *display.Frame, data TimeData) {
	renderTitleBar(f, "Time Setup")
	s := data.TimeString
	if s == "" {
		s = "00:00:00"
	}
	f.TextCentered(4, s)
	f.TextCentered(6, "Timezone applied")
	renderInputHints(f, "A: Continue")
}

func renderMenu(f *display.Frame, title string, data MenuData) {
	if data.Title != "" {
		title = data.Title
	}
	renderTitleBar(f, title)
	if len(data.Items) == 0 || data.Selection >= len(data.Items) {
		f.TextCentered(f.H/2, "No menu data")
		return
	}

	y := 3
	end := data.VisibleStart + data.MaxVisible
	if end > len(data.Items) {
		end = len(data.Items)
	}
	for i := data.VisibleStart; i < end; i++ {
		if i == data.Selection {
			f.Text(0, y, ">")
		}
		f.Text(2, y, data.Items[i])
		y++
	}
	f.TextCentered(f.H-3, fmt.Sprintf("%d/%d", data.Selection+1, len(data.Items)))
	renderInputHints(f, "^v: Move A: Select B: Back")
}

func renderAgentSelection(f *display.Frame, data AgentSelectionData) {
	renderTitleBar(f, "Select Agent")
	if len(data.Agents) == 0 {
		f.TextCentered(f.H/2, "No agents")
		return
	}
	y := 3
	for i, name := range data.Agents {
		if i == data.Selection {
			f.Text(0, y, ">")
		}
		f.Text(2, y, name)
		y++
	}
	renderInputHints(f, "^v: Move A: Lock B: Back")
}

func renderAgentInteraction(f *display.Frame, data AgentInteractionData) {
	name := data.AgentName
	if name == "" {
		name = "Agent"
	}
	renderTitleBar(f, name)
	f.Text(0, 2, data.Dialog)
	y := 4
	for i, opt := range data.Options {
		if i == data.Selection {
			f.Text(0, y, ">")
		}
		f.Text(2, y, opt)
		y++
	}
	m := data.Mood
	f.Text(0, f.H-4, fmt.Sprintf("aff %.1f str %.1f", m.Affection, m.Strictness))
	f.Text(0, f.H-3, fmt.Sprintf("sat %.1f tru %.1f", m.Satisfaction, m.Trust))
	renderInputHints(f, "^v: Move A: Say B: Back")
}

func renderLockStatus(f *display.Frame, data LockStatusData) {
	renderTitleBar(f, "Lock Status")
	if data.Locked {
		f.TextCentered(3, "LOCKED")
	} else {
		f.TextCentered(3, "UNLOCKED")
	}
	if data.AgentName != "" {
		f.TextCentered(4, "Agent: "+data.AgentName)
	}
	f.Text(0, 6, "Remaining "+helpers.FormatHMS(data.TimeRemainingSeconds))
	f.Text(0, 7, "Session   "+helpers.FormatHMS(data.SessionTimeSeconds))
	f.TextRight(0, fmt.Sprintf("%d%%", data.BatteryPercent))
	renderInputHints(f, "A: Agent B: Back")
}

func renderPinEntry(f *display.Frame, data PinEntryData) {
	renderTitleBar(f, "PIN Entry")
	masked := data.Digits
	if !data.ShowDigits {
		buf := make([]rune, len(data.Digits))
		for i := range buf {
			buf[i] = '*'
		}
		masked = string(buf)
	}
	f.TextCentered(3, masked+"_")

	// 12-key pad, cursor walks it with Left/Right
	pad := [3]string{"1 2 3 4", "5 6 7 8", "9 0 < !"}
	for row, line := range pad {
		f.Text(4, 5+row, line)
	}
	cx := 4 + (data.Cursor%4)*2
	cy := 5 + data.Cursor/4
	f.Set(cx-1, cy, '[')
	f.Set(cx+1, cy, ']')
	renderInputHints(f, "<>: Move A: Key B: Del")
}

func renderVerification(f *display.Frame, data VerificationData) {
	renderTitleBar(f, "Verify")
	serial := data.DeviceSerial
	if serial == "" {
		serial = "unknown"
	}
	content := fmt.Sprintf("ckos:%s:%d", serial, data.UTCSeconds)
	if !renderQR(f, 2, content) {
		f.TextCentered(f.H/2, serial)
		ts := time.Unix(int64(data.UTCSeconds), 0).UTC().Format("15:04:05")
		f.TextCentered(f.H/2+1, ts)
	}
	renderInputHints(f, "B: Back")
}

func renderError(f *display.Frame, data ErrorData) {
	renderTitleBar(f, "Error")
	msg := data.Message
	if msg == "" {
		msg = "internal error"
	}
	f.TextCentered(f.H/2, msg)
	renderInputHints(f, "Any key: Restart")
}

func renderUnknown(f *display.Frame, id ScreenID) {
	renderTitleBar(f, "CKOS")
	f.TextCentered(f.H/2, "Unknown Screen")
	f.TextCentered(f.H/2+1, id.String())
}

// renderQR draws a half-block QR of content starting at row y,
// centered. Returns false when the code does not fit the frame.
func renderQR(f *display.Frame, y int, content string) bool {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return false
	}
	qr.DisableBorder = true
	bmp := qr.Bitmap()
	size := len(bmp)
	rows := (size + 1) / 2
	if size > f.W || y+rows > f.H-1 {
		return false
	}
	x0 := (f.W - size) / 2
	for ry := 0; ry < rows; ry++ {
		for rx := 0; rx < size; rx++ {
			top := bmp[ry*2][rx]
			bot := ry*2+1 < size && bmp[ry*2+1][rx]
			var r rune
			switch {
			case top && bot:
				r = '█'
			case top:
				r = '▀'
			case bot:
				r = '▄'
			default:
				r = ' '
			}
			f.Set(x0+rx, y+ry, r)
		}
	}
	return true
}
