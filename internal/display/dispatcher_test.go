package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hw "github.com/ckos/ckos/hardware/display"
	"github.com/ckos/ckos/log2"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *hw.Display) {
	out, _ := hw.NewMockDisplay(&hw.Config{Width: 32, Height: 16})
	d := NewDispatcher(log2.NewTest(t, log2.LDebug), out)
	return d, out
}

func frameText(out *hw.Display) string {
	f := out.Last()
	if f == nil {
		return ""
	}
	return f.String()
}

func TestTickEmptyQueueStillPresents(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	d.Tick()
	require.NotNil(t, out.Last())
	assert.Contains(t, frameText(out), "Welcome")
}

func TestActivateAndRedrawFromLastKnown(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	menu := MenuData{
		Items:      []string{"Agent Lock", "Custom Lock", "Settings"},
		Selection:  1,
		MaxVisible: 4,
	}
	require.True(t, d.Send(ActivateScreen(ScreenMainMenu, menu)))
	d.Tick()
	assert.Equal(t, ScreenMainMenu, d.CurrentScreen())
	assert.Contains(t, frameText(out), "> Custom Lock")
	assert.Contains(t, frameText(out), "2/3")

	// next tick has no commands, same screen redraws from registers
	d.Tick()
	assert.Contains(t, frameText(out), "> Custom Lock")
}

func TestDrainAppliesInOrder(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(ActivateScreen(ScreenMainMenu, MenuData{Items: []string{"x"}, MaxVisible: 4})))
	require.True(t, d.Send(ActivateScreen(ScreenTimezoneSetup, TimezoneData{OffsetHours: 3})))
	d.Tick()

	// later command wins within one tick
	assert.Equal(t, ScreenTimezoneSetup, d.CurrentScreen())
	assert.Contains(t, frameText(out), "UTC+3")
}

func TestActivateNilDataKeepsRegister(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(ActivateScreen(ScreenTimeSetup, TimeData{TimeString: "12:34:56"})))
	d.Tick()
	assert.Contains(t, frameText(out), "12:34:56")

	require.True(t, d.Send(ActivateScreen(ScreenWelcome, nil)))
	require.True(t, d.Send(ActivateScreen(ScreenTimeSetup, nil)))
	d.Tick()
	assert.Contains(t, frameText(out), "12:34:56")
}

func TestNilDataSafeDefaults(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(ActivateScreen(ScreenTimeSetup, nil)))
	d.Tick()
	assert.Contains(t, frameText(out), "00:00:00")

	require.True(t, d.Send(ActivateScreen(ScreenMainMenu, nil)))
	d.Tick()
	assert.Contains(t, frameText(out), "No menu data")
}

func TestUnknownScreenFallback(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(ActivateScreen(ScreenID(200), nil)))
	d.Tick()
	assert.Contains(t, frameText(out), "Unknown Screen")
}

func TestUpdateCommandsPatchRegisters(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(ActivateScreen(ScreenLockStatus, LockStatusData{
		Locked:               true,
		AgentName:            "Rookie",
		TimeRemainingSeconds: 3600,
		SessionTimeSeconds:   60,
	})))
	d.Tick()
	assert.Contains(t, frameText(out), "01:00:00")

	require.True(t, d.Send(UpdateLockStatus(3599)))
	d.Tick()
	assert.Contains(t, frameText(out), "00:59:59")
	assert.Contains(t, frameText(out), "Rookie")

	require.True(t, d.Send(SetTheme(ThemeAgentRookie)))
	d.Tick()
	assert.Equal(t, ThemeAgentRookie, d.CurrentTheme())
}

func TestMoodUpdateBeforeActivate(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(UpdateAgentMood(Mood{Affection: 1, Strictness: 0.5, Satisfaction: 0.7, Trust: 0.5})))
	require.True(t, d.Send(ActivateScreen(ScreenAgentInteraction, nil)))
	d.Tick()
	assert.Contains(t, frameText(out), "aff 1.0 str 0.5")
}

func TestSendFullQueueDrops(t *testing.T) {
	t.Parallel()
	d, _ := newTestDispatcher(t)

	for i := 0; i < QueueCapacity; i++ {
		require.True(t, d.Send(UpdateLockStatus(uint32(i))))
	}
	assert.False(t, d.Send(UpdateLockStatus(999)))

	// tick drains everything, sending works again
	d.Tick()
	assert.True(t, d.Send(UpdateLockStatus(1000)))
}

func TestVerificationQR(t *testing.T) {
	t.Parallel()
	d, out := newTestDispatcher(t)

	require.True(t, d.Send(ActivateScreen(ScreenVerification, VerificationData{
		DeviceSerial: "CK-0001",
		UTCSeconds:   1700000000,
	})))
	d.Tick()
	text := frameText(out)
	assert.Contains(t, text, "Verify")
	// QR half-blocks or the text fallback, either way something was drawn
	drawn := strings.ContainsAny(text, "█▀▄") || strings.Contains(text, "CK-0001")
	assert.True(t, drawn)
}
