package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckos/ckos/internal/state"
	state_new "github.com/ckos/ckos/internal/state/new"
	"github.com/ckos/ckos/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	fs := state.NewMockFullReader(map[string]string{
		"test": `
persist { root = "/tmp/ckos" }
hardware {
  display {
    codepage = "windows-1251"
    width = 32
    height = 16
  }
  input {
    dev_input_event {
      enable = true
      device = "/dev/input/event0"
    }
  }
  lock {
    enable = true
    chip = "/dev/gpiochip0"
    line = 17
  }
}
app {
  debounce_ms = 150
  device_serial = "CK-0001"
  max_visible = 4
}
sched {
  logic_interval_ms = 16
}
`,
	})
	cfg, err := state.ReadConfig(log, fs, "test")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ckos", cfg.Persist.Root)
	assert.Equal(t, "windows-1251", cfg.Hardware.Display.Codepage)
	assert.True(t, cfg.Hardware.Input.DevInputEvent.Enable)
	assert.Equal(t, "/dev/input/event0", cfg.Hardware.Input.DevInputEvent.Device)
	assert.True(t, cfg.Hardware.Lock.Enable)
	assert.Equal(t, uint32(17), cfg.Hardware.Lock.Line)
	assert.Equal(t, uint32(150), cfg.App.DebounceMs)
	assert.Equal(t, "CK-0001", cfg.App.DeviceSerial)
	assert.Equal(t, 16, cfg.Sched.LogicIntervalMs)
}

func TestReadConfigInclude(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	fs := state.NewMockFullReader(map[string]string{
		"base":  `include "extra" {} app { debounce_ms = 100 }`,
		"extra": `app { device_serial = "CK-0002" }`,
	})
	cfg, err := state.ReadConfig(log, fs, "base")
	require.NoError(t, err)
	assert.Equal(t, uint32(100), cfg.App.DebounceMs)
	assert.Equal(t, "CK-0002", cfg.App.DeviceSerial)
}

func TestReadConfigMissingRequired(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	fs := state.NewMockFullReader(map[string]string{})
	_, err := state.ReadConfig(log, fs, "nope")
	assert.Error(t, err)
}

func TestNewTestContext(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "test-build", `
app { device_serial = "CK-TEST" }
`)
	assert.Same(t, g, state.GetGlobal(ctx))
	require.NotNil(t, g.Hardware.Display)
	require.NotNil(t, g.Hardware.Input)
	require.NotNil(t, g.Hardware.Mock)
	require.NotNil(t, g.Hardware.Lock)

	hw, logic, disp := g.Intervals()
	assert.Equal(t, 100*time.Millisecond, hw)
	assert.Equal(t, 16*time.Millisecond, logic)
	assert.Equal(t, 33*time.Millisecond, disp)

	acfg := g.AppConfig()
	assert.Equal(t, "CK-TEST", acfg.DeviceSerial)
}
