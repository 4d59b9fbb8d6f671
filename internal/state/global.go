package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/ckos/ckos/helpers"
	"github.com/ckos/ckos/internal/app"
	"github.com/ckos/ckos/internal/sched"
	"github.com/ckos/ckos/log2"
)

// Global is the assembled appliance: config, log, hardware facade.
// It travels through context so tasks reach hardware without import
// cycles.
type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Hardware     hardware // hardware.go
	Log          *log2.Log

	initOnce sync.Once

	_copy_guard sync.Mutex //nolint:unused
}

const ContextKey = "run/state-global"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global", ContextKey))
}

func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	var err error
	g.initOnce.Do(func() { err = g.initHardware() })
	return errors.Annotate(err, "state.Init")
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	if err := g.Init(ctx, cfg); err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Stop() { g.Alive.Stop() }

// Intervals resolves the task cadences, config overrides defaults.
func (g *Global) Intervals() (hw, logic, disp time.Duration) {
	hw = helpers.IntMillisecondDefault(g.Config.Sched.HardwareIntervalMs, sched.HardwareInterval)
	logic = helpers.IntMillisecondDefault(g.Config.Sched.LogicIntervalMs, sched.LogicInterval)
	disp = helpers.IntMillisecondDefault(g.Config.Sched.DisplayIntervalMs, sched.DisplayInterval)
	return hw, logic, disp
}

// AppConfig maps the parsed config onto the logic task options.
func (g *Global) AppConfig() *app.Config {
	a := g.Config.App
	return &app.Config{
		DebounceMs:    a.DebounceMs,
		IdleTimeoutMs: a.IdleTimeoutMs,
		DeviceSerial:  a.DeviceSerial,
		MenuItems:     a.MenuItems,
		SettingsItems: a.SettingsItems,
		MaxVisible:    a.MaxVisible,
		PersistRoot:   g.Config.Persist.Root,
	}
}
