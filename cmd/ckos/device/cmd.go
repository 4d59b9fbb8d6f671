// Appliance mode: real hardware, goroutine per task.
package device

import (
	"context"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"

	"github.com/ckos/ckos/cmd/ckos/subcmd"
	"github.com/ckos/ckos/helpers"
	"github.com/ckos/ckos/internal/app"
	"github.com/ckos/ckos/internal/display"
	"github.com/ckos/ckos/internal/sched"
	"github.com/ckos/ckos/internal/state"
)

var Mod = subcmd.Mod{Name: "device", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.Log.Debugf("config=%+v", g.Config)

	disp := display.NewDispatcher(g.Log, g.Hardware.Display)
	logic := app.New(g.Log, g.AppConfig(), g.Hardware.Clock, disp, g.Hardware.Lock, g.Hardware.Sensors)

	g.RunInput()
	events := g.Hardware.Input.SubscribeChan("app", g.Alive.StopChan())

	hwInterval, logicInterval, dispInterval := g.Intervals()
	tasks := []sched.Task{
		{Name: "hardware", Interval: hwInterval, Fn: func(context.Context) error {
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					logic.Accept(ev)
				default:
					return nil
				}
			}
		}},
		// TickWait parks on the event queue so a press wakes the
		// logic task inside its cadence sleep
		{Name: "logic", Interval: logicInterval, Fn: func(ctx context.Context) error {
			return logic.TickWait(ctx, logicInterval)
		}},
		{Name: "display", Interval: dispInterval, Fn: func(context.Context) error {
			disp.Tick()
			return nil
		}},
	}

	subcmd.SdNotify(g.Log, daemon.SdNotifyReady)
	g.Log.Debugf("device init complete, running")

	threads := sched.NewThreads(g.Log)
	go helpers.AliveSub(g.Alive, threads.Alive)
	err := threads.Run(ctx, tasks)
	return errors.Annotate(err, "device")
}
