// Simulator mode: terminal display, console buttons, cooperative
// round-robin scheduling. No device nodes required.
package sim

import (
	"context"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"

	"github.com/ckos/ckos/cmd/ckos/subcmd"
	"github.com/ckos/ckos/helpers/cli"
	hwdisplay "github.com/ckos/ckos/hardware/display"
	"github.com/ckos/ckos/internal/app"
	"github.com/ckos/ckos/internal/display"
	"github.com/ckos/ckos/internal/sched"
	"github.com/ckos/ckos/internal/state"
	"github.com/ckos/ckos/internal/types"
)

var Mod = subcmd.Mod{Name: "sim", Main: Main}

var suggests = []prompt.Suggest{
	{Text: "up"},
	{Text: "down"},
	{Text: "left"},
	{Text: "right"},
	{Text: "a", Description: "select/confirm"},
	{Text: "b", Description: "back/cancel"},
	{Text: "quit"},
}

func Main(ctx context.Context, config *state.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g := state.GetGlobal(ctx)

	// the console owns the tty, keep hardware off
	config.Hardware.Input.DevInputEvent.Enable = false
	config.Hardware.Input.Gpio.Enable = false
	config.Hardware.Lock.Enable = false
	g.MustInit(ctx, config)
	g.Hardware.Display.SetDevice(hwdisplay.NewTermDevicer(os.Stdout))

	disp := display.NewDispatcher(g.Log, g.Hardware.Display)
	appConfig := g.AppConfig()
	appConfig.PersistRoot = ""
	appConfig.PersistMem = true
	logic := app.New(g.Log, appConfig, g.Hardware.Clock, disp, g.Hardware.Lock, g.Hardware.Sensors)

	g.RunInput()
	events := g.Hardware.Input.SubscribeChan("app", g.Alive.StopChan())

	hwInterval, logicInterval, dispInterval := g.Intervals()
	rr := sched.NewRoundRobin(g.Log, g.Hardware.Clock, []sched.Task{
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
		{Name: "logic", Interval: logicInterval, Fn: logic.Tick},
		{Name: "display", Interval: dispInterval, Fn: func(context.Context) error {
			disp.Tick()
			return nil
		}},
	})

	rrch := make(chan error, 1)
	go func() { rrch <- rr.Run(ctx) }()

	g.Log.Debugf("sim init complete, buttons: up down left right a b, quit to exit")
	cli.MainLoop("ckos-sim", func(line string) {
		line = strings.TrimSpace(line)
		switch line {
		case "":
			return
		case "quit", "exit":
			g.Alive.Stop()
			os.Exit(0)
		}
		b := types.ParseButton(line)
		if !b.Valid() {
			g.Log.Errorf("unknown command='%s'", line)
			return
		}
		g.Hardware.Mock.Press(b, 0, 0)
	}, func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
	})

	cancel()
	g.Alive.Stop()
	return errors.Annotate(<-rrch, "sim")
}
