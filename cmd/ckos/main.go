// ckos is the control program of the locking appliance.
//
// Usage: ckos -config=ckos.hcl <command>
// Commands: device (real hardware), sim (terminal simulator).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"

	"github.com/ckos/ckos/cmd/ckos/device"
	"github.com/ckos/ckos/cmd/ckos/sim"
	"github.com/ckos/ckos/cmd/ckos/subcmd"
	"github.com/ckos/ckos/internal/state"
	state_new "github.com/ckos/ckos/internal/state/new"
	"github.com/ckos/ckos/log2"
)

var BuildVersion string = "unknown" // set by ldflags -X

var modules = []subcmd.Mod{
	device.Mod,
	sim.Mod,
}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "ckos.hcl", "")
	flagVersion := cmdline.Bool("version", false, "print build version")
	if err := cmdline.Parse(os.Args[1:]); err != nil {
		fmt.Fprint(os.Stderr, errors.ErrorStack(err))
		os.Exit(1)
	}
	if *flagVersion {
		fmt.Printf("ckos %s\n", BuildVersion)
		os.Exit(0)
	}

	log := log2.NewStderr(log2.LDebug)
	mod, err := subcmd.Parse(cmdline.Arg(0), modules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "command line error: %v\n", err)
		cmdline.Usage()
		os.Exit(1)
	}
	if subcmd.SdNotify(log, "start") {
		// under systemd assume journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	log.Infof("ckos version=%s starting %s", BuildVersion, mod.Name)

	ctx, g := state_new.NewContext(log)
	g.BuildVersion = BuildVersion

	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	if err := mod.Main(ctx, config); err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
	g.Alive.Wait()
}
