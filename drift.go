/*drift advects tracer particles through gridded velocity fields, on
regular or terrain-fitted meshes, and writes their trajectories out for
analysis. It is also the reference driver for the interpolation kernels
in lib/interp and lib/terrain.*/
package main

import (
	"fmt"
	"os"

	"github.com/driftlab/drift/lib/config"
	derror "github.com/driftlab/drift/lib/error"
	"github.com/driftlab/drift/lib/thread"
)

func main() {
	mode, configFile := parseCommandLine()

	switch mode {
	case "help":
		printHelp()
	case "check":
		CheckMode(configFile)
	case "advect":
		AdvectMode(configFile)
	default:
		derror.External(
			"You attempted to run drift in the mode '%s', but the only "+
				"valid modes are 'help', 'check', and 'advect'.", mode,
		)
	}
}

// parseCommandLine parses the command line arguments. Expects that the
// arguments are presented in the order:
// $ drift <mode> [config file]
func parseCommandLine() (mode, configFile string) {
	if len(os.Args) < 2 {
		return "help", ""
	}
	mode = os.Args[1]
	if len(os.Args) >= 3 {
		configFile = os.Args[2]
	}
	return mode, configFile
}

func printHelp() {
	fmt.Println(`drift - tracer particle advection over structured meshes

Usage:
    drift help                  Print this message.
    drift check <config.yaml>   Validate a run configuration.
    drift advect [config.yaml]  Run a tracer advection. Without a config
                                file the embedded defaults are used.`)
}

// CheckMode runs drift's "check" mode, which tests for errors in the
// configuration file.
func CheckMode(configFile string) {
	_, err := config.Load(configFile)
	if err != nil {
		derror.External("%s", err.Error())
	}
	fmt.Println("No errors detected.")
}

// AdvectMode runs drift's "advect" mode, which seeds tracers, moves
// them through the configured velocity field, and writes trajectory
// output.
func AdvectMode(configFile string) {
	cfg, err := config.Load(configFile)
	if err != nil {
		derror.External("%s", err.Error())
	}

	thread.Set(cfg.Threads)
	runAdvect(cfg)
}
