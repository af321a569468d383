package main

import (
	"flag"
	stdlog "log"
	"os"
	"runtime"

	"github.com/aum-visual/aumgfx/lib/api"
	"github.com/aum-visual/aumgfx/lib/config"
	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/gpu/glfwgl"
	"github.com/aum-visual/aumgfx/lib/kbdctl"
	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/aum-visual/aumgfx/lib/output"
	"github.com/aum-visual/aumgfx/lib/stats"
)

// exitSetupFailed is returned before a run starts, so it does not clash
// with the exit codes of output.Result.
const exitSetupFailed = 64

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code. Deferred cleanup happens before the
// caller exits.
func run(args []string) int {
	flags := flag.NewFlagSet("aumgfx", flag.ContinueOnError)
	cfgPath := flags.String("config", "", "Path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return exitSetupFailed
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Parse(*cfgPath)
		if err != nil {
			stdlog.Printf("invalid config: %s", err)
			return exitSetupFailed
		}
	}

	log.Setup(os.Stdout, cfg.Level())

	if cfg.Watch && *cfgPath != "" {
		stop, err := config.Watch(*cfgPath, config.ApplyLogLevel)
		if err != nil {
			stdlog.Printf("could not watch config: %s", err)
			return exitSetupFailed
		}
		defer func() {
			// stop logs its own error
			_ = stop()
		}()
	}

	st := stats.New()
	out, err := output.New(
		cfg.Name,
		glfwgl.NewWindowing(),
		glfwgl.NewGL(),
		output.WithStats(st),
		output.WithWindowHook(func(w gpu.Window) {
			kbdctl.SetupShortcutKeys(w)
		}),
	)
	if err != nil {
		stdlog.Printf("could not build graphics output: %s", err)
		return exitSetupFailed
	}

	api.ServeInBackground(out, st, cfg.Api)

	return out.Run().ExitCode()
}
