package rendering

import (
	"errors"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/aum-visual/aumgfx/lib/readout"
)

type WindowCfg struct {
	Width  int
	Height int
	Title  string
}

// FixedWindow is the only window a graphics output opens.
var FixedWindow = WindowCfg{
	Width:  640,
	Height: 480,
	Title:  "GLFW Init",
}

// ContextHints request a 4.1 core context, the highest macOS offers.
var ContextHints = gpu.Hints{
	ContextVersionMajor: 4,
	ContextVersionMinor: 1,
	CoreProfile:         true,
	ForwardCompatible:   true,
	Resizable:           false,
}

var errNoWindow = errors.New("window creation returned no handle")

// CreateWindow initialises the windowing library and opens a window whose
// context is made current on the calling thread. If the window cannot be
// created the library is terminated again. The caller terminates the
// library once done with the window.
func CreateWindow(ws gpu.Windowing, cfg WindowCfg) (gpu.Window, error) {
	logger := log.New("rendering")

	if err := ws.Init(); err != nil {
		return nil, readout.Fail(readout.ContextInitFailed, "", err)
	}
	logger.Debugf("GLFW initialized.")

	window, err := ws.CreateWindow(cfg.Width, cfg.Height, cfg.Title, ContextHints)
	if err == nil && window == nil {
		err = errNoWindow
	}
	if err != nil {
		ws.Terminate()
		return nil, readout.Fail(readout.WindowCreateFailed, "", err)
	}
	logger.Debugf("Window using GLFW initialized.")

	window.MakeContextCurrent()

	major, minor := window.ContextVersion()
	logger.Debugf("Context version: %d.%d.", major, minor)

	return window, nil
}
