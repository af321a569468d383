package rendering

import (
	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/aum-visual/aumgfx/lib/readout"
)

// LoadExtensions resolves the GL function pointers for the current
// context. On failure the windowing library is terminated, since the run
// cannot continue without them.
func LoadExtensions(ws gpu.Windowing, g gpu.GL) error {
	logger := log.New("rendering")

	err := g.Init()
	if err != nil {
		ws.Terminate()
		return readout.Fail(readout.ExtensionLoaderFailed, "", err)
	}
	logger.Debugf("GL function pointers loaded.")

	info := g.Info()
	logger.Infof("OpenGL version %s / %s / %s", info.Vendor, info.Renderer, info.Version)
	logger.Debugf("GL version: %d.%d.", info.Major, info.Minor)

	return nil
}
