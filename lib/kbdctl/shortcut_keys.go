package kbdctl

import (
	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type keyWindow interface {
	SetKeyCallback(cbfun glfw.KeyCallback) glfw.KeyCallback
}

// SetupShortcutKeys installs the quit shortcuts on windows that deliver
// key events. Other windows are left alone.
func SetupShortcutKeys(win gpu.Window) bool {
	kw, ok := win.(keyWindow)
	if !ok {
		return false
	}
	kw.SetKeyCallback(keyCallback(win))
	return true
}

func keyCallback(win gpu.Window) glfw.KeyCallback {
	return func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		handleKey(win, key, action, mods)
	}
}

// handleKey raises the close flag on Escape, or on Ctrl+Shift+Q release.
func handleKey(win gpu.Window, key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	quit := false
	if action == glfw.Press && key == glfw.KeyEscape {
		quit = true
	}
	if action == glfw.Release &&
		key == glfw.KeyQ &&
		mods&glfw.ModControl != 0 &&
		mods&glfw.ModShift != 0 {
		quit = true
	}
	if quit {
		log.New("kbdctl").Infof("told to quit, closing window")
		win.SetShouldClose(true)
	}
	return quit
}
