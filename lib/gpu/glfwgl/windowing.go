// Package glfwgl implements the gpu interfaces on top of GLFW and the
// go-gl OpenGL 4.1 core bindings. All calls must come from the thread
// that called runtime.LockOSThread.
package glfwgl

import (
	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Windowing struct{}

func NewWindowing() *Windowing {
	return &Windowing{}
}

func (Windowing) Init() error {
	return glfw.Init()
}

func (Windowing) Terminate() {
	glfw.Terminate()
}

func (Windowing) CreateWindow(width, height int, title string, hints gpu.Hints) (gpu.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, boolHint(hints.Resizable))
	if hints.ContextVersionMajor > 0 {
		glfw.WindowHint(glfw.ContextVersionMajor, hints.ContextVersionMajor)
		glfw.WindowHint(glfw.ContextVersionMinor, hints.ContextVersionMinor)
	}
	if hints.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, boolHint(hints.ForwardCompatible))

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	return &Window{Window: win}, nil
}

func (Windowing) PollEvents() {
	glfw.PollEvents()
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Window exposes the underlying *glfw.Window so callers can install
// input callbacks.
type Window struct {
	*glfw.Window
}

// ContextVersion is read from GLFW and does not need GL function pointers.
func (w *Window) ContextVersion() (int, int) {
	return w.GetAttrib(glfw.ContextVersionMajor), w.GetAttrib(glfw.ContextVersionMinor)
}
