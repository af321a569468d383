package gputest

import (
	"sync/atomic"

	"github.com/aum-visual/aumgfx/lib/gpu"
)

type Windowing struct {
	*Trace

	// InitErr and CreateWindowErr make the respective call fail.
	InitErr         error
	CreateWindowErr error

	// CloseAfterPolls raises the close flag of the current window during
	// the given PollEvents call. Zero never closes.
	CloseAfterPolls int

	ContextMajor int
	ContextMinor int

	Hints gpu.Hints

	initialized    bool
	Inits          int
	Terminations   int
	WindowsCreated int
	Polls          int

	window *Window
	last   *Window
}

func (w *Windowing) Init() error {
	w.add("Init")
	if w.InitErr != nil {
		return w.InitErr
	}
	w.initialized = true
	w.Inits++
	return nil
}

func (w *Windowing) Terminate() {
	w.add("Terminate")
	w.initialized = false
	w.Terminations++
	if w.window != nil {
		w.window.destroyed.Store(true)
		w.window = nil
	}
}

func (w *Windowing) Initialized() bool {
	return w.initialized
}

func (w *Windowing) CreateWindow(width, height int, title string, hints gpu.Hints) (gpu.Window, error) {
	w.add("CreateWindow")
	if !w.initialized {
		misuse("CreateWindow before Init")
	}
	if w.CreateWindowErr != nil {
		return nil, w.CreateWindowErr
	}
	w.Hints = hints
	win := &Window{
		owner:  w,
		Width:  width,
		Height: height,
		Title:  title,
	}
	w.window = win
	w.last = win
	w.WindowsCreated++
	return win, nil
}

func (w *Windowing) PollEvents() {
	w.add("PollEvents")
	if !w.initialized {
		misuse("PollEvents after Terminate")
	}
	w.Polls++
	if w.CloseAfterPolls > 0 && w.Polls >= w.CloseAfterPolls && w.window != nil {
		w.window.SetShouldClose(true)
	}
}

// Window returns the live window, or nil when none exists.
func (w *Windowing) Window() *Window {
	return w.window
}

// LastWindow returns the most recently created window, even if it has
// been destroyed since.
func (w *Windowing) LastWindow() *Window {
	return w.last
}

type Window struct {
	owner *Windowing

	Width  int
	Height int
	Title  string

	Current bool
	Swaps   int

	shouldClose atomic.Bool
	destroyed   atomic.Bool
}

func (w *Window) check(op string) {
	if w.destroyed.Load() {
		misuse("%s on a terminated window", op)
	}
}

func (w *Window) MakeContextCurrent() {
	w.owner.add("MakeContextCurrent")
	w.check("MakeContextCurrent")
	w.Current = true
}

func (w *Window) ContextVersion() (int, int) {
	w.check("ContextVersion")
	return w.owner.ContextMajor, w.owner.ContextMinor
}

func (w *Window) ShouldClose() bool {
	w.check("ShouldClose")
	return w.shouldClose.Load()
}

// SetShouldClose may be called from any goroutine.
func (w *Window) SetShouldClose(value bool) {
	w.check("SetShouldClose")
	w.shouldClose.Store(value)
}

func (w *Window) SwapBuffers() {
	w.owner.add("SwapBuffers")
	w.check("SwapBuffers")
	w.Swaps++
}

func (w *Window) Destroyed() bool {
	return w.destroyed.Load()
}
