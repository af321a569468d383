// Package gputest provides an in-memory windowing library and GL driver
// that record every call and count live GPU objects. Misuse, such as
// drawing without a program or touching a window after termination,
// panics.
package gputest

import (
	"fmt"
	"slices"
	"sync"
)

// Trace is the ordered list of calls made to a Windowing and its GL.
type Trace struct {
	mu    sync.Mutex
	calls []string
}

func (t *Trace) add(call string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, call)
}

func (t *Trace) Calls() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.calls)
}

func (t *Trace) Count(call string) int {
	n := 0
	for _, c := range t.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Index returns the position of the first occurrence of call, or -1.
func (t *Trace) Index(call string) int {
	return slices.Index(t.Calls(), call)
}

// Since returns the calls made after the last occurrence of call.
func (t *Trace) Since(call string) []string {
	calls := t.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i] == call {
			return calls[i+1:]
		}
	}
	return calls
}

func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = nil
}

// New returns a windowing library and a GL driver sharing one trace.
func New() (*Windowing, *GL) {
	trace := &Trace{}
	ws := &Windowing{
		Trace:        trace,
		ContextMajor: 4,
		ContextMinor: 1,
	}
	g := &GL{
		Trace:    trace,
		ws:       ws,
		Major:    4,
		Minor:    1,
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		attribs:  make(map[uint32]Attrib),
		enabled:  make(map[uint32]bool),
	}
	return ws, g
}

// NewReady returns a driver pair with a window created, its context
// current and the GL loaded, as if bootstrap had already succeeded.
func NewReady() (*Windowing, *GL) {
	ws, g := New()
	if err := ws.Init(); err != nil {
		panic(err)
	}
	win, err := ws.CreateWindow(640, 480, "gputest", ws.Hints)
	if err != nil {
		panic(err)
	}
	win.MakeContextCurrent()
	if err := g.Init(); err != nil {
		panic(err)
	}
	return ws, g
}

func misuse(format string, args ...any) {
	panic(fmt.Sprintf("gputest: "+format, args...))
}
