// Package output implements a graphics output: a window showing a single
// red triangle until it is closed.
package output

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/aum-visual/aumgfx/lib/metrics"
	"github.com/aum-visual/aumgfx/lib/readout"
	"github.com/aum-visual/aumgfx/lib/rendering/shaders"
	"github.com/aum-visual/aumgfx/lib/stats"
)

type GraphicsOutput struct {
	Name           string
	Errors         *readout.Taxonomy[readout.Code]
	ErrorTypes     *readout.Taxonomy[readout.Category]
	ShaderCompiler *shaders.Compiler

	ws gpu.Windowing
	gl gpu.GL

	// window is only set between a successful bootstrap and Terminate
	window   gpu.Window
	windowMu sync.Mutex

	state      atomic.Int32
	lastResult atomic.Int32
	hasRun     atomic.Bool

	log         *log.Logger
	metrics     metrics.OutputMetrics
	stats       *stats.Stats
	windowHooks []func(gpu.Window)

	listenerMu sync.Mutex
	listeners  []StateListener
}

type Option func(o *GraphicsOutput)

func WithStats(s *stats.Stats) Option {
	return func(o *GraphicsOutput) {
		o.stats = s
	}
}

// WithWindowHook runs f with the window once bootstrap succeeded, e.g. to
// install input callbacks.
func WithWindowHook(f func(gpu.Window)) Option {
	return func(o *GraphicsOutput) {
		o.windowHooks = append(o.windowHooks, f)
	}
}

func WithLogger(l *log.Logger) Option {
	return func(o *GraphicsOutput) {
		o.log = l
	}
}

func New(name string, ws gpu.Windowing, g gpu.GL, opts ...Option) (*GraphicsOutput, error) {
	o := &GraphicsOutput{
		Name:       name,
		Errors:     readout.Errors(),
		ErrorTypes: readout.Categories(),
		ws:         ws,
		gl:         g,
		log:        log.New("output"),
		metrics:    metrics.NewOutputMetrics(name),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log.Infof("Constructing %s.", o.Name)

	compiler, err := shaders.Default()
	if err != nil {
		return nil, fmt.Errorf("could not load shaders for %s: %w", name, err)
	}
	o.ShaderCompiler = compiler
	o.setState(Bootstrapping)

	return o, nil
}

func (o *GraphicsOutput) State() State {
	return State(o.state.Load())
}

// LastResult returns the result of the most recent run, if any.
func (o *GraphicsOutput) LastResult() (Result, bool) {
	return Result(o.lastResult.Load()), o.hasRun.Load()
}

func (o *GraphicsOutput) OnStateChange(l StateListener) {
	o.listenerMu.Lock()
	defer o.listenerMu.Unlock()
	o.listeners = append(o.listeners, l)
}

func (o *GraphicsOutput) setState(s State) {
	o.state.Store(int32(s))
	o.log.Tracef("state %s", s)
	if o.stats != nil {
		o.stats.SetState(s.String())
	}

	o.listenerMu.Lock()
	listeners := append([]StateListener(nil), o.listeners...)
	o.listenerMu.Unlock()
	for _, l := range listeners {
		l(o, s)
	}
}

// RequestClose raises the close flag of the window, the same signal the
// user sends by closing it. Safe to call from any goroutine. Reports
// false when no window is open.
func (o *GraphicsOutput) RequestClose() bool {
	o.windowMu.Lock()
	defer o.windowMu.Unlock()
	if o.window == nil {
		return false
	}
	o.window.SetShouldClose(true)
	return true
}

func (o *GraphicsOutput) setWindow(w gpu.Window) {
	o.windowMu.Lock()
	defer o.windowMu.Unlock()
	o.window = w
}

// terminate forgets the window before the windowing library destroys it.
func (o *GraphicsOutput) terminate() {
	o.setWindow(nil)
	o.ws.Terminate()
}
