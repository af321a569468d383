package output

import (
	"errors"
	"time"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/readout"
	"github.com/aum-visual/aumgfx/lib/rendering"
	"github.com/aum-visual/aumgfx/lib/stats"
	"github.com/go-gl/mathgl/mgl32"
)

var clearColour = mgl32.Vec4{0, 0, 0, 1}

// Run bootstraps the window and GL, uploads the triangle, compiles the
// shaders and draws until the window is asked to close. It blocks the
// calling thread, which must be the locked OS thread that owns the GL
// context.
func (o *GraphicsOutput) Run() Result {
	o.log.Tracef("----------------Plugin update----------------")
	o.log.Tracef("OpenGL:")
	o.log.Debugf("%s is running.", o.Name)
	o.setState(Bootstrapping)

	window, err := o.bootstrap()
	if err != nil {
		o.report(err)
		o.setState(Terminated)
		return o.finish(ResultBootstrapFailed)
	}

	buffer := rendering.UploadTriangle(o.gl)

	program, err := o.ShaderCompiler.Compile(o.gl)
	if err != nil {
		o.report(err)
		o.terminate()
		o.setState(Terminated)
		return o.finish(ResultShaderFailed)
	}

	vars := rendering.NewGLVars(o.gl, program, buffer, clearColour)
	for _, hook := range o.windowHooks {
		hook(window)
	}

	o.setState(Running)
	vars.Start()

	// Loop until the user closes the window
	var deltaTimer stats.DeltaTimer
	for !window.ShouldClose() {
		vars.DrawFrame()
		window.SwapBuffers()
		o.ws.PollEvents()

		o.frameDone(deltaTimer.Next())
	}

	o.setState(ShuttingDown)
	vars.Release()
	o.terminate()
	o.setState(Terminated)
	return o.finish(ResultSuccess)
}

// bootstrap leaves the windowing library terminated when it fails.
func (o *GraphicsOutput) bootstrap() (gpu.Window, error) {
	window, err := rendering.CreateWindow(o.ws, rendering.FixedWindow)
	if err != nil {
		return nil, err
	}

	err = rendering.LoadExtensions(o.ws, o.gl)
	if err != nil {
		return nil, err
	}

	o.setWindow(window)
	return window, nil
}

func (o *GraphicsOutput) frameDone(dt time.Duration) {
	o.metrics.FramesDrawn.Inc()
	if dt > 0 {
		o.metrics.FrameSeconds.Observe(dt.Seconds())
	}
	if o.stats != nil {
		o.stats.Update(dt)
	}
}

func (o *GraphicsOutput) report(err error) {
	var e *readout.Error
	if !errors.As(err, &e) {
		o.log.Errorf("%s failed: %s", o.Name, err)
		return
	}

	code := o.Errors.Name(e.Code)
	category := o.ErrorTypes.Name(e.Category)
	o.log.Errorf("%s failed during %s.", code, category)
	if e.Diagnostic != "" {
		o.log.Errorf("%s", e.Diagnostic)
	}
	if e.Err != nil {
		o.log.Debugf("%s", e.Err)
	}
	o.metrics.Failed(code, category)
}

func (o *GraphicsOutput) finish(r Result) Result {
	o.lastResult.Store(int32(r))
	o.hasRun.Store(true)
	o.metrics.RunFinished(r.String())
	o.log.Debugf("%s finished: %s", o.Name, r)
	return r
}
