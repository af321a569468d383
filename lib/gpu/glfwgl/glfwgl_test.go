package glfwgl

import (
	"runtime"
	"testing"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	runtime.LockOSThread()
}

// initTestGL skips when no display or GL driver is available.
func initTestGL(t *testing.T) (*Windowing, *GL, gpu.Window) {
	ws := NewWindowing()
	if err := ws.Init(); err != nil {
		t.Skip(err)
	}
	t.Cleanup(ws.Terminate)

	hints := gpu.Hints{ContextVersionMajor: 4, ContextVersionMinor: 1, CoreProfile: true, ForwardCompatible: true}
	win, err := ws.CreateWindow(64, 64, "glfwgl test", hints)
	if err != nil {
		t.Skip(err)
	}
	win.MakeContextCurrent()

	g := NewGL()
	if err := g.Init(); err != nil {
		t.Skip(err)
	}
	return ws, g, win
}

func TestContextVersion(t *testing.T) {
	_, g, win := initTestGL(t)

	major, minor := win.ContextVersion()
	assert.GreaterOrEqual(t, major, 3)
	assert.GreaterOrEqual(t, minor, 0)

	info := g.Info()
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, int32(major), info.Major)
}

func TestCompileFailureReportsLog(t *testing.T) {
	_, g, _ := initTestGL(t)

	shader := g.CreateShader(gpu.FragmentStage)
	require.NotZero(t, shader)
	defer g.DeleteShader(shader)

	g.ShaderSource(shader, "#version 330 core\nout vec4 color;\nvoid main()\n{\ncolor = vec4(1.0)\n}\n")
	g.CompileShader(shader)
	assert.False(t, g.ShaderCompiled(shader))
	assert.NotEmpty(t, g.ShaderInfoLog(shader))
}
