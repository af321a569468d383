package rendering

import (
	"errors"
	"testing"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/gpu/gputest"
	"github.com/aum-visual/aumgfx/lib/readout"
	"github.com/aum-visual/aumgfx/lib/rendering/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWindow(t *testing.T) {
	ws, _ := gputest.New()

	win, err := CreateWindow(ws, FixedWindow)
	require.NoError(t, err)
	require.NotNil(t, win)

	fake := ws.Window()
	assert.Equal(t, 640, fake.Width)
	assert.Equal(t, 480, fake.Height)
	assert.Equal(t, "GLFW Init", fake.Title)
	assert.True(t, fake.Current)
	assert.True(t, ws.Hints.CoreProfile)
	assert.False(t, ws.Hints.Resizable)
	assert.Equal(t, []string{"Init", "CreateWindow", "MakeContextCurrent"}, ws.Calls())
}

func TestContextInitFailure(t *testing.T) {
	ws, g := gputest.New()
	ws.InitErr = errors.New("glfw: no display")

	win, err := CreateWindow(ws, FixedWindow)
	assert.Nil(t, win)
	assert.ErrorIs(t, err, &readout.Error{Code: readout.ContextInitFailed})
	assert.ErrorIs(t, err, ws.InitErr)

	assert.Zero(t, ws.Count("CreateWindow"))
	assert.Zero(t, g.Count("GLInit"))
	assert.Zero(t, ws.WindowsCreated)
	assert.Nil(t, ws.Window())
}

func TestWindowCreateFailureTerminates(t *testing.T) {
	ws, _ := gputest.New()
	ws.CreateWindowErr = errors.New("glfw: requested OpenGL version 4.1, got 2.1")

	_, err := CreateWindow(ws, FixedWindow)
	var e *readout.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, readout.WindowCreateFailed, e.Code)
	assert.Equal(t, readout.Initialization, e.Category)

	assert.False(t, ws.Initialized())
	assert.Equal(t, 1, ws.Terminations)
	assert.Nil(t, ws.Window())

	// a fresh attempt from the clean state succeeds
	ws.CreateWindowErr = nil
	win, err := CreateWindow(ws, FixedWindow)
	require.NoError(t, err)
	assert.NotNil(t, win)
	assert.True(t, ws.Initialized())
}

type nilWindowing struct {
	*gputest.Windowing
}

func (nilWindowing) CreateWindow(int, int, string, gpu.Hints) (gpu.Window, error) {
	return nil, nil
}

func TestNilWindowIsFailure(t *testing.T) {
	ws, _ := gputest.New()

	_, err := CreateWindow(nilWindowing{ws}, FixedWindow)
	assert.ErrorIs(t, err, &readout.Error{Code: readout.WindowCreateFailed})
	assert.False(t, ws.Initialized())
}

func TestLoadExtensions(t *testing.T) {
	ws, g := gputest.New()
	_, err := CreateWindow(ws, FixedWindow)
	require.NoError(t, err)

	require.NoError(t, LoadExtensions(ws, g))
	assert.True(t, ws.Initialized())
}

func TestLoadExtensionsFailureTerminates(t *testing.T) {
	ws, g := gputest.New()
	g.InitErr = errors.New("gl: missing glCreateShader")
	_, err := CreateWindow(ws, FixedWindow)
	require.NoError(t, err)

	err = LoadExtensions(ws, g)
	assert.ErrorIs(t, err, &readout.Error{Code: readout.ExtensionLoaderFailed})
	assert.False(t, ws.Initialized())
	assert.True(t, ws.LastWindow().Destroyed())
}

func TestUploadTriangle(t *testing.T) {
	_, g := gputest.NewReady()

	vb := UploadTriangle(g)
	assert.Equal(t, int32(3), vb.Count)
	assert.NotZero(t, vb.VAO)
	assert.NotZero(t, vb.VBO)

	assert.Equal(t, 1, g.BufferAllocations())
	assert.Equal(t, []float32{-0.5, -0.5, 0.0, 0.5, 0.5, -0.5}, g.Data)
	assert.Equal(t, gpu.StaticDraw, g.Usage)

	attrib, ok := g.Attrib(PositionAttrib)
	require.True(t, ok)
	assert.Equal(t, gputest.Attrib{Size: 2, Stride: 8, Offset: 0, Buffer: vb.VBO}, attrib)
}

func TestUploadVerticesUsage(t *testing.T) {
	_, g := gputest.NewReady()

	vb := UploadVertices(g, []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, gpu.DynamicDraw)
	assert.Equal(t, int32(4), vb.Count)
	assert.Len(t, g.Data, 8)
	assert.Equal(t, gpu.DynamicDraw, g.Usage)
}

func TestGLVarsDraw(t *testing.T) {
	_, g := gputest.NewReady()

	vb := UploadTriangle(g)
	c, err := shaders.Default()
	require.NoError(t, err)
	program, err := c.Compile(g)
	require.NoError(t, err)

	vars := NewGLVars(g, program, vb, mgl32.Vec4{0, 0, 0, 1})
	vars.Start()
	assert.Equal(t, uint32(program), g.CurrentProgram())

	vars.DrawFrame()
	assert.Equal(t, 1, g.Clears)
	assert.Equal(t, 1, g.Draws)
	assert.Equal(t, int32(3), g.Vertices)

	vars.Release()
	assert.Zero(t, g.LivePrograms())
}

func TestDrawWithoutProgramPanics(t *testing.T) {
	_, g := gputest.NewReady()
	vb := UploadTriangle(g)

	vars := NewGLVars(g, 0, vb, mgl32.Vec4{})
	assert.Panics(t, vars.DrawFrame)
}
