// Package gpu describes the windowing library and the GL entry points a
// graphics output needs. Implementations are passed explicitly so that
// the current context and bound objects are values, not driver globals.
package gpu

import "github.com/go-gl/mathgl/mgl32"

type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// Hints are applied before a window is created.
type Hints struct {
	ContextVersionMajor int
	ContextVersionMinor int
	CoreProfile         bool
	ForwardCompatible   bool
	Resizable           bool
}

type Windowing interface {
	Init() error
	// Terminate destroys every window and context. Windows must not be
	// used afterwards.
	Terminate()
	CreateWindow(width, height int, title string, hints Hints) (Window, error)
	PollEvents()
}

type Window interface {
	MakeContextCurrent()
	ContextVersion() (major, minor int)
	ShouldClose() bool
	SetShouldClose(value bool)
	SwapBuffers()
}

// Info holds the strings the driver reports about itself.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	Major    int32
	Minor    int32
}

// GL is the subset of OpenGL used here. Init loads the function pointers
// and must be called with a context current.
type GL interface {
	Init() error
	Info() Info

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	GenBuffer() uint32
	BindArrayBuffer(buffer uint32)
	ArrayBufferData(data []float32, usage BufferUsage)
	VertexAttribPointer(index uint32, size int32, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	ClearColor(colour mgl32.Vec4)
	Clear()
	DrawTriangles(first, count int32)
}
