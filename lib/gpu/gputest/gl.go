package gputest

import (
	"slices"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Attrib is a recorded vertex attribute layout.
type Attrib struct {
	Size   int32
	Stride int32
	Offset int
	Buffer uint32
}

type shader struct {
	stage    gpu.ShaderStage
	source   string
	compiled bool
	log      string
}

type program struct {
	attached []uint32
	linked   bool
	log      string
}

type GL struct {
	*Trace
	ws *Windowing

	InitErr error
	// Compile decides the outcome of CompileShader. By default any
	// non-empty source compiles.
	Compile func(stage gpu.ShaderStage, source string) (ok bool, infoLog string)
	// LinkLog makes LinkProgram fail with the given info log.
	LinkLog string

	Vendor   string
	Renderer string
	Major    int32
	Minor    int32

	initialized bool
	next        uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program

	vertexArrays []uint32
	buffers      []uint32
	boundVAO     uint32
	boundArray   uint32
	attribs      map[uint32]Attrib
	enabled      map[uint32]bool
	current      uint32

	// Data and Usage hold the last upload to the array buffer.
	Data  []float32
	Usage gpu.BufferUsage

	ClearColour mgl32.Vec4
	Clears      int
	Draws       int
	Links       int
	Vertices    int32
}

func (g *GL) check(op string) {
	if !g.initialized {
		misuse("%s before GL Init", op)
	}
	if !g.ws.initialized || g.ws.window == nil || !g.ws.window.Current {
		misuse("%s without a current context", op)
	}
}

func (g *GL) alloc() uint32 {
	g.next++
	return g.next
}

func (g *GL) Init() error {
	g.add("GLInit")
	if g.ws.window == nil || !g.ws.window.Current {
		misuse("GL Init without a current context")
	}
	if g.InitErr != nil {
		return g.InitErr
	}
	g.initialized = true
	return nil
}

func (g *GL) Info() gpu.Info {
	g.check("Info")
	return gpu.Info{
		Vendor:   g.Vendor,
		Renderer: g.Renderer,
		Version:  "gputest",
		Major:    g.Major,
		Minor:    g.Minor,
	}
}

func (g *GL) GenVertexArray() uint32 {
	g.add("GenVertexArray")
	g.check("GenVertexArray")
	vao := g.alloc()
	g.vertexArrays = append(g.vertexArrays, vao)
	return vao
}

func (g *GL) BindVertexArray(vao uint32) {
	g.add("BindVertexArray")
	g.check("BindVertexArray")
	if vao != 0 && !slices.Contains(g.vertexArrays, vao) {
		misuse("BindVertexArray of unknown vertex array %d", vao)
	}
	g.boundVAO = vao
}

func (g *GL) GenBuffer() uint32 {
	g.add("GenBuffer")
	g.check("GenBuffer")
	buf := g.alloc()
	g.buffers = append(g.buffers, buf)
	return buf
}

func (g *GL) BindArrayBuffer(buffer uint32) {
	g.add("BindArrayBuffer")
	g.check("BindArrayBuffer")
	if buffer != 0 && !slices.Contains(g.buffers, buffer) {
		misuse("BindArrayBuffer of unknown buffer %d", buffer)
	}
	g.boundArray = buffer
}

func (g *GL) ArrayBufferData(data []float32, usage gpu.BufferUsage) {
	g.add("ArrayBufferData")
	g.check("ArrayBufferData")
	if g.boundArray == 0 {
		misuse("ArrayBufferData without a bound buffer")
	}
	g.Data = slices.Clone(data)
	g.Usage = usage
}

func (g *GL) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	g.add("VertexAttribPointer")
	g.check("VertexAttribPointer")
	if g.boundVAO == 0 {
		misuse("VertexAttribPointer without a bound vertex array")
	}
	if g.boundArray == 0 {
		misuse("VertexAttribPointer without a bound buffer")
	}
	g.attribs[index] = Attrib{Size: size, Stride: stride, Offset: offset, Buffer: g.boundArray}
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.add("EnableVertexAttribArray")
	g.check("EnableVertexAttribArray")
	g.enabled[index] = true
}

func (g *GL) Attrib(index uint32) (Attrib, bool) {
	a, ok := g.attribs[index]
	return a, ok && g.enabled[index]
}

func (g *GL) CreateShader(stage gpu.ShaderStage) uint32 {
	g.add("CreateShader")
	g.check("CreateShader")
	id := g.alloc()
	g.shaders[id] = &shader{stage: stage}
	return id
}

func (g *GL) shader(op string, id uint32) *shader {
	s, ok := g.shaders[id]
	if !ok {
		misuse("%s on unknown shader %d", op, id)
	}
	return s
}

func (g *GL) ShaderSource(id uint32, source string) {
	g.add("ShaderSource")
	g.check("ShaderSource")
	g.shader("ShaderSource", id).source = source
}

func (g *GL) CompileShader(id uint32) {
	g.add("CompileShader")
	g.check("CompileShader")
	s := g.shader("CompileShader", id)
	if g.Compile != nil {
		s.compiled, s.log = g.Compile(s.stage, s.source)
		return
	}
	s.compiled = s.source != ""
	if !s.compiled {
		s.log = "0:1(1): error: empty shader source"
	}
}

func (g *GL) ShaderCompiled(id uint32) bool {
	g.check("ShaderCompiled")
	return g.shader("ShaderCompiled", id).compiled
}

func (g *GL) ShaderInfoLog(id uint32) string {
	g.check("ShaderInfoLog")
	return g.shader("ShaderInfoLog", id).log
}

func (g *GL) DeleteShader(id uint32) {
	g.add("DeleteShader")
	g.check("DeleteShader")
	g.shader("DeleteShader", id)
	delete(g.shaders, id)
}

func (g *GL) CreateProgram() uint32 {
	g.add("CreateProgram")
	g.check("CreateProgram")
	id := g.alloc()
	g.programs[id] = &program{}
	return id
}

func (g *GL) program(op string, id uint32) *program {
	p, ok := g.programs[id]
	if !ok {
		misuse("%s on unknown program %d", op, id)
	}
	return p
}

func (g *GL) AttachShader(prog, id uint32) {
	g.add("AttachShader")
	g.check("AttachShader")
	g.shader("AttachShader", id)
	p := g.program("AttachShader", prog)
	p.attached = append(p.attached, id)
}

func (g *GL) DetachShader(prog, id uint32) {
	g.add("DetachShader")
	g.check("DetachShader")
	p := g.program("DetachShader", prog)
	p.attached = slices.DeleteFunc(p.attached, func(s uint32) bool { return s == id })
}

func (g *GL) LinkProgram(prog uint32) {
	g.add("LinkProgram")
	g.check("LinkProgram")
	p := g.program("LinkProgram", prog)
	g.Links++

	stages := make(map[gpu.ShaderStage]bool)
	for _, id := range p.attached {
		s := g.shader("LinkProgram", id)
		if !s.compiled {
			p.linked, p.log = false, "error: linking with uncompiled shader"
			return
		}
		stages[s.stage] = true
	}
	switch {
	case g.LinkLog != "":
		p.linked, p.log = false, g.LinkLog
	case !stages[gpu.VertexStage] || !stages[gpu.FragmentStage]:
		p.linked, p.log = false, "error: program lacks a vertex or fragment stage"
	default:
		p.linked, p.log = true, ""
	}
}

func (g *GL) ProgramLinked(prog uint32) bool {
	g.check("ProgramLinked")
	return g.program("ProgramLinked", prog).linked
}

func (g *GL) ProgramInfoLog(prog uint32) string {
	g.check("ProgramInfoLog")
	return g.program("ProgramInfoLog", prog).log
}

func (g *GL) UseProgram(prog uint32) {
	g.add("UseProgram")
	g.check("UseProgram")
	if prog != 0 && !g.program("UseProgram", prog).linked {
		misuse("UseProgram of unlinked program %d", prog)
	}
	g.current = prog
}

func (g *GL) DeleteProgram(prog uint32) {
	g.add("DeleteProgram")
	g.check("DeleteProgram")
	g.program("DeleteProgram", prog)
	delete(g.programs, prog)
	if g.current == prog {
		g.current = 0
	}
}

func (g *GL) ClearColor(c mgl32.Vec4) {
	g.add("ClearColor")
	g.check("ClearColor")
	g.ClearColour = c
}

func (g *GL) Clear() {
	g.add("Clear")
	g.check("Clear")
	g.Clears++
}

func (g *GL) DrawTriangles(first, count int32) {
	g.add("DrawTriangles")
	g.check("DrawTriangles")
	if g.current == 0 {
		misuse("DrawTriangles without a program in use")
	}
	if g.boundVAO == 0 {
		misuse("DrawTriangles without a bound vertex array")
	}
	if _, ok := g.Attrib(0); !ok {
		misuse("DrawTriangles without vertex attribute 0 enabled")
	}
	g.Draws++
	g.Vertices = count
}

// LiveShaders counts shader objects that have not been deleted.
func (g *GL) LiveShaders() int {
	return len(g.shaders)
}

// LivePrograms counts program objects that have not been deleted.
func (g *GL) LivePrograms() int {
	return len(g.programs)
}

func (g *GL) BufferAllocations() int {
	return len(g.buffers)
}

func (g *GL) CurrentProgram() uint32 {
	return g.current
}
