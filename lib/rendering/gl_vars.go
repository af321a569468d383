package rendering

import (
	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/rendering/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// GLVars ties together everything a frame needs. It can only be built
// from a compiled program and an uploaded vertex buffer, so nothing is
// drawn before both exist.
type GLVars struct {
	gl gpu.GL

	Program  shaders.Program
	Buffer   *VertexBuffer
	BGColour mgl32.Vec4
}

func NewGLVars(g gpu.GL, program shaders.Program, buffer *VertexBuffer, bgColour mgl32.Vec4) *GLVars {
	return &GLVars{
		gl:       g,
		Program:  program,
		Buffer:   buffer,
		BGColour: bgColour,
	}
}

func (g *GLVars) Start() {
	g.gl.ClearColor(g.BGColour)
	g.gl.UseProgram(uint32(g.Program))
}

func (g *GLVars) DrawFrame() {
	g.gl.Clear()
	g.gl.BindVertexArray(g.Buffer.VAO)
	g.gl.DrawTriangles(0, g.Buffer.Count)
}

// Release deletes the program. The buffer goes away with the context.
func (g *GLVars) Release() {
	g.gl.UseProgram(0)
	g.gl.DeleteProgram(uint32(g.Program))
}
