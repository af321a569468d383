package rendering

import (
	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

// PositionAttrib is the attribute location of the vertex position.
const PositionAttrib = 0

// TriangleVertices are in normalized device coordinates.
var TriangleVertices = []mgl32.Vec2{
	{-0.5, -0.5},
	{0.0, 0.5},
	{0.5, -0.5},
}

// VertexBuffer is an uploaded set of 2D vertices together with the
// vertex array that describes its layout.
type VertexBuffer struct {
	VAO   uint32
	VBO   uint32
	Count int32
}

// UploadVertices copies vertices into a new array buffer and binds it to
// attribute 0 as two floats per vertex.
func UploadVertices(g gpu.GL, vertices []mgl32.Vec2, usage gpu.BufferUsage) *VertexBuffer {
	vb := &VertexBuffer{Count: int32(len(vertices))}

	positions := make([]float32, 0, len(vertices)*2)
	for _, v := range vertices {
		positions = append(positions, v.X(), v.Y())
	}

	vb.VAO = g.GenVertexArray()
	g.BindVertexArray(vb.VAO)

	vb.VBO = g.GenBuffer()
	g.BindArrayBuffer(vb.VBO)
	g.ArrayBufferData(positions, usage)

	stride := int32(2 * f32)
	g.VertexAttribPointer(PositionAttrib, 2, stride, 0)
	g.EnableVertexAttribArray(PositionAttrib)
	g.BindArrayBuffer(0)

	return vb
}

func UploadTriangle(g gpu.GL) *VertexBuffer {
	return UploadVertices(g, TriangleVertices, gpu.StaticDraw)
}
