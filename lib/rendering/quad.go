package rendering

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

// Stride is the size of one vertex: a single vec2 position.
const Stride = int32(2 * f32)

const positionAttrib = 0

type Quad struct {
	Positions []mgl32.Vec2
	Indices   []uint32
}

// DefaultQuad spans (0,0) to (0.5,0.5) in normalised device coordinates.
func DefaultQuad() Quad {
	return Quad{
		Positions: []mgl32.Vec2{
			{0.0, 0.0},
			{0.5, 0.0},
			{0.5, 0.5},
			{0.0, 0.5},
		},
		Indices: []uint32{
			0, 1, 2,
			0, 2, 3,
		},
	}
}

// VertexData flattens the positions into the layout uploaded to the VBO.
func (q Quad) VertexData() []float32 {
	data := make([]float32, 0, len(q.Positions)*2)
	for _, p := range q.Positions {
		data = append(data, p.X(), p.Y())
	}
	return data
}

func (q Quad) Validate() error {
	if len(q.Positions) == 0 || len(q.Indices) == 0 {
		return fmt.Errorf("quad needs vertices and indices, got %d and %d", len(q.Positions), len(q.Indices))
	}
	if len(q.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(q.Indices))
	}
	for i, idx := range q.Indices {
		if int(idx) >= len(q.Positions) {
			return fmt.Errorf("index %d refers to vertex %d, but only %d vertices exist", i, idx, len(q.Positions))
		}
	}
	return nil
}

// Mesh is a quad that lives on the GPU.
type Mesh struct {
	ctx        *Context
	VAO        uint32
	VBO        uint32
	IBO        uint32
	IndexCount int32
}

// UploadQuad writes the quad into static vertex and index buffers and sets
// up attribute 0 as a vec2 at offset 0.
func UploadQuad(ctx *Context, q Quad) (*Mesh, error) {
	if err := ctx.CheckThread(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quad: %w", err)
	}

	m := &Mesh{ctx: ctx, IndexCount: int32(len(q.Indices))}
	vertices := q.VertexData()

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*f32, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointerWithOffset(positionAttrib, 2, gl.FLOAT, false, Stride, 0)

	gl.GenBuffers(1, &m.IBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.IBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(q.Indices)*4, gl.Ptr(q.Indices), gl.STATIC_DRAW)

	return m, nil
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, 0)
}

func (m *Mesh) Delete() {
	gl.DeleteBuffers(1, &m.IBO)
	gl.DeleteBuffers(1, &m.VBO)
	gl.DeleteVertexArrays(1, &m.VAO)
}
