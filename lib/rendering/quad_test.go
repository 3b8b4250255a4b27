package rendering

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultQuadLayout(t *testing.T) {
	q := DefaultQuad()

	want := []float32{
		0.0, 0.0,
		0.5, 0.0,
		0.5, 0.5,
		0.0, 0.5,
	}
	got := q.VertexData()
	if len(got) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("float %d = %f, want %f", i, got[i], want[i])
		}
	}

	if len(q.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(q.Indices))
	}
	if Stride != 8 {
		t.Errorf("stride should be two floats, got %d bytes", Stride)
	}
	if err := q.Validate(); err != nil {
		t.Error(err)
	}
}

func TestQuadValidate(t *testing.T) {
	tests := []struct {
		name    string
		quad    Quad
		wantErr bool
	}{
		{"default", DefaultQuad(), false},
		{"partial triangle", Quad{Positions: make([]mgl32.Vec2, 3), Indices: []uint32{0, 1}}, true},
		{"index out of range", Quad{Positions: make([]mgl32.Vec2, 3), Indices: []uint32{0, 1, 3}}, true},
		{"empty", Quad{}, true},
		{"no indices", Quad{Positions: make([]mgl32.Vec2, 4)}, true},
		{"no vertices", Quad{Indices: []uint32{0, 1, 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.quad.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
