package components

import (
	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshRenderer draws an untextured box for level geometry.
type MeshRenderer struct {
	engine.BaseComponent
	Color     rl.Color
	Size      rl.Vector3
	Wireframe bool
}

func NewMeshRenderer(color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		Color:     color,
		Size:      size,
		Wireframe: true,
	}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	s := g.WorldScale()
	size := rl.Vector3{X: m.Size.X * s.X, Y: m.Size.Y * s.Y, Z: m.Size.Z * s.Z}
	pos := g.WorldPosition()

	rl.DrawCubeV(pos, size, m.Color)
	if m.Wireframe {
		rl.DrawCubeWiresV(pos, size, rl.DarkGray)
	}
}
