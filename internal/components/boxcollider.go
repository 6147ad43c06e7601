package components

import (
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an axis-aligned box that responds to the given query
// channels. Object rotation is ignored; level geometry is axis-aligned.
type BoxCollider struct {
	engine.BaseComponent
	Size     rl.Vector3
	Offset   rl.Vector3
	Channels physics.Channel
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:     size,
		Offset:   rl.Vector3{},
		Channels: physics.ChannelWorldStatic,
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), b.Offset)
}

// GetWorldSize returns the collider size scaled by the object scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z}
}

// Bounds implements physics.Shape
func (b *BoxCollider) Bounds() physics.AABB {
	return physics.NewAABBFromCenter(b.GetCenter(), b.GetWorldSize())
}

// Responds implements physics.Shape
func (b *BoxCollider) Responds(ch physics.Channel) bool {
	return b.Channels&ch != 0
}
