package components

import (
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ClimbableWall marks an object as a wall the character can attach to.
type ClimbableWall struct {
	engine.BaseComponent
}

// Ledge marks an object as a grabbable edge. Its footprint is the box
// collider on the same object.
type Ledge struct {
	engine.BaseComponent
}

// Footprint returns the ledge's collision box.
func (l *Ledge) Footprint() (physics.AABB, bool) {
	g := l.GetGameObject()
	if g == nil {
		return physics.AABB{}, false
	}
	col := engine.GetComponent[*BoxCollider](g)
	if col == nil {
		return physics.AABB{}, false
	}
	return col.Bounds(), true
}

// ClosestPoint returns the point of the footprint nearest to p.
func (l *Ledge) ClosestPoint(p rl.Vector3) (rl.Vector3, bool) {
	box, ok := l.Footprint()
	if !ok {
		return rl.Vector3{}, false
	}
	return box.ClosestPoint(p), true
}

// Top returns the height of the ledge lip.
func (l *Ledge) Top() (float32, bool) {
	box, ok := l.Footprint()
	if !ok {
		return 0, false
	}
	return box.Max.Y, true
}

// GrappleMarker is the on-screen reticle placed at the current grapple
// target. It is never a query target.
type GrappleMarker struct {
	engine.BaseComponent
	Visible bool
	Color   rl.Color
	Radius  float32
}

func NewGrappleMarker() *GrappleMarker {
	return &GrappleMarker{
		Color:  rl.Gold,
		Radius: 0.12,
	}
}

func (m *GrappleMarker) ShowTarget(show bool) {
	m.Visible = show
}

func (m *GrappleMarker) MoveTo(p rl.Vector3) {
	if g := m.GetGameObject(); g != nil {
		g.Transform.Position = p
	}
}

func (m *GrappleMarker) Draw() {
	g := m.GetGameObject()
	if g == nil || !m.Visible {
		return
	}
	rl.DrawSphereWires(g.WorldPosition(), m.Radius, 8, 8, m.Color)
}

func IsClimbableWall(g *engine.GameObject) bool {
	return engine.GetComponent[*ClimbableWall](g) != nil
}

func IsLedge(g *engine.GameObject) bool {
	return engine.GetComponent[*Ledge](g) != nil
}

// LedgeOf returns the Ledge marker on g, or nil.
func LedgeOf(g *engine.GameObject) *Ledge {
	return engine.GetComponent[*Ledge](g)
}

func init() {
	engine.RegisterScript("ClimbableWall", func(map[string]any) engine.Component {
		return &ClimbableWall{}
	})
	engine.RegisterScript("Ledge", func(map[string]any) engine.Component {
		return &Ledge{}
	})
	engine.RegisterScript("GrappleMarker", grappleMarkerFactory)
}

func grappleMarkerFactory(props map[string]any) engine.Component {
	m := NewGrappleMarker()
	if v, ok := props["radius"].(float64); ok && v > 0 {
		m.Radius = float32(v)
	}
	return m
}
