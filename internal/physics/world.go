package physics

import (
	"log"

	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Channel selects which shapes a query can hit. Shapes respond to any
// combination of channels.
type Channel uint8

const (
	ChannelWorldStatic Channel = 1 << iota
	ChannelLedge
)

func (c Channel) String() string {
	switch c {
	case ChannelWorldStatic:
		return "world"
	case ChannelLedge:
		return "ledge"
	case ChannelWorldStatic | ChannelLedge:
		return "world|ledge"
	}
	return "none"
}

// ParseChannel maps level file channel names to channels.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "world", "static", "worldStatic":
		return ChannelWorldStatic, true
	case "ledge":
		return ChannelLedge, true
	}
	return 0, false
}

// Shape is anything the world can query against.
type Shape interface {
	GetGameObject() *engine.GameObject
	Bounds() AABB
	Responds(ch Channel) bool
}

// Hit describes the first blocking surface along a probe.
type Hit struct {
	Object   *engine.GameObject
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// minProbeLength rejects degenerate probes.
const minProbeLength = 1e-5

// PhysicsWorld answers line and capsule queries against registered shapes.
// Shapes are static for the lifetime of a level.
type PhysicsWorld struct {
	shapes []Shape
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		shapes: make([]Shape, 0),
	}
}

func (p *PhysicsWorld) AddShape(s Shape) {
	if s == nil || s.GetGameObject() == nil {
		return
	}
	p.shapes = append(p.shapes, s)
}

// RemoveObject drops every shape owned by g.
func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	kept := p.shapes[:0]
	for _, s := range p.shapes {
		if s.GetGameObject() != g {
			kept = append(kept, s)
		}
	}
	p.shapes = kept
}

// Shapes returns the shapes responding to ch, in registration order.
func (p *PhysicsWorld) Shapes(ch Channel) []Shape {
	var result []Shape
	for _, s := range p.shapes {
		if s.Responds(ch) {
			result = append(result, s)
		}
	}
	return result
}

func (p *PhysicsWorld) ShapeCount() int {
	return len(p.shapes)
}

// LogSummary prints the per-channel shape counts.
func (p *PhysicsWorld) LogSummary() {
	log.Printf("Physics: %d shapes (%d world, %d ledge)",
		len(p.shapes), len(p.Shapes(ChannelWorldStatic)), len(p.Shapes(ChannelLedge)))
}

// CastRay traces the segment origin->end and returns the closest hit on a
// shape responding to ch, skipping shapes owned by ignored objects.
func (p *PhysicsWorld) CastRay(origin, end rl.Vector3, ch Channel, ignore ...*engine.GameObject) (Hit, bool) {
	return p.sweep(origin, end, rl.Vector3{}, ch, ignore)
}

// SweepCapsule moves a capsule from origin to end and returns the first
// shape it touches. axis is the capsule's long axis. The capsule is tested
// as its bounding box against each shape, so hits at box edges are
// conservative by up to the capsule radius.
func (p *PhysicsWorld) SweepCapsule(origin, end, axis rl.Vector3, radius, halfHeight float32, ch Channel, ignore ...*engine.GameObject) (Hit, bool) {
	if radius <= 0 || halfHeight <= 0 {
		return Hit{}, false
	}
	if rl.Vector3Length(axis) < minProbeLength {
		axis = engine.Up
	}
	axis = rl.Vector3Normalize(axis)
	return p.sweep(origin, end, capsuleExtents(axis, radius, halfHeight), ch, ignore)
}

func (p *PhysicsWorld) sweep(origin, end, extents rl.Vector3, ch Channel, ignore []*engine.GameObject) (Hit, bool) {
	if !finite(origin) || !finite(end) {
		return Hit{}, false
	}
	delta := rl.Vector3Subtract(end, origin)
	length := rl.Vector3Length(delta)
	if length < minProbeLength {
		return Hit{}, false
	}
	dir := rl.Vector3Scale(delta, 1/length)

	var best Hit
	found := false
	best.Distance = length

	for _, s := range p.shapes {
		if !s.Responds(ch) {
			continue
		}
		owner := s.GetGameObject()
		if owner == nil || !owner.Active || ignored(owner, ignore) {
			continue
		}
		box := s.Bounds()
		t, normal, ok := intersectRay(origin, dir, length, box.Expand(extents))
		if !ok || t > best.Distance || (found && t == best.Distance) {
			continue
		}
		center := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
		best = Hit{
			Object:   owner,
			Point:    box.ClosestPoint(center),
			Normal:   normal,
			Distance: t,
		}
		found = true
	}
	return best, found
}

func ignored(g *engine.GameObject, ignore []*engine.GameObject) bool {
	for _, i := range ignore {
		if i == g {
			return true
		}
	}
	return false
}
