// Package surface keeps the ordered sets of climbable walls and ledges
// found in a scene.
package surface

import (
	"log"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"
)

// Registry is populated once per level. Order follows the scene, which
// makes nearest-ledge ties resolve to the earliest object.
type Registry struct {
	ledges []*components.Ledge
	walls  []*components.ClimbableWall
	byUID  map[uint64]*engine.GameObject
	scene  *engine.Scene
}

func NewRegistry() *Registry {
	return &Registry{
		byUID: make(map[uint64]*engine.GameObject),
	}
}

// Populate classifies every object in the scene by its marker components.
func (r *Registry) Populate(scene *engine.Scene) {
	if scene == nil {
		return
	}
	r.scene = scene
	for _, g := range scene.GameObjects {
		r.add(g)
	}
	log.Printf("Surfaces: %d ledges, %d climbable walls", len(r.ledges), len(r.walls))
}

// add registers g if it carries a surface marker. An object may be both
// a wall and a ledge. Registering the same object twice is a no-op.
func (r *Registry) add(g *engine.GameObject) {
	if g == nil {
		return
	}
	if _, ok := r.byUID[g.UID]; ok {
		return
	}
	added := false
	if ledge := engine.GetComponent[*components.Ledge](g); ledge != nil {
		r.ledges = append(r.ledges, ledge)
		added = true
	}
	if wall := engine.GetComponent[*components.ClimbableWall](g); wall != nil {
		r.walls = append(r.walls, wall)
		added = true
	}
	if added {
		r.byUID[g.UID] = g
	}
}

func (r *Registry) alive(g *engine.GameObject) bool {
	if g == nil || !g.Active {
		return false
	}
	if r.scene != nil && g.Scene != r.scene {
		return false
	}
	return true
}

// AllLedges returns the live ledges in registration order.
func (r *Registry) AllLedges() []*components.Ledge {
	out := make([]*components.Ledge, 0, len(r.ledges))
	for _, l := range r.ledges {
		if r.alive(l.GetGameObject()) {
			out = append(out, l)
		}
	}
	return out
}

// Walls returns the live climbable walls in registration order.
func (r *Registry) Walls() []*components.ClimbableWall {
	out := make([]*components.ClimbableWall, 0, len(r.walls))
	for _, w := range r.walls {
		if r.alive(w.GetGameObject()) {
			out = append(out, w)
		}
	}
	return out
}
