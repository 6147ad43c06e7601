// Package traversal implements wall climbing, ledge hanging, ledge vaults
// and the timed grapple for a third-person character.
package traversal

import (
	"log"
	"math"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// State is the character's traversal state. It is mutated only by the
// owning TraversalComponent.
type State struct {
	Mode Mode

	IsRotating      bool
	RotateNormal    rl.Vector3
	rotateThreshold float32

	SelectedWall  engine.GameObjectRef
	SelectedLedge engine.GameObjectRef
	CurrentLedge  engine.GameObjectRef
	TargetLedge   engine.GameObjectRef
	LeftLedge     engine.GameObjectRef
	RightLedge    engine.GameObjectRef

	GrapplePoint    rl.Vector3
	GrappleNormal   rl.Vector3
	HasGrapplePoint bool

	MoveDirection float32
	CurrentPrompt string
}

// TraversalComponent owns the traversal state machine for one character.
// Add it before the character's movement component so it ticks first.
type TraversalComponent struct {
	engine.BaseComponent

	Tuning Tuning
	Anim   AnimParams

	// ModeChanged fires after every mode transition.
	ModeChanged engine.EventWithArg[ModeChange]

	state State

	query    SpatialQuery
	movement Locomotion
	prompt   PromptSurface
	ledges   LedgeSource
	viewport Viewport
	control  Control
	marker   *components.GrappleMarker

	hasMovement bool
	hasPrompt   bool

	timers       engine.Timers
	grappleTimer engine.TimerHandle
	grappleGen   uint64
	grappleGoal  rl.Vector3

	climbLateral float32
}

func NewTraversalComponent(tuning Tuning, deps Deps) *TraversalComponent {
	c := &TraversalComponent{
		Tuning: tuning,
		Anim:   AnimParams{AnimRate: 1},
	}
	c.SetDeps(deps)
	return c
}

// SetDeps replaces the collaborators. Nil collaborators are swapped for
// no-op implementations.
func (c *TraversalComponent) SetDeps(deps Deps) {
	c.query = deps.Query
	if c.query == nil {
		c.query = nopQuery{}
	}
	c.movement = deps.Movement
	c.hasMovement = c.movement != nil
	if !c.hasMovement {
		c.movement = nopLocomotion{}
	}
	c.prompt = deps.Prompt
	c.hasPrompt = c.prompt != nil
	if !c.hasPrompt {
		c.prompt = nopPrompt{}
	}
	c.ledges = deps.Ledges
	c.viewport = deps.Viewport
	c.control = deps.Control
	c.marker = deps.Marker
}

func (c *TraversalComponent) Start() {
	if !c.hasPrompt {
		log.Printf("Traversal: no prompt surface, prompts disabled")
	}
	if !c.hasMovement {
		log.Printf("Traversal: no locomotion controller, movement disabled")
	}
	if c.marker == nil {
		log.Printf("Traversal: no grapple marker")
	}
}

// State returns a copy of the current traversal state.
func (c *TraversalComponent) State() State {
	return c.state
}

func (c *TraversalComponent) Mode() Mode {
	return c.state.Mode
}

// Update runs one tick. The step order is fixed: animation rate,
// rotation, grapple travel, ledge and grapple-target perception, lateral
// wall probes, forward wall probe, wall-lost cleanup.
func (c *TraversalComponent) Update(deltaTime float32) {
	g := c.GetGameObject()
	if g == nil {
		return
	}

	c.timers.Advance(deltaTime)

	c.updateAnimRate()

	if c.state.IsRotating {
		c.rotateStep()
	}

	switch c.state.Mode {
	case ModeGrappling:
		c.grappleTravel(deltaTime)
		return
	case ModeGrapplePreparing:
		return
	}

	c.updateLedgeSelection()
	c.locateTarget()

	if c.state.Mode == ModeClimbing {
		c.probeLateralWalls()
	}

	if c.state.Mode == ModeHolding {
		return
	}

	c.probeForwardWall()
}

func (c *TraversalComponent) updateAnimRate() {
	var maxSpeed float32
	switch c.state.Mode {
	case ModeClimbing:
		maxSpeed = c.Tuning.ClimbFlySpeed
	case ModeHolding:
		maxSpeed = c.Tuning.HoldFlySpeed
	default:
		c.Anim.AnimRate = 1
		return
	}
	if maxSpeed <= 0 {
		c.Anim.AnimRate = 0
		return
	}
	rate := rl.Vector3Length(c.movement.Velocity()) / maxSpeed
	if rate > 1 || math.IsNaN(float64(rate)) {
		rate = 1
	}
	c.Anim.AnimRate = rate
}

// setMode is the single place modes change. Leaving GrapplePreparing for
// anything but Grappling cancels the pending grapple.
func (c *TraversalComponent) setMode(m Mode) {
	prev := c.state.Mode
	if prev == m {
		return
	}
	if prev == ModeGrapplePreparing && m != ModeGrappling {
		c.cancelGrappleTimer()
	}
	if prev == ModeGrappling {
		c.Anim.CableVisible = false
	}

	c.state.Mode = m
	c.Anim.IsClimbing = m == ModeClimbing
	c.Anim.IsHolding = m == ModeHolding
	c.Anim.IsGrappling = m == ModeGrappling

	log.Printf("Traversal: %s -> %s", prev, m)
	c.ModeChanged.Invoke(ModeChange{From: prev, To: m})
}

// Reset returns to Grounded defaults, cancelling any grapple.
func (c *TraversalComponent) Reset() {
	c.cancelGrappleTimer()
	c.setMode(ModeGrounded)
	c.hideCurrentPrompt()
	c.stopRotation()

	c.state.SelectedWall.Clear()
	c.state.SelectedLedge.Clear()
	c.state.CurrentLedge.Clear()
	c.state.TargetLedge.Clear()
	c.state.LeftLedge.Clear()
	c.state.RightLedge.Clear()
	c.state.HasGrapplePoint = false
	c.state.MoveDirection = 0
	c.climbLateral = 0

	c.Anim = AnimParams{AnimRate: 1}
	c.showMarker(false)

	c.movement.SetMode(components.MovementWalking)
	c.movement.SetOrientationCoupledToMovement(true)
}

// resolve returns the live object behind ref, or nil.
func (c *TraversalComponent) resolve(ref engine.GameObjectRef) *engine.GameObject {
	g := c.GetGameObject()
	if g == nil || g.Scene == nil {
		return nil
	}
	obj := ref.Get(g.Scene)
	if obj == nil || !obj.Active {
		return nil
	}
	return obj
}

// ignoreList is the perception filter: self and the grapple marker.
func (c *TraversalComponent) ignoreList() []*engine.GameObject {
	ignore := []*engine.GameObject{c.GetGameObject()}
	if c.marker != nil {
		if m := c.marker.GetGameObject(); m != nil {
			ignore = append(ignore, m)
		}
	}
	return ignore
}

func (c *TraversalComponent) teleport(pos rl.Vector3) {
	if c.hasMovement {
		c.movement.Teleport(pos)
		return
	}
	if g := c.GetGameObject(); g != nil {
		g.Transform.Position = pos
	}
}

func (c *TraversalComponent) halfHeight() float32 {
	return c.movement.CapsuleHalfHeight()
}

func (c *TraversalComponent) showMarker(show bool) {
	if c.marker != nil {
		c.marker.ShowTarget(show)
	}
}

// horizontal flattens v onto the ground plane and normalizes it. ok is
// false for near-vertical vectors.
func horizontal(v rl.Vector3) (rl.Vector3, bool) {
	h := rl.Vector3{X: v.X, Z: v.Z}
	l := rl.Vector3Length(h)
	if l < 1e-3 || math.IsNaN(float64(l)) {
		return rl.Vector3{}, false
	}
	return rl.Vector3Scale(h, 1/l), true
}

func finite(v rl.Vector3) bool {
	for _, f := range []float32{v.X, v.Y, v.Z} {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
