package traversal

import (
	"log"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StartGrapple checks line of sight to the target ledge and arms the
// delayed launch. Refused while a grapple is already under way.
func (c *TraversalComponent) StartGrapple() {
	g := c.GetGameObject()
	if g == nil || c.state.Mode.IsGrapple() {
		return
	}
	target := c.resolve(c.state.TargetLedge)
	if target == nil || !c.state.HasGrapplePoint {
		return
	}

	hit, ok := c.confirmRay(g.WorldPosition(), c.state.GrapplePoint)
	if !ok || hit.Object != target {
		return
	}

	c.state.GrapplePoint = hit.Point
	c.state.GrappleNormal = rl.Vector3Negate(c.facingFor(hit.Normal))

	prev := c.state.Mode
	c.hideCurrentPrompt()
	c.state.SelectedWall.Clear()
	c.state.SelectedLedge.Clear()
	c.state.CurrentLedge.Clear()
	c.climbLateral = 0

	c.setMode(ModeGrapplePreparing)

	if prev != ModeGrounded || c.movement.Mode() != components.MovementWalking {
		// Hang in place until launch.
		c.movement.SetMode(components.MovementFlying)
	}
	c.movement.StopImmediately()
	c.movement.SetOrientationCoupledToMovement(false)
	c.beginRotation(c.state.GrappleNormal, c.Tuning.GrappleRotationThreshold)

	c.grappleGen++
	gen := c.grappleGen
	c.grappleTimer = c.timers.After(c.Tuning.GrappleDelay, func() {
		c.launchGrapple(gen)
	})
}

func (c *TraversalComponent) cancelGrappleTimer() {
	if c.grappleTimer.IsValid() {
		c.timers.Cancel(c.grappleTimer)
		c.grappleTimer = engine.TimerHandle{}
	}
	c.grappleGen++
}

// launchGrapple is the delayed callback. A stale generation or a mode
// change since arming makes it a no-op.
func (c *TraversalComponent) launchGrapple(gen uint64) {
	if gen != c.grappleGen || c.state.Mode != ModeGrapplePreparing {
		return
	}
	c.grappleTimer = engine.TimerHandle{}

	target := c.resolve(c.state.TargetLedge)
	if target == nil {
		log.Printf("Traversal: grapple target gone before launch")
		c.CancelGrapple()
		return
	}

	facing := rl.Vector3Negate(c.state.GrappleNormal)
	c.grappleGoal = c.HoldPosition(hangPoint(target, c.state.GrapplePoint), facing)

	c.setMode(ModeGrappling)
	c.movement.SetMode(components.MovementFlying)
	c.movement.StopImmediately()

	c.Anim.CableVisible = true
	c.Anim.CableEnd = c.state.GrapplePoint
	c.hideCurrentPrompt()
	c.showMarker(false)
}

// grappleTravel moves a fixed fraction of the remaining distance each
// tick and finalizes into Holding on arrival.
func (c *TraversalComponent) grappleTravel(deltaTime float32) {
	g := c.GetGameObject()
	target := c.resolve(c.state.TargetLedge)
	if target == nil {
		log.Printf("Traversal: grapple target gone mid-flight")
		c.CancelGrapple()
		return
	}

	k := c.Tuning.GrappleTravelRate * deltaTime
	if k > 1 {
		k = 1
	}
	if k < 0 {
		k = 0
	}
	next := rl.Vector3Lerp(g.WorldPosition(), c.grappleGoal, k)
	c.teleport(next)
	c.Anim.CableEnd = c.state.GrapplePoint

	if rl.Vector3Distance(next, c.grappleGoal) >= c.Tuning.GrappleArrivalEpsilon {
		return
	}

	c.state.TargetLedge.Clear()
	c.state.HasGrapplePoint = false
	c.enterHolding(target, c.grappleGoal, rl.Vector3Negate(c.state.GrappleNormal))
}

// CancelGrapple aborts a pending or in-flight grapple and drops the
// character.
func (c *TraversalComponent) CancelGrapple() {
	if !c.state.Mode.IsGrapple() {
		return
	}
	c.cancelGrappleTimer()
	c.setMode(ModeGrounded)
	c.stopRotation()
	c.movement.SetOrientationCoupledToMovement(true)
	c.movement.SetMode(components.MovementFalling)
}

// GrapplePending reports whether a launch is scheduled.
func (c *TraversalComponent) GrapplePending() bool {
	return c.timers.Pending(c.grappleTimer)
}
