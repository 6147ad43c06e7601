package traversal

import (
	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// tryGrabLedge confirms the selected ledge with a direct ray before
// grabbing it.
func (c *TraversalComponent) tryGrabLedge(obj *engine.GameObject) {
	ledge := components.LedgeOf(obj)
	if ledge == nil {
		return
	}
	g := c.GetGameObject()
	pos := g.WorldPosition()
	closest, ok := ledge.ClosestPoint(pos)
	if !ok {
		return
	}

	hit, ok := c.confirmRay(pos, closest)
	if !ok || hit.Object != obj {
		return
	}
	c.GrabLedge(obj, hit.Point, hit.Normal)
}

// confirmRay casts on the ledge channel from origin through target,
// extended slightly so a hit on the target face registers.
func (c *TraversalComponent) confirmRay(origin, target rl.Vector3) (physics.Hit, bool) {
	dir := rl.Vector3Subtract(target, origin)
	if rl.Vector3Length(dir) < 1e-5 || !finite(dir) {
		return physics.Hit{}, false
	}
	end := rl.Vector3Add(target, rl.Vector3Scale(rl.Vector3Normalize(dir), c.Tuning.ConfirmProbeExtend))
	return c.query.CastRay(origin, end, physics.ChannelLedge, c.ignoreList()...)
}

// HoldPosition is where the capsule center goes so that the hand socket
// lands on hang while facing along facing.
func (c *TraversalComponent) HoldPosition(hang, facing rl.Vector3) rl.Vector3 {
	up := c.halfHeight() + c.Tuning.HoldOffsetUp
	pos := rl.Vector3Subtract(hang, rl.Vector3Scale(engine.Up, up))
	return rl.Vector3Subtract(pos, rl.Vector3Scale(facing, c.Tuning.HoldOffsetForward))
}

// HandPosition is the hand socket for the current position and facing.
func (c *TraversalComponent) HandPosition() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	up := c.halfHeight() + c.Tuning.HoldOffsetUp
	hand := rl.Vector3Add(g.WorldPosition(), rl.Vector3Scale(engine.Up, up))
	return rl.Vector3Add(hand, rl.Vector3Scale(g.Forward(), c.Tuning.HoldOffsetForward))
}

// hangPoint lifts a contact point on a ledge to the ledge's lip height.
func hangPoint(obj *engine.GameObject, point rl.Vector3) rl.Vector3 {
	if ledge := components.LedgeOf(obj); ledge != nil {
		if top, ok := ledge.Top(); ok {
			point.Y = top
		}
	}
	return point
}

// facingFor returns the direction into a surface with the given normal,
// falling back to the current facing for horizontal surfaces.
func (c *TraversalComponent) facingFor(normal rl.Vector3) rl.Vector3 {
	if h, ok := horizontal(normal); ok {
		return rl.Vector3Negate(h)
	}
	return c.GetGameObject().Forward()
}

// GrabLedge snaps the character to hang from obj at point and enters
// Holding.
func (c *TraversalComponent) GrabLedge(obj *engine.GameObject, point, normal rl.Vector3) {
	if obj == nil || c.state.Mode.IsGrapple() {
		return
	}
	facing := c.facingFor(normal)
	c.enterHolding(obj, c.HoldPosition(hangPoint(obj, point), facing), facing)
}

func (c *TraversalComponent) enterHolding(obj *engine.GameObject, pos, facing rl.Vector3) {
	c.setMode(ModeHolding)

	c.state.CurrentLedge.Set(obj)
	c.state.SelectedLedge.Clear()
	c.state.SelectedWall.Clear()
	c.state.LeftLedge.Clear()
	c.state.RightLedge.Clear()
	c.state.MoveDirection = 0
	c.climbLateral = 0

	c.movement.SetMode(components.MovementFlying)
	c.movement.SetFlightTuning(c.Tuning.HoldFlySpeed, c.Tuning.HoldBraking)
	c.movement.StopImmediately()
	c.movement.SetOrientationCoupledToMovement(false)
	c.teleport(pos)

	c.beginRotation(rl.Vector3Negate(facing), c.Tuning.LedgeRotationThreshold)
	c.Anim.JumpDirection = JumpNone
	c.Anim.Direction = 0
	c.showPrompt(PromptLetGo)
}

// shimmy records lateral input and moves along the ledge only where a
// ledge continues.
func (c *TraversalComponent) shimmy(value float32) {
	c.state.MoveDirection = value
	c.Anim.Direction = value
	if value == 0 {
		return
	}

	c.refreshLateralLedges()
	var next engine.GameObjectRef
	if value > 0 {
		next = c.state.RightLedge
	} else {
		next = c.state.LeftLedge
	}
	if c.resolve(next) == nil {
		return
	}
	c.movement.AddMovementInput(c.GetGameObject().Right(), value, true)
}

// Release lets go of the held ledge. Moving toward an open side vaults
// off that side; anything else drops to walking.
func (c *TraversalComponent) Release() {
	if c.state.Mode != ModeHolding {
		return
	}
	g := c.GetGameObject()
	dir := c.state.MoveDirection

	c.setMode(ModeGrounded)
	c.state.CurrentLedge.Clear()
	c.stopRotation()
	c.movement.SetOrientationCoupledToMovement(true)
	c.hidePrompt(PromptLetGo)

	switch {
	case dir > 0 && c.resolve(c.state.RightLedge) == nil:
		c.vault(g, JumpRight, 1)
	case dir < 0 && c.resolve(c.state.LeftLedge) == nil:
		c.vault(g, JumpLeft, -1)
	default:
		c.movement.SetMode(components.MovementWalking)
	}

	c.state.MoveDirection = 0
	c.state.LeftLedge.Clear()
	c.state.RightLedge.Clear()
	c.Anim.Direction = 0
}

func (c *TraversalComponent) vault(g *engine.GameObject, dir JumpDirection, side float32) {
	impulse := rl.Vector3Add(
		rl.Vector3Scale(g.Right(), side*c.Tuning.JumpOffLateral),
		rl.Vector3Scale(engine.Up, c.Tuning.JumpOffUp),
	)
	c.movement.SetMode(components.MovementFalling)
	c.movement.ApplyImpulse(impulse)
	c.Anim.JumpDirection = dir
	c.Anim.IsJumpingOff = true
}
