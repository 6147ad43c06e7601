package traversal

import (
	"math"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func clampAxis(v float32) float32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// controlYaw is the camera heading, or the character's own when no
// camera is wired.
func (c *TraversalComponent) controlYaw() float32 {
	if c.control != nil {
		return c.control.ControlYaw()
	}
	return c.GetGameObject().Yaw()
}

// MoveForward climbs up and down while Climbing and walks
// camera-relative while Grounded.
func (c *TraversalComponent) MoveForward(value float32) {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	value = clampAxis(value)
	if value == 0 {
		return
	}

	switch c.state.Mode {
	case ModeClimbing:
		c.movement.AddMovementInput(g.Up(), value, false)
	case ModeGrounded:
		c.movement.AddMovementInput(engine.DirectionFromYaw(c.controlYaw()), value, false)
	}
}

// MoveRight strafes along the wall while Climbing, shimmies while
// Holding and walks camera-relative while Grounded.
func (c *TraversalComponent) MoveRight(value float32) {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	value = clampAxis(value)

	switch c.state.Mode {
	case ModeClimbing:
		c.climbLateral = value
		if value != 0 {
			c.movement.AddMovementInput(g.Right(), value, false)
		}
	case ModeHolding:
		c.shimmy(value)
	case ModeGrounded:
		if value != 0 {
			right := rl.Vector3CrossProduct(engine.DirectionFromYaw(c.controlYaw()), engine.Up)
			c.movement.AddMovementInput(right, value, false)
		}
	}
}

// JumpPressed releases a held ledge, grabs a selected ledge, or jumps.
func (c *TraversalComponent) JumpPressed() {
	if c.GetGameObject() == nil {
		return
	}

	switch c.state.Mode {
	case ModeHolding:
		c.Release()
	case ModeGrounded, ModeClimbing:
		if ledge := c.resolve(c.state.SelectedLedge); ledge != nil {
			c.tryGrabLedge(ledge)
			return
		}
		if c.state.Mode == ModeGrounded && c.movement.Mode() == components.MovementWalking {
			c.movement.ApplyImpulse(rl.Vector3Scale(engine.Up, c.Tuning.JumpImpulse))
		}
	}
}

// JumpReleased ends the jumping-off pulse.
func (c *TraversalComponent) JumpReleased() {
	c.Anim.IsJumpingOff = false
}

// GrappleStart arms the grapple toward the current target ledge.
func (c *TraversalComponent) GrappleStart() {
	c.StartGrapple()
}
