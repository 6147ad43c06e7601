package traversal

import (
	"wallclimb/internal/components"
)

// AttachToggle starts climbing the selected wall, or detaches when
// already climbing. Ignored while holding or grappling.
func (c *TraversalComponent) AttachToggle() {
	switch c.state.Mode {
	case ModeClimbing:
		c.Detach()
	case ModeGrounded:
		if c.resolve(c.state.SelectedWall) == nil {
			return
		}
		c.enterClimbing()
	}
}

func (c *TraversalComponent) enterClimbing() {
	c.setMode(ModeClimbing)

	c.movement.SetMode(components.MovementFlying)
	c.movement.SetFlightTuning(c.Tuning.ClimbFlySpeed, c.Tuning.ClimbBraking)
	c.movement.StopImmediately()
	c.movement.SetOrientationCoupledToMovement(false)

	c.beginRotation(c.state.RotateNormal, c.Tuning.WallRotationThreshold)
	c.showPrompt(PromptStopClimbing)
}

// Detach leaves Climbing for Grounded.
func (c *TraversalComponent) Detach() {
	if c.state.Mode != ModeClimbing {
		return
	}
	c.setMode(ModeGrounded)

	c.movement.SetMode(components.MovementWalking)
	c.movement.SetOrientationCoupledToMovement(true)
	c.Anim.AnimRate = 1
	c.hidePrompt(PromptStopClimbing)
	c.stopRotation()
	c.climbLateral = 0
}
