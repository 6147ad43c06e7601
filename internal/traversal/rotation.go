package traversal

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// beginRotation starts turning the character to face into normal. Only
// the horizontal part of normal is used.
func (c *TraversalComponent) beginRotation(normal rl.Vector3, threshold float32) {
	h, ok := horizontal(normal)
	if !ok {
		return
	}
	c.state.RotateNormal = h
	c.state.rotateThreshold = threshold
	c.state.IsRotating = true
}

func (c *TraversalComponent) stopRotation() {
	c.state.IsRotating = false
}

// rotateStep is a bang-bang controller: a fixed yaw step toward the
// sign of dot(normal, right) until the dot falls under the threshold
// while facing the surface.
func (c *TraversalComponent) rotateStep() {
	g := c.GetGameObject()
	if g == nil {
		return
	}

	n := c.state.RotateNormal
	dot := rl.Vector3DotProduct(n, g.Right())
	facing := rl.Vector3DotProduct(n, g.Forward()) <= 0

	if facing && abs(dot) < c.state.rotateThreshold {
		c.state.IsRotating = false
		return
	}

	// Facing straight away gives dot == 0; any direction works.
	step := c.Tuning.RotationStep
	if dot < 0 {
		step = -step
	}
	g.AddYaw(step)
}

// rotationError is |dot(normal, right)| for the current target.
func (c *TraversalComponent) rotationError() float32 {
	g := c.GetGameObject()
	if g == nil {
		return 0
	}
	return abs(rl.Vector3DotProduct(c.state.RotateNormal, g.Right()))
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
