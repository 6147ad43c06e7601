package traversal

import (
	"math"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// probeForwardWall casts a short ray along the facing direction and
// classifies the hit as a climbable wall.
func (c *TraversalComponent) probeForwardWall() {
	g := c.GetGameObject()
	origin := g.WorldPosition()
	end := rl.Vector3Add(origin, rl.Vector3Scale(g.Forward(), c.Tuning.WallProbeLength))

	hit, ok := c.query.CastRay(origin, end, physics.ChannelWorldStatic, c.ignoreList()...)
	if ok && components.IsClimbableWall(hit.Object) {
		switch {
		case c.state.SelectedWall.Is(hit.Object):
			if !c.state.SelectedLedge.IsValid() {
				if p := c.modePrompt(); p != "" {
					c.showPrompt(p)
				}
			}
		case c.state.Mode == ModeClimbing && c.state.IsRotating:
			// Turning onto a wrap-around face; the old face stays in view
			// until the turn completes.
		default:
			c.WallDetected(hit.Object, hit.Normal)
		}
		return
	}

	c.WallUndetected()
}

// WallDetected records a new candidate wall and its normal as the
// rotation target. While climbing this is a wrap-around.
func (c *TraversalComponent) WallDetected(wall *engine.GameObject, normal rl.Vector3) {
	if wall == nil {
		return
	}
	c.state.SelectedWall.Set(wall)
	if h, ok := horizontal(normal); ok {
		c.state.RotateNormal = h
	}

	switch c.state.Mode {
	case ModeClimbing:
		c.beginRotation(normal, c.Tuning.WallRotationThreshold)
	case ModeGrounded:
		if !c.state.SelectedLedge.IsValid() {
			c.showPrompt(PromptClimb)
		}
	}
}

// WallUndetected drops the selected wall. Losing the wall while
// climbing detaches.
func (c *TraversalComponent) WallUndetected() {
	if !c.state.SelectedWall.IsValid() {
		return
	}
	c.state.SelectedWall.Clear()
	if c.state.Mode == ModeClimbing {
		c.Detach()
		return
	}
	c.hidePrompt(PromptClimb)
}

// probeLateralWalls looks diagonally ahead on the side the character is
// moving toward for an adjacent wall face.
func (c *TraversalComponent) probeLateralWalls() {
	if c.climbLateral == 0 {
		return
	}
	g := c.GetGameObject()
	angle := c.Tuning.LateralWallProbeAngle
	if c.climbLateral > 0 {
		// Right is negative yaw.
		angle = -angle
	}
	dir := engine.DirectionFromYaw(g.Yaw() + angle)
	origin := g.WorldPosition()
	end := rl.Vector3Add(origin, rl.Vector3Scale(dir, c.Tuning.LateralWallProbeLength))

	hit, ok := c.query.CastRay(origin, end, physics.ChannelWorldStatic, c.ignoreList()...)
	if !ok || !components.IsClimbableWall(hit.Object) {
		return
	}
	n, ok := horizontal(hit.Normal)
	if !ok || rl.Vector3DotProduct(n, c.state.RotateNormal) > 0.999 {
		return
	}
	c.state.SelectedWall.Set(hit.Object)
	c.beginRotation(n, c.Tuning.WallRotationThreshold)
}

// updateLedgeSelection sweeps a sideways capsule upward in front of the
// character on the ledge channel.
func (c *TraversalComponent) updateLedgeSelection() {
	if c.state.Mode != ModeGrounded && c.state.Mode != ModeClimbing {
		c.clearSelectedLedge()
		return
	}

	g := c.GetGameObject()
	t := c.Tuning
	origin := rl.Vector3Add(g.WorldPosition(), rl.Vector3Scale(g.Forward(), t.LedgeProbeForward))
	origin.Y -= t.LedgeProbeDrop
	end := rl.Vector3Add(origin, rl.Vector3Scale(engine.Up, t.LedgeProbeHeight))

	hit, ok := c.query.SweepCapsule(origin, end, g.Right(), t.LedgeProbeRadius, t.LedgeProbeHalfHeight,
		physics.ChannelLedge, c.ignoreList()...)
	if ok && components.IsLedge(hit.Object) && !c.state.CurrentLedge.Is(hit.Object) {
		c.state.SelectedLedge.Set(hit.Object)
		c.showPrompt(PromptJumpToLedge)
		return
	}

	c.clearSelectedLedge()
}

func (c *TraversalComponent) clearSelectedLedge() {
	if !c.state.SelectedLedge.IsValid() {
		return
	}
	c.state.SelectedLedge.Clear()
	c.hidePrompt(PromptJumpToLedge)
}

// locateTarget picks the nearest on-screen ledge within grapple range,
// excluding the held one. Ties keep the first ledge in registry order.
func (c *TraversalComponent) locateTarget() {
	g := c.GetGameObject()
	pos := g.WorldPosition()

	var (
		best      *engine.GameObject
		bestPoint rl.Vector3
		bestDist  = float32(math.Inf(1))
	)

	if c.ledges != nil {
		for _, ledge := range c.ledges.AllLedges() {
			obj := ledge.GetGameObject()
			if obj == nil || c.state.CurrentLedge.Is(obj) {
				continue
			}
			p, ok := ledge.ClosestPoint(pos)
			if !ok {
				continue
			}
			d := rl.Vector3Distance(pos, p)
			if math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) || d <= 0 || d > c.Tuning.GrappleMaxRange {
				continue
			}
			if !c.onScreen(p) {
				continue
			}
			if d < bestDist {
				best, bestPoint, bestDist = obj, p, d
			}
		}
	}

	if best == nil {
		c.state.TargetLedge.Clear()
		c.state.HasGrapplePoint = false
		c.showMarker(false)
		return
	}

	c.state.TargetLedge.Set(best)
	c.state.GrapplePoint = bestPoint
	c.state.HasGrapplePoint = true
	if c.marker != nil {
		c.marker.MoveTo(bestPoint)
		c.marker.ShowTarget(true)
	}
}

func (c *TraversalComponent) onScreen(p rl.Vector3) bool {
	if c.viewport == nil {
		return true
	}
	screen, ok := c.viewport.Project(p)
	if !ok {
		return false
	}
	w, h := c.viewport.Size()
	return screen.X >= 0 && screen.X <= w && screen.Y >= 0 && screen.Y <= h
}

// refreshLateralLedges probes left and right of the hands for ledges
// that continue the current one.
func (c *TraversalComponent) refreshLateralLedges() {
	g := c.GetGameObject()
	t := c.Tuning
	hand := rl.Vector3Add(g.WorldPosition(), rl.Vector3Scale(engine.Up, c.halfHeight()+t.HoldOffsetUp-t.LateralLedgeProbeDrop))
	right := g.Right()
	forward := g.Forward()

	probe := func(side float32) *engine.GameObject {
		origin := rl.Vector3Add(hand, rl.Vector3Scale(right, side*t.LateralLedgeOffset))
		end := rl.Vector3Add(origin, rl.Vector3Scale(forward, t.LateralLedgeProbeLength))
		hit, ok := c.query.CastRay(origin, end, physics.ChannelLedge, c.ignoreList()...)
		if !ok || !components.IsLedge(hit.Object) {
			return nil
		}
		return hit.Object
	}

	c.state.RightLedge.Set(probe(1))
	c.state.LeftLedge.Set(probe(-1))
}
