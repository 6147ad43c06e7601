package components

import (
	"math"

	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MovementMode selects how the controller integrates velocity.
type MovementMode int

const (
	MovementWalking MovementMode = iota
	MovementFlying
	MovementFalling
)

func (m MovementMode) String() string {
	switch m {
	case MovementWalking:
		return "Walking"
	case MovementFlying:
		return "Flying"
	case MovementFalling:
		return "Falling"
	}
	return "Unknown"
}

// ObstacleSource supplies the shapes the character collides with.
type ObstacleSource interface {
	Shapes(ch physics.Channel) []physics.Shape
}

// CharacterController moves a capsule-shaped character with collision
// against world-static geometry. Position is the capsule center.
type CharacterController struct {
	engine.BaseComponent

	Height float32 // Total height of the capsule
	Radius float32

	WalkSpeed    float32
	AirControl   float32 // Fraction of walk steering while falling
	Gravity      float32 // Positive = down
	RotationRate float32 // Degrees per second when orienting to movement
	FloorY       float32

	FlyAcceleration float32
	MaxFlySpeed     float32
	BrakingFlying   float32
	IgnoreMoveInput bool
	Obstacles       ObstacleSource

	// Runtime state
	mode         MovementMode
	velocity     rl.Vector3
	pendingInput rl.Vector3
	orientToMove bool
	isGrounded   bool
}

func NewCharacterController() *CharacterController {
	return &CharacterController{
		Height:          1.8,
		Radius:          0.3,
		WalkSpeed:       4.0,
		AirControl:      0.35,
		Gravity:         20.0,
		RotationRate:    540.0,
		FlyAcceleration: 20.0,
		MaxFlySpeed:     2.0,
		BrakingFlying:   8.0,
		orientToMove:    true,
	}
}

func (c *CharacterController) Mode() MovementMode {
	return c.mode
}

// SetMode switches the integration mode. Entering Walking drops any
// vertical velocity.
func (c *CharacterController) SetMode(m MovementMode) {
	if m == MovementWalking {
		c.velocity.Y = 0
	}
	c.mode = m
}

func (c *CharacterController) SetFlightTuning(maxSpeed, braking float32) {
	c.MaxFlySpeed = maxSpeed
	c.BrakingFlying = braking
}

// AddMovementInput queues a movement request for the next update.
// Forced input is accepted even when move input is ignored.
func (c *CharacterController) AddMovementInput(direction rl.Vector3, scale float32, force bool) {
	if c.IgnoreMoveInput && !force {
		return
	}
	c.pendingInput = rl.Vector3Add(c.pendingInput, rl.Vector3Scale(direction, scale))
}

// ApplyImpulse adds a velocity change. An upward impulse while walking
// launches the character.
func (c *CharacterController) ApplyImpulse(impulse rl.Vector3) {
	c.velocity = rl.Vector3Add(c.velocity, impulse)
	if c.mode == MovementWalking && impulse.Y > 0 {
		c.mode = MovementFalling
		c.isGrounded = false
	}
}

func (c *CharacterController) StopImmediately() {
	c.velocity = rl.Vector3Zero()
	c.pendingInput = rl.Vector3Zero()
}

func (c *CharacterController) SetOrientationCoupledToMovement(coupled bool) {
	c.orientToMove = coupled
}

func (c *CharacterController) OrientationCoupled() bool {
	return c.orientToMove
}

// Teleport places the character without collision.
func (c *CharacterController) Teleport(pos rl.Vector3) {
	if g := c.GetGameObject(); g != nil {
		g.Transform.Position = pos
	}
}

func (c *CharacterController) Velocity() rl.Vector3 {
	return c.velocity
}

// Speed returns the magnitude of the current velocity.
func (c *CharacterController) Speed() float32 {
	return rl.Vector3Length(c.velocity)
}

func (c *CharacterController) CapsuleHalfHeight() float32 {
	return c.Height / 2
}

func (c *CharacterController) CapsuleRadius() float32 {
	return c.Radius
}

func (c *CharacterController) IsGrounded() bool {
	return c.isGrounded
}

func (c *CharacterController) Update(deltaTime float32) {
	g := c.GetGameObject()
	if g == nil || deltaTime <= 0 {
		return
	}

	input := c.pendingInput
	c.pendingInput = rl.Vector3Zero()
	if l := rl.Vector3Length(input); l > 1 {
		input = rl.Vector3Scale(input, 1/l)
	}

	switch c.mode {
	case MovementWalking:
		c.velocity.X = input.X * c.WalkSpeed
		c.velocity.Z = input.Z * c.WalkSpeed
		if !c.isGrounded || c.velocity.Y > 0 {
			c.velocity.Y -= c.Gravity * deltaTime
		} else {
			// Keep a small downward velocity to detect ground
			c.velocity.Y = -0.1
		}
	case MovementFalling:
		if input.X != 0 || input.Z != 0 {
			k := clamp01(c.AirControl * deltaTime * 10)
			c.velocity.X += (input.X*c.WalkSpeed - c.velocity.X) * k
			c.velocity.Z += (input.Z*c.WalkSpeed - c.velocity.Z) * k
		}
		c.velocity.Y -= c.Gravity * deltaTime
	case MovementFlying:
		c.integrateFlying(input, deltaTime)
	}

	if c.orientToMove && c.mode != MovementFlying && (input.X != 0 || input.Z != 0) {
		c.rotateTowards(g, input, deltaTime)
	}

	c.isGrounded = false
	c.Move(rl.Vector3Scale(c.velocity, deltaTime))

	switch c.mode {
	case MovementWalking:
		if !c.isGrounded && c.velocity.Y < -1 {
			c.mode = MovementFalling
		}
	case MovementFalling:
		if c.isGrounded && c.velocity.Y <= 0 {
			c.SetMode(MovementWalking)
		}
	}
}

func (c *CharacterController) integrateFlying(input rl.Vector3, deltaTime float32) {
	if input.X != 0 || input.Y != 0 || input.Z != 0 {
		c.velocity = rl.Vector3Add(c.velocity, rl.Vector3Scale(input, c.FlyAcceleration*deltaTime))
	} else if speed := rl.Vector3Length(c.velocity); speed > 0 {
		next := speed - c.BrakingFlying*deltaTime
		if next <= 0 {
			c.velocity = rl.Vector3Zero()
		} else {
			c.velocity = rl.Vector3Scale(c.velocity, next/speed)
		}
	}

	if speed := rl.Vector3Length(c.velocity); c.MaxFlySpeed >= 0 && speed > c.MaxFlySpeed {
		c.velocity = rl.Vector3Scale(c.velocity, c.MaxFlySpeed/speed)
	}
}

func (c *CharacterController) rotateTowards(g *engine.GameObject, dir rl.Vector3, deltaTime float32) {
	target := engine.YawFromDirection(dir)
	delta := engine.WrapDegrees(target - g.Yaw())
	step := c.RotationRate * deltaTime
	if float32(math.Abs(float64(delta))) <= step {
		g.SetYaw(target)
		return
	}
	if delta > 0 {
		g.AddYaw(step)
	} else {
		g.AddYaw(-step)
	}
}

// Move moves the character by the given motion vector, resolving
// collisions. Returns the actual displacement.
func (c *CharacterController) Move(motion rl.Vector3) rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}

	originalPos := g.Transform.Position

	// Try to move horizontally first
	horizontalMotion := rl.Vector3{X: motion.X, Y: 0, Z: motion.Z}
	if horizontalMotion.X != 0 || horizontalMotion.Z != 0 {
		c.moveWithCollision(g, horizontalMotion)
	}

	// Then move vertically
	verticalMotion := rl.Vector3{X: 0, Y: motion.Y, Z: 0}
	if verticalMotion.Y != 0 {
		c.moveWithCollision(g, verticalMotion)
	}

	return rl.Vector3Subtract(g.Transform.Position, originalPos)
}

func (c *CharacterController) bounds(pos rl.Vector3) physics.AABB {
	return physics.NewAABBFromCenter(pos, rl.Vector3{X: c.Radius * 2, Y: c.Height, Z: c.Radius * 2})
}

func (c *CharacterController) moveWithCollision(g *engine.GameObject, motion rl.Vector3) {
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, motion)

	if c.Obstacles != nil {
		for _, shape := range c.Obstacles.Shapes(physics.ChannelWorldStatic) {
			other := shape.GetGameObject()
			if other == g || (other != nil && !other.Active) {
				continue
			}

			pushOut := c.bounds(g.Transform.Position).Resolve(shape.Bounds())
			if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
				continue
			}
			g.Transform.Position = rl.Vector3Add(g.Transform.Position, pushOut)

			if pushOut.Y > 0 {
				c.isGrounded = true
				if c.velocity.Y < 0 {
					c.velocity.Y = 0
				}
			} else if pushOut.Y < 0 && c.velocity.Y > 0 {
				c.velocity.Y = 0
			}
		}
	}

	// Floor plane
	feet := g.Transform.Position.Y - c.Height/2
	if feet <= c.FloorY {
		g.Transform.Position.Y = c.FloorY + c.Height/2
		c.isGrounded = true
		if c.velocity.Y < 0 {
			c.velocity.Y = 0
		}
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
