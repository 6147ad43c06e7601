package traversal

import (
	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpatialQuery is satisfied by *physics.PhysicsWorld.
type SpatialQuery interface {
	CastRay(origin, end rl.Vector3, ch physics.Channel, ignore ...*engine.GameObject) (physics.Hit, bool)
	SweepCapsule(origin, end, axis rl.Vector3, radius, halfHeight float32, ch physics.Channel, ignore ...*engine.GameObject) (physics.Hit, bool)
}

// Locomotion is satisfied by *components.CharacterController.
type Locomotion interface {
	SetMode(m components.MovementMode)
	Mode() components.MovementMode
	SetFlightTuning(maxSpeed, braking float32)
	AddMovementInput(direction rl.Vector3, scale float32, force bool)
	ApplyImpulse(impulse rl.Vector3)
	StopImmediately()
	SetOrientationCoupledToMovement(coupled bool)
	Teleport(pos rl.Vector3)
	Velocity() rl.Vector3
	CapsuleHalfHeight() float32
}

// PromptSurface shows a single line of interaction text.
type PromptSurface interface {
	ShowPrompt(text string)
	HidePrompt()
}

// Viewport projects world points to the screen.
type Viewport interface {
	Project(point rl.Vector3) (rl.Vector2, bool)
	Size() (float32, float32)
}

// LedgeSource lists grapple candidates in a stable order.
type LedgeSource interface {
	AllLedges() []*components.Ledge
}

// Control supplies the heading for camera-relative walking.
type Control interface {
	ControlYaw() float32
}

// Deps are the collaborators of a TraversalComponent. Any of them may be
// nil; the matching effect is skipped.
type Deps struct {
	Query    SpatialQuery
	Movement Locomotion
	Prompt   PromptSurface
	Ledges   LedgeSource
	Viewport Viewport
	Control  Control
	Marker   *components.GrappleMarker
}

type nopQuery struct{}

func (nopQuery) CastRay(rl.Vector3, rl.Vector3, physics.Channel, ...*engine.GameObject) (physics.Hit, bool) {
	return physics.Hit{}, false
}

func (nopQuery) SweepCapsule(rl.Vector3, rl.Vector3, rl.Vector3, float32, float32, physics.Channel, ...*engine.GameObject) (physics.Hit, bool) {
	return physics.Hit{}, false
}

type nopLocomotion struct{}

func (nopLocomotion) SetMode(components.MovementMode)            {}
func (nopLocomotion) Mode() components.MovementMode              { return components.MovementWalking }
func (nopLocomotion) SetFlightTuning(float32, float32)           {}
func (nopLocomotion) AddMovementInput(rl.Vector3, float32, bool) {}
func (nopLocomotion) ApplyImpulse(rl.Vector3)                    {}
func (nopLocomotion) StopImmediately()                           {}
func (nopLocomotion) SetOrientationCoupledToMovement(bool)       {}
func (nopLocomotion) Teleport(rl.Vector3)                        {}
func (nopLocomotion) Velocity() rl.Vector3                       { return rl.Vector3{} }
func (nopLocomotion) CapsuleHalfHeight() float32                 { return 0 }

type nopPrompt struct{}

func (nopPrompt) ShowPrompt(string) {}
func (nopPrompt) HidePrompt()       {}
