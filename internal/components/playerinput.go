package components

import (
	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TraversalInput receives the player's actions. Axis values are in
// [-1, 1].
type TraversalInput interface {
	AttachToggle()
	JumpPressed()
	JumpReleased()
	GrappleStart()
	CancelGrapple()
	MoveForward(value float32)
	MoveRight(value float32)
}

// KeyBindings maps actions to keys.
type KeyBindings struct {
	Forward, Back, Left, Right int32
	Attach, Jump, Grapple      int32
	CancelGrapple              int32
}

var DefaultKeyBindings = KeyBindings{
	Forward:       rl.KeyW,
	Back:          rl.KeyS,
	Left:          rl.KeyA,
	Right:         rl.KeyD,
	Attach:        rl.KeyE,
	Jump:          rl.KeySpace,
	Grapple:       rl.KeyF,
	CancelGrapple: rl.KeyX,
}

// PlayerInput polls the keyboard and mouse once per frame and forwards
// them to the traversal component and follow camera on the same object.
// It must run before them.
type PlayerInput struct {
	engine.BaseComponent
	Keys      KeyBindings
	LookSpeed float32

	target TraversalInput
	camera *FollowCamera
}

func NewPlayerInput() *PlayerInput {
	return &PlayerInput{
		Keys:      DefaultKeyBindings,
		LookSpeed: 0.1,
	}
}

func (p *PlayerInput) Start() {
	g := p.GetGameObject()
	p.target = engine.FindComponent[TraversalInput](g)
	p.camera = engine.GetComponent[*FollowCamera](g)
}

func (p *PlayerInput) Update(deltaTime float32) {
	// Mouse look
	if p.camera != nil {
		mouseDelta := rl.GetMouseDelta()
		p.camera.AddLookInput(-mouseDelta.X*p.LookSpeed, mouseDelta.Y*p.LookSpeed)
	}

	if p.target == nil {
		return
	}
	k := p.Keys

	if rl.IsKeyPressed(k.Attach) {
		p.target.AttachToggle()
	}
	if rl.IsKeyPressed(k.Jump) {
		p.target.JumpPressed()
	}
	if rl.IsKeyReleased(k.Jump) {
		p.target.JumpReleased()
	}
	if rl.IsKeyPressed(k.Grapple) {
		p.target.GrappleStart()
	}
	if rl.IsKeyPressed(k.CancelGrapple) {
		p.target.CancelGrapple()
	}

	p.target.MoveForward(Axis(rl.IsKeyDown(k.Forward), rl.IsKeyDown(k.Back)))
	p.target.MoveRight(Axis(rl.IsKeyDown(k.Right), rl.IsKeyDown(k.Left)))
}

// Axis combines a pair of opposing keys into -1, 0 or 1.
func Axis(positive, negative bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}
