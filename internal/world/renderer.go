package world

import (
	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/traversal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the level, the player capsule and the grapple cable.
type Renderer struct {
	Background  rl.Color
	GridSlices  int32
	GridSpacing float32
	PlayerColor rl.Color
	HoldColor   rl.Color
	CableColor  rl.Color
}

func NewRenderer() *Renderer {
	return &Renderer{
		Background:  rl.NewColor(35, 38, 46, 255),
		GridSlices:  40,
		GridSpacing: 1,
		PlayerColor: rl.SkyBlue,
		HoldColor:   rl.Orange,
		CableColor:  rl.Brown,
	}
}

// Draw renders the 3D scene through the player's camera. It must be
// called between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(w *World) {
	rl.ClearBackground(r.Background)
	if w.Camera == nil {
		return
	}

	rl.BeginMode3D(w.Camera.GetRaylibCamera())
	rl.DrawGrid(r.GridSlices, r.GridSpacing)

	for _, g := range w.Scene.GameObjects {
		if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
			mr.Draw()
		}
	}

	r.drawPlayer(w)

	if w.Marker != nil {
		w.Marker.Draw()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawPlayer(w *World) {
	if w.Player == nil || w.Movement == nil {
		return
	}
	pos := w.Player.WorldPosition()
	half := w.Movement.CapsuleHalfHeight()
	radius := w.Movement.CapsuleRadius()

	color := r.PlayerColor
	mode := traversal.ModeGrounded
	if w.Traversal != nil {
		mode = w.Traversal.Mode()
	}
	if mode == traversal.ModeHolding || mode.IsGrapple() {
		color = r.HoldColor
	}

	top := rl.Vector3{X: pos.X, Y: pos.Y + half - radius, Z: pos.Z}
	bottom := rl.Vector3{X: pos.X, Y: pos.Y - half + radius, Z: pos.Z}
	rl.DrawCapsule(bottom, top, radius, 12, 6, color)
	rl.DrawCapsuleWires(bottom, top, radius, 12, 6, rl.DarkGray)

	// Facing indicator
	nose := rl.Vector3Add(top, rl.Vector3Scale(w.Player.Forward(), radius*1.5))
	rl.DrawLine3D(top, nose, rl.White)

	if w.Traversal != nil && w.Traversal.Anim.CableVisible {
		rl.DrawLine3D(w.Traversal.HandPosition(), w.Traversal.Anim.CableEnd, r.CableColor)
	}
}
