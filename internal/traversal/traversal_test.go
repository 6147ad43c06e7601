package traversal

import (
	"math/rand"
	"testing"
	"time"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// wallRig has a climbable wall whose +X face is at x = -0.3 and a
// character at the origin facing it.
func wallRig(t *testing.T) (*rig, *engine.GameObject) {
	r := newRig(t, rl.Vector3{Y: 0.9}, -90)
	wall := r.wall("wall", rl.Vector3{X: -1.3, Y: 1.5}, rl.Vector3{X: 2, Y: 3, Z: 4})
	return r, wall
}

func TestWallClimbScenario(t *testing.T) {
	r, wall := wallRig(t)

	r.tick(1)
	if !r.tc.State().SelectedWall.Is(wall) {
		t.Fatal("wall should be selected")
	}
	if r.prompt.text != PromptClimb {
		t.Errorf("prompt = %q, want %q", r.prompt.text, PromptClimb)
	}
	if n := r.tc.State().RotateNormal; !nearVec(n, rl.Vector3{X: 1}) {
		t.Errorf("rotate normal = %v, want (1,0,0)", n)
	}

	r.tc.AttachToggle()
	if r.tc.Mode() != ModeClimbing {
		t.Fatalf("mode = %v, want Climbing", r.tc.Mode())
	}
	if r.prompt.text != PromptStopClimbing {
		t.Errorf("prompt = %q, want %q", r.prompt.text, PromptStopClimbing)
	}
	if r.move.mode != components.MovementFlying || r.move.coupled {
		t.Errorf("locomotion mode = %v coupled = %v, want Flying decoupled", r.move.mode, r.move.coupled)
	}
	if r.move.maxSpeed != r.tc.Tuning.ClimbFlySpeed {
		t.Errorf("fly speed = %v, want climb tuning", r.move.maxSpeed)
	}
	if !r.tc.Anim.IsClimbing {
		t.Error("anim should report climbing")
	}

	r.tc.AttachToggle()
	if r.tc.Mode() != ModeGrounded {
		t.Fatalf("mode = %v, want Grounded", r.tc.Mode())
	}
	if r.move.mode != components.MovementWalking || !r.move.coupled {
		t.Errorf("locomotion mode = %v coupled = %v, want Walking coupled", r.move.mode, r.move.coupled)
	}
	if r.prompt.text != "" {
		t.Errorf("prompt = %q, want cleared", r.prompt.text)
	}
	if r.tc.Anim.IsClimbing || r.tc.Anim.AnimRate != 1 {
		t.Error("detach should clear climbing anim state")
	}
}

func TestAttachWithoutWallIgnored(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	r.tick(1)
	r.tc.AttachToggle()
	if r.tc.Mode() != ModeGrounded {
		t.Errorf("mode = %v, want Grounded", r.tc.Mode())
	}
}

func TestWallLostWhileClimbingDetaches(t *testing.T) {
	r, wall := wallRig(t)
	r.tick(1)
	r.tc.AttachToggle()

	wall.Active = false
	r.tick(1)

	if r.tc.Mode() != ModeGrounded {
		t.Errorf("mode = %v, want Grounded after wall lost", r.tc.Mode())
	}
	if r.tc.State().SelectedWall.IsValid() {
		t.Error("selected wall should be cleared")
	}
	if r.move.mode != components.MovementWalking {
		t.Errorf("locomotion = %v, want Walking", r.move.mode)
	}
}

// The side wall forms an inside corner on the character's right with
// its +Z face at z = -0.2.
func TestClimbingWrapsAroundInsideCorner(t *testing.T) {
	r, front := wallRig(t)
	side := r.wall("side", rl.Vector3{X: -0.65, Y: 1.5, Z: -1.2}, rl.Vector3{X: 3.3, Y: 3, Z: 2})

	r.tick(1)
	if !r.tc.State().SelectedWall.Is(front) {
		t.Fatal("front wall should be selected first")
	}
	r.tc.AttachToggle()

	r.tc.MoveRight(1)
	r.tick(1)
	st := r.tc.State()
	if !st.SelectedWall.Is(side) {
		t.Fatal("lateral probe should select the side wall")
	}
	if !st.IsRotating || !nearVec(st.RotateNormal, rl.Vector3{Z: 1}) {
		t.Fatalf("rotating = %v normal = %v, want turning to (0,0,1)", st.IsRotating, st.RotateNormal)
	}

	for i := 0; i < 200 && r.tc.State().IsRotating; i++ {
		r.tick(1)
	}
	st = r.tc.State()
	if st.IsRotating {
		t.Fatal("rotation should finish")
	}
	if r.tc.Mode() != ModeClimbing {
		t.Errorf("mode = %v, want Climbing", r.tc.Mode())
	}
	if !st.SelectedWall.Is(side) {
		t.Error("forward probe should not steal the wrap-around target")
	}
	if fwd := r.player.Forward(); fwd.Z > -0.99 {
		t.Errorf("forward = %v, want facing -Z", fwd)
	}
}

func TestPromptsAreIdempotent(t *testing.T) {
	r, _ := wallRig(t)
	r.tick(10)
	if len(r.prompt.shows) != 1 {
		t.Errorf("show calls = %v, want exactly one", r.prompt.shows)
	}

	r.tc.showPrompt(PromptClimb)
	r.tc.showPrompt(PromptClimb)
	if len(r.prompt.shows) != 1 {
		t.Errorf("repeated show produced %d calls", len(r.prompt.shows))
	}

	r.tc.hidePrompt(PromptLetGo)
	if r.prompt.hides != 0 || r.prompt.text != PromptClimb {
		t.Error("hiding a prompt that is not shown should be a no-op")
	}

	r.tc.hidePrompt(PromptClimb)
	r.tc.hidePrompt(PromptClimb)
	if r.prompt.hides != 1 {
		t.Errorf("hide calls = %d, want 1", r.prompt.hides)
	}
}

func TestWallUndetectedHidesClimbPrompt(t *testing.T) {
	r, wall := wallRig(t)
	r.tick(1)
	r.scene.RemoveGameObject(wall)
	r.world.RemoveObject(wall)
	r.tick(1)

	if r.prompt.text != "" || r.prompt.hides != 1 {
		t.Errorf("prompt = %q hides = %d, want hidden once", r.prompt.text, r.prompt.hides)
	}

	// A second undetect with nothing selected does nothing.
	r.tc.WallUndetected()
	if r.prompt.hides != 1 {
		t.Error("WallUndetected without a selection should be a no-op")
	}
}

func TestRotationConvergence(t *testing.T) {
	normal := rl.Vector3{X: 1}
	tests := []struct {
		name      string
		offset    float32
		threshold float32
	}{
		{"wall small right", 5, 0.02},
		{"wall small left", -7, 0.02},
		{"wall wide right", 80, 0.02},
		{"wall wide left", -80, 0.02},
		{"ledge fractional", 1.7, 0.01},
		{"ledge wide", -60, 0.01},
		{"grapple", 33, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, rl.Vector3{Y: 0.9}, -90+tt.offset)
			r.tc.beginRotation(normal, tt.threshold)

			for i := 0; i < 400; i++ {
				before := r.tc.rotationError()
				r.tc.rotateStep()
				if !r.tc.State().IsRotating {
					break
				}
				if after := r.tc.rotationError(); after >= before {
					t.Fatalf("tick %d: error %v did not decrease from %v", i, after, before)
				}
			}

			if r.tc.State().IsRotating {
				t.Fatal("rotation did not converge")
			}
			if e := r.tc.rotationError(); e >= tt.threshold {
				t.Errorf("final error %v above threshold %v", e, tt.threshold)
			}
			if d := rl.Vector3DotProduct(r.player.Forward(), normal); d > -0.99 {
				t.Errorf("character not facing the surface: dot = %v", d)
			}

			yaw := r.player.Yaw()
			r.tick(5)
			if r.tc.State().IsRotating || r.player.Yaw() != yaw {
				t.Error("rotation restarted without a new normal")
			}
		})
	}
}

func TestRotationFromFacingAway(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 90)
	r.tc.beginRotation(rl.Vector3{X: 1}, 0.02)
	for i := 0; i < 400 && r.tc.State().IsRotating; i++ {
		r.tc.rotateStep()
	}
	if r.tc.State().IsRotating {
		t.Fatal("rotation from facing away did not converge")
	}
	if d := rl.Vector3DotProduct(r.player.Forward(), rl.Vector3{X: 1}); d >= -0.99 {
		t.Errorf("forward·normal = %v at yaw %v, want facing into the surface", d, r.player.Yaw())
	}
	if e := r.tc.rotationError(); e >= 0.02 {
		t.Errorf("rotation error = %v, want under 0.02", e)
	}
}

// holdingRig hangs the character from a ledge whose -Z face is at z = 1.
func holdingRig(t *testing.T) (*rig, *engine.GameObject) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	ledge := r.ledge("ledge", rl.Vector3{Y: 2, Z: 1.1}, rl.Vector3{X: 2, Y: 0.2, Z: 0.2})
	r.tc.GrabLedge(ledge, rl.Vector3{Y: 2, Z: 1}, rl.Vector3{Z: -1})
	if r.tc.Mode() != ModeHolding {
		t.Fatalf("mode = %v, want Holding", r.tc.Mode())
	}
	return r, ledge
}

func TestReleaseTieBreak(t *testing.T) {
	tests := []struct {
		name     string
		dir      float32
		left     bool
		right    bool
		wantMode components.MovementMode
		wantJump JumpDirection
	}{
		{"right open", 1, true, false, components.MovementFalling, JumpRight},
		{"left open", -1, false, true, components.MovementFalling, JumpLeft},
		{"right continues", 1, false, true, components.MovementWalking, JumpNone},
		{"left continues", -1, true, false, components.MovementWalking, JumpNone},
		{"no input both open", 0, false, false, components.MovementWalking, JumpNone},
		{"no input both blocked", 0, true, true, components.MovementWalking, JumpNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := holdingRig(t)
			left := r.ledge("left", rl.Vector3{X: 3, Y: 2, Z: 1.1}, rl.Vector3{X: 1, Y: 0.2, Z: 0.2})
			right := r.ledge("right", rl.Vector3{X: -3, Y: 2, Z: 1.1}, rl.Vector3{X: 1, Y: 0.2, Z: 0.2})

			r.tc.state.MoveDirection = tt.dir
			if tt.left {
				r.tc.state.LeftLedge.Set(left)
			}
			if tt.right {
				r.tc.state.RightLedge.Set(right)
			}

			r.tc.JumpPressed()

			if r.tc.Mode() != ModeGrounded {
				t.Errorf("mode = %v, want Grounded", r.tc.Mode())
			}
			if r.move.mode != tt.wantMode {
				t.Errorf("locomotion = %v, want %v", r.move.mode, tt.wantMode)
			}
			if r.tc.Anim.JumpDirection != tt.wantJump {
				t.Errorf("jump direction = %v, want %v", r.tc.Anim.JumpDirection, tt.wantJump)
			}
			if r.tc.Anim.IsJumpingOff != (tt.wantJump != JumpNone) {
				t.Errorf("jumping off = %v", r.tc.Anim.IsJumpingOff)
			}
			if tt.wantJump != JumpNone {
				if len(r.move.impulses) != 1 {
					t.Fatalf("impulses = %v, want one", r.move.impulses)
				}
				lateral := rl.Vector3DotProduct(r.move.impulses[0], r.player.Right())
				if (tt.wantJump == JumpRight) != (lateral > 0) {
					t.Errorf("impulse %v points the wrong way", r.move.impulses[0])
				}
			}
			if r.tc.State().CurrentLedge.IsValid() || r.tc.State().IsRotating || !r.move.coupled {
				t.Error("release should clear ledge, rotation and re-couple orientation")
			}

			r.tc.JumpReleased()
			if r.tc.Anim.IsJumpingOff {
				t.Error("jump release should end the jumping-off pulse")
			}
		})
	}
}

func TestLedgeAttachDistance(t *testing.T) {
	for _, hh := range []float32{0.25, 0.9, 1.7, 6} {
		r := newRig(t, rl.Vector3{Y: hh}, 0)
		r.move.halfHeight = hh
		ledge := r.ledge("ledge", rl.Vector3{X: 0.5, Y: 4, Z: 2.1}, rl.Vector3{X: 3, Y: 0.2, Z: 0.2})

		r.tc.GrabLedge(ledge, rl.Vector3{X: 0.25, Y: 3.95, Z: 2}, rl.Vector3{Z: -1})

		hang := rl.Vector3{X: 0.25, Y: 4.1, Z: 2}
		if hand := r.tc.HandPosition(); !nearVec(hand, hang) {
			t.Errorf("half height %v: hand at %v, want %v", hh, hand, hang)
		}
		want := rl.Vector3{X: 0.25, Y: 4.1 - hh - r.tc.Tuning.HoldOffsetUp, Z: 2 - r.tc.Tuning.HoldOffsetForward}
		if !nearVec(r.player.Transform.Position, want) {
			t.Errorf("half height %v: position %v, want %v", hh, r.player.Transform.Position, want)
		}
	}
}

func TestHoldingEntryEffects(t *testing.T) {
	r, ledge := holdingRig(t)

	if !r.tc.State().CurrentLedge.Is(ledge) {
		t.Error("current ledge not set")
	}
	if r.move.mode != components.MovementFlying || r.move.coupled || r.move.maxSpeed != r.tc.Tuning.HoldFlySpeed {
		t.Errorf("locomotion not configured for holding: %+v", r.move)
	}
	if r.prompt.text != PromptLetGo {
		t.Errorf("prompt = %q, want %q", r.prompt.text, PromptLetGo)
	}
	if !r.tc.Anim.IsHolding || r.tc.Anim.IsClimbing {
		t.Error("anim flags wrong while holding")
	}

	// Attach is refused while holding.
	r.tc.AttachToggle()
	if r.tc.Mode() != ModeHolding {
		t.Error("attach toggle should not leave Holding")
	}
}

func TestShimmyOnlyWhereLedgeContinues(t *testing.T) {
	r, _ := holdingRig(t)

	// The held ledge extends past both lateral probes.
	r.tc.MoveRight(1)
	if !r.tc.State().RightLedge.IsValid() {
		t.Fatal("right probe should see the held ledge continuing")
	}
	if len(r.move.inputs) != 1 {
		t.Errorf("inputs = %v, want one shimmy input", r.move.inputs)
	}
	if r.tc.Anim.Direction != 1 || r.tc.State().MoveDirection != 1 {
		t.Error("lateral input not mirrored")
	}

	// Move to the right end of the ledge so nothing continues.
	r.player.Transform.Position.X = -1.3
	r.tc.MoveRight(1)
	if r.tc.State().RightLedge.IsValid() {
		t.Error("right probe past the end should find nothing")
	}
	if len(r.move.inputs) != 1 {
		t.Error("no shimmy input expected past the end")
	}

	r.tc.MoveRight(0)
	if r.tc.State().MoveDirection != 0 {
		t.Error("zero input should be recorded")
	}
}

func TestJumpToLedgeWhileClimbing(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 2.3, Z: 1.2}, 0)
	r.wall("wall", rl.Vector3{Y: 1.5, Z: 2}, rl.Vector3{X: 4, Y: 3, Z: 1})
	lip := r.ledge("lip", rl.Vector3{Y: 3, Z: 1.45}, rl.Vector3{X: 4, Y: 0.2, Z: 0.3})

	r.tick(1)
	if !r.tc.State().SelectedLedge.Is(lip) {
		t.Fatal("ledge sweep should select the lip")
	}
	if r.prompt.text != PromptJumpToLedge {
		t.Errorf("prompt = %q, want ledge prompt to win", r.prompt.text)
	}

	r.tc.AttachToggle()
	if r.tc.Mode() != ModeClimbing {
		t.Fatalf("mode = %v, want Climbing", r.tc.Mode())
	}
	r.tick(1)
	if r.prompt.text != PromptJumpToLedge {
		t.Errorf("prompt = %q, want ledge prompt while climbing", r.prompt.text)
	}

	r.tc.JumpPressed()
	if r.tc.Mode() != ModeHolding {
		t.Fatalf("mode = %v, want Holding", r.tc.Mode())
	}
	want := rl.Vector3{Y: 3.1 - 0.9 - r.tc.Tuning.HoldOffsetUp, Z: 1.3 - r.tc.Tuning.HoldOffsetForward}
	if !nearVec(r.player.Transform.Position, want) {
		t.Errorf("hang position = %v, want %v", r.player.Transform.Position, want)
	}
	if r.tc.State().SelectedWall.IsValid() || r.tc.State().SelectedLedge.IsValid() {
		t.Error("selections should clear on grab")
	}
	if r.prompt.text != PromptLetGo {
		t.Errorf("prompt = %q, want %q", r.prompt.text, PromptLetGo)
	}
}

func TestGroundedJumpWithoutLedge(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	r.tc.JumpPressed()
	if len(r.move.impulses) != 1 || r.move.impulses[0].Y != r.tc.Tuning.JumpImpulse {
		t.Errorf("impulses = %v, want one jump", r.move.impulses)
	}

	r.move.mode = components.MovementFalling
	r.tc.JumpPressed()
	if len(r.move.impulses) != 1 {
		t.Error("no jump while airborne")
	}
}

func TestMovementInputByMode(t *testing.T) {
	r, _ := wallRig(t)
	r.tick(1)

	r.tc.MoveForward(0.5)
	if len(r.move.inputs) != 1 || !nearVec(r.move.inputs[0], rl.Vector3Scale(engine.DirectionFromYaw(-90), 0.5)) {
		t.Errorf("grounded input = %v", r.move.inputs)
	}

	r.tc.AttachToggle()
	r.tc.MoveForward(3)
	if got := r.move.inputs[1]; !nearVec(got, rl.Vector3{Y: 1}) {
		t.Errorf("climbing forward input = %v, want clamped up", got)
	}
	r.tc.MoveRight(-1)
	if got := r.move.inputs[2]; !nearVec(got, rl.Vector3Negate(r.player.Right())) {
		t.Errorf("climbing right input = %v", got)
	}
}

func TestLocateTargetFilters(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	r.tc.viewport = fakeViewport{}

	r.ledge("behind", rl.Vector3{Y: 1, Z: -2}, rl.Vector3{X: 1, Y: 0.2, Z: 0.2})
	r.ledge("far", rl.Vector3{Y: 1, Z: 40}, rl.Vector3{X: 1, Y: 0.2, Z: 0.2})
	first := r.ledge("first", rl.Vector3{X: 3, Y: 0.9, Z: 4}, rl.Vector3{X: 1, Y: 0.2, Z: 0.2})
	r.ledge("tie", rl.Vector3{X: -3, Y: 0.9, Z: 4}, rl.Vector3{X: 1, Y: 0.2, Z: 0.2})

	r.tick(1)
	st := r.tc.State()
	if !st.TargetLedge.Is(first) {
		t.Fatalf("target = %v, want first of the tied ledges", st.TargetLedge)
	}
	if !st.HasGrapplePoint || !r.marker.Visible {
		t.Error("grapple point and marker should be set")
	}
	if r.marker.GetGameObject().Transform.Position != st.GrapplePoint {
		t.Error("marker should sit on the grapple point")
	}

	// The held ledge is never a target.
	r.tc.state.CurrentLedge.Set(first)
	r.tc.locateTarget()
	if r.tc.State().TargetLedge.Is(first) {
		t.Error("held ledge should be excluded")
	}
}

func TestLocateTargetNoneHidesMarker(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	r.marker.ShowTarget(true)
	r.tick(1)
	if r.tc.State().TargetLedge.IsValid() || r.marker.Visible {
		t.Error("no ledges should clear target and hide marker")
	}
}

// grappleRig places a ledge distance metres ahead of the character.
func grappleRig(t *testing.T, distance float32) (*rig, *engine.GameObject) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	ledge := r.ledge("target", rl.Vector3{Y: 3, Z: distance + 0.2}, rl.Vector3{X: 2, Y: 0.2, Z: 0.4})
	r.tick(1)
	if !r.tc.State().TargetLedge.Is(ledge) {
		t.Fatalf("ledge at %v should be targeted", distance)
	}
	return r, ledge
}

func TestGrappleCompletion(t *testing.T) {
	for _, rate := range []float32{0.5, 4, 120} {
		for _, distance := range []float32{1, 6, 13} {
			r, ledge := grappleRig(t, distance)
			r.tc.Tuning.GrappleTravelRate = rate

			changes := 0
			r.tc.ModeChanged.AddListener(func(ModeChange) { changes++ })

			r.tc.GrappleStart()
			if r.tc.Mode() != ModeGrapplePreparing || !r.tc.GrapplePending() {
				t.Fatalf("rate %v distance %v: grapple not armed", rate, distance)
			}

			r.tick(int(r.tc.Tuning.GrappleDelay.Seconds()*60) + 2)
			if r.tc.Mode() != ModeGrappling && r.tc.Mode() != ModeHolding {
				t.Fatalf("rate %v distance %v: mode = %v after delay", rate, distance, r.tc.Mode())
			}

			for i := 0; i < 10000 && r.tc.Mode() == ModeGrappling; i++ {
				if !r.tc.Anim.CableVisible {
					t.Fatal("cable should be visible while grappling")
				}
				r.tick(1)
			}

			if r.tc.Mode() != ModeHolding {
				t.Fatalf("rate %v distance %v: grapple never arrived", rate, distance)
			}
			if !r.tc.State().CurrentLedge.Is(ledge) || !r.tc.Anim.IsHolding || r.tc.Anim.CableVisible {
				t.Errorf("rate %v distance %v: holding state wrong", rate, distance)
			}
			if hand := r.tc.HandPosition(); !near(hand.Y, 3.1) {
				t.Errorf("rate %v distance %v: hand height %v, want ledge top", rate, distance, hand.Y)
			}
			if changes != 3 {
				t.Errorf("rate %v distance %v: %d mode changes, want 3", rate, distance, changes)
			}
		}
	}
}

func TestGrappleWithoutTargetIgnored(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 0.9}, 0)
	r.tick(1)
	r.tc.GrappleStart()
	if r.tc.Mode() != ModeGrounded || r.tc.GrapplePending() {
		t.Error("grapple without a target should be refused")
	}
}

func TestGrappleRefusedWhileBusy(t *testing.T) {
	r, _ := grappleRig(t, 5)
	r.tc.GrappleStart()
	gen, timer := r.tc.grappleGen, r.tc.grappleTimer
	r.tc.GrappleStart()
	if r.tc.grappleGen != gen || r.tc.grappleTimer != timer || !r.tc.timers.Pending(timer) {
		t.Error("second grapple start should be refused")
	}
	r.tc.AttachToggle()
	r.tc.JumpPressed()
	if r.tc.Mode() != ModeGrapplePreparing {
		t.Errorf("mode = %v, other inputs should not interrupt preparing", r.tc.Mode())
	}
}

func TestGrappleCancelStopsTimer(t *testing.T) {
	r, _ := grappleRig(t, 5)
	r.tc.GrappleStart()
	r.tick(30)

	timer := r.tc.grappleTimer
	r.tc.CancelGrapple()
	if r.tc.GrapplePending() || r.tc.timers.Pending(timer) {
		t.Error("cancel should remove the pending launch")
	}
	if r.tc.Mode() != ModeGrounded || r.move.mode != components.MovementFalling {
		t.Errorf("mode = %v locomotion = %v after cancel", r.tc.Mode(), r.move.mode)
	}

	r.tick(300)
	if r.tc.Mode() == ModeGrappling || r.tc.Mode() == ModeHolding {
		t.Errorf("cancelled grapple launched: mode = %v", r.tc.Mode())
	}
}

func TestStaleGrappleCallbackRejected(t *testing.T) {
	r, _ := grappleRig(t, 5)
	r.tc.Tuning.GrappleDelay = time.Second

	r.tc.GrappleStart()
	stale := r.tc.grappleGen
	r.tc.CancelGrapple()
	r.tc.setMode(ModeGrounded)
	r.tick(1)

	r.tc.GrappleStart()
	if r.tc.Mode() != ModeGrapplePreparing {
		t.Fatal("re-arm failed")
	}
	r.tc.launchGrapple(stale)
	if r.tc.Mode() != ModeGrapplePreparing {
		t.Error("stale generation should not launch")
	}
}

func TestResetCancelsGrapple(t *testing.T) {
	r, _ := grappleRig(t, 5)
	r.tc.GrappleStart()
	r.tc.Reset()
	r.tick(300)
	if r.tc.Mode() != ModeGrounded {
		t.Errorf("mode = %v, want Grounded after reset", r.tc.Mode())
	}
}

func TestGrappleTargetDestroyedMidFlight(t *testing.T) {
	r, ledge := grappleRig(t, 10)
	r.tc.Tuning.GrappleTravelRate = 0.1
	r.tc.GrappleStart()
	r.tick(200)
	if r.tc.Mode() != ModeGrappling {
		t.Fatalf("mode = %v, want Grappling", r.tc.Mode())
	}

	r.scene.RemoveGameObject(ledge)
	r.tick(1)
	if r.tc.Mode() != ModeGrounded || r.move.mode != components.MovementFalling {
		t.Errorf("mode = %v locomotion = %v, want dropped", r.tc.Mode(), r.move.mode)
	}
	if r.tc.Anim.CableVisible {
		t.Error("cable should hide")
	}
}

func TestModeExclusivity(t *testing.T) {
	r := newRig(t, rl.Vector3{Y: 2.3, Z: 1.2}, 0)
	r.wall("wall", rl.Vector3{Y: 1.5, Z: 2}, rl.Vector3{X: 4, Y: 3, Z: 1})
	r.ledge("lip", rl.Vector3{Y: 3, Z: 1.45}, rl.Vector3{X: 4, Y: 0.2, Z: 0.3})
	r.ledge("far", rl.Vector3{X: 4, Y: 3, Z: 6}, rl.Vector3{X: 1, Y: 0.2, Z: 0.3})
	r.tc.Tuning.GrappleDelay = 100 * time.Millisecond

	rng := rand.New(rand.NewSource(7))
	actions := []func(){
		r.tc.AttachToggle,
		r.tc.JumpPressed,
		r.tc.JumpReleased,
		r.tc.GrappleStart,
		r.tc.CancelGrapple,
		func() { r.tc.MoveRight(rng.Float32()*2 - 1) },
		func() { r.tc.MoveForward(rng.Float32()*2 - 1) },
	}

	for i := 0; i < 3000; i++ {
		if rng.Intn(3) == 0 {
			actions[rng.Intn(len(actions))]()
		}
		r.tick(1)

		a := r.tc.Anim
		active := 0
		for _, on := range []bool{a.IsClimbing, a.IsHolding, a.IsGrappling, r.tc.Mode() == ModeGrapplePreparing} {
			if on {
				active++
			}
		}
		if active > 1 {
			t.Fatalf("step %d: %d exclusive modes active (%+v)", i, active, a)
		}
		if a.IsClimbing != (r.tc.Mode() == ModeClimbing) || a.IsHolding != (r.tc.Mode() == ModeHolding) {
			t.Fatalf("step %d: anim flags out of sync with mode %v", i, r.tc.Mode())
		}
	}
}

func TestMissingCollaboratorsDegrade(t *testing.T) {
	g := engine.NewGameObject("bare")
	scene := engine.NewScene("bare")
	tc := NewTraversalComponent(DefaultTuning(), Deps{})
	g.AddComponent(tc)
	scene.AddGameObject(g)
	scene.Start()

	tc.Update(tick)
	tc.AttachToggle()
	tc.JumpPressed()
	tc.JumpReleased()
	tc.GrappleStart()
	tc.MoveForward(1)
	tc.MoveRight(-1)
	tc.CancelGrapple()
	tc.Reset()
	tc.Update(tick)

	if tc.Mode() != ModeGrounded {
		t.Errorf("mode = %v, want Grounded", tc.Mode())
	}

	var detached TraversalComponent
	detached.Update(tick)
	detached.MoveRight(1)
}

func TestAnimRateFollowsClimbSpeed(t *testing.T) {
	r, _ := wallRig(t)
	r.tick(1)
	r.tc.AttachToggle()

	r.move.velocity = rl.Vector3{Y: r.tc.Tuning.ClimbFlySpeed / 2}
	r.tick(1)
	if !near(r.tc.Anim.AnimRate, 0.5) {
		t.Errorf("anim rate = %v, want 0.5", r.tc.Anim.AnimRate)
	}

	r.move.velocity = rl.Vector3{Y: 10}
	r.tick(1)
	if r.tc.Anim.AnimRate != 1 {
		t.Errorf("anim rate = %v, want clamped to 1", r.tc.Anim.AnimRate)
	}
}

func TestModeString(t *testing.T) {
	if ModeGrapplePreparing.String() != "GrapplePreparing" || Mode(42).String() != "Unknown" {
		t.Error("mode names wrong")
	}
	if JumpRight.String() != "Right" || JumpNone.String() != "None" {
		t.Error("jump direction names wrong")
	}
}
