package traversal

import rl "github.com/gen2brain/raylib-go/raylib"

// Mode is the character's exclusive traversal state.
type Mode int

const (
	ModeGrounded Mode = iota
	ModeClimbing
	ModeHolding
	ModeGrapplePreparing
	ModeGrappling
)

func (m Mode) String() string {
	switch m {
	case ModeGrounded:
		return "Grounded"
	case ModeClimbing:
		return "Climbing"
	case ModeHolding:
		return "Holding"
	case ModeGrapplePreparing:
		return "GrapplePreparing"
	case ModeGrappling:
		return "Grappling"
	}
	return "Unknown"
}

// IsGrapple reports whether m is one of the two grapple modes.
func (m Mode) IsGrapple() bool {
	return m == ModeGrapplePreparing || m == ModeGrappling
}

// JumpDirection is the side of a vault off a held ledge.
type JumpDirection int

const (
	JumpNone JumpDirection = iota
	JumpLeft
	JumpRight
)

func (d JumpDirection) String() string {
	switch d {
	case JumpLeft:
		return "Left"
	case JumpRight:
		return "Right"
	}
	return "None"
}

// ModeChange is the payload of TraversalComponent.ModeChanged.
type ModeChange struct {
	From Mode
	To   Mode
}

// AnimParams mirrors traversal state for the animation layer.
type AnimParams struct {
	IsClimbing    bool
	IsHolding     bool
	IsGrappling   bool
	Direction     float32 // Lateral input while holding
	JumpDirection JumpDirection
	IsJumpingOff  bool
	AnimRate      float32

	CableVisible bool
	CableEnd     rl.Vector3
}
