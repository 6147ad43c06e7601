package traversal

import (
	"fmt"
	"math"
	"time"
)

// Tuning holds the load-bearing constants of perception and the state
// machine. Distances are in metres, rotation in degrees per tick.
type Tuning struct {
	WallProbeLength        float32 `env:"WALL_PROBE_LENGTH" envDefault:"0.5"`
	LateralWallProbeLength float32 `env:"LATERAL_WALL_PROBE_LENGTH" envDefault:"0.8"`
	LateralWallProbeAngle  float32 `env:"LATERAL_WALL_PROBE_ANGLE" envDefault:"45"`

	LedgeProbeForward    float32 `env:"LEDGE_PROBE_FORWARD" envDefault:"0.3"`
	LedgeProbeDrop       float32 `env:"LEDGE_PROBE_DROP" envDefault:"0.45"`
	LedgeProbeHeight     float32 `env:"LEDGE_PROBE_HEIGHT" envDefault:"1.4"`
	LedgeProbeRadius     float32 `env:"LEDGE_PROBE_RADIUS" envDefault:"0.14"`
	LedgeProbeHalfHeight float32 `env:"LEDGE_PROBE_HALF_HEIGHT" envDefault:"0.7"`
	ConfirmProbeExtend   float32 `env:"CONFIRM_PROBE_EXTEND" envDefault:"0.1"`

	LateralLedgeOffset      float32 `env:"LATERAL_LEDGE_OFFSET" envDefault:"0.4"`
	LateralLedgeProbeLength float32 `env:"LATERAL_LEDGE_PROBE_LENGTH" envDefault:"0.6"`
	LateralLedgeProbeDrop   float32 `env:"LATERAL_LEDGE_PROBE_DROP" envDefault:"0.05"`

	WallRotationThreshold    float32 `env:"WALL_ROTATION_THRESHOLD" envDefault:"0.02"`
	LedgeRotationThreshold   float32 `env:"LEDGE_ROTATION_THRESHOLD" envDefault:"0.01"`
	GrappleRotationThreshold float32 `env:"GRAPPLE_ROTATION_THRESHOLD" envDefault:"0.02"`
	RotationStep             float32 `env:"ROTATION_STEP" envDefault:"1"`

	GrappleDelay          time.Duration `env:"GRAPPLE_DELAY" envDefault:"3s"`
	GrappleMaxRange       float32       `env:"GRAPPLE_MAX_RANGE" envDefault:"15"`
	GrappleTravelRate     float32       `env:"GRAPPLE_TRAVEL_RATE" envDefault:"4"`
	GrappleArrivalEpsilon float32       `env:"GRAPPLE_ARRIVAL_EPSILON" envDefault:"0.05"`

	HoldOffsetForward float32 `env:"HOLD_OFFSET_FORWARD" envDefault:"0.35"`
	HoldOffsetUp      float32 `env:"HOLD_OFFSET_UP" envDefault:"0.1"`

	ClimbFlySpeed float32 `env:"CLIMB_FLY_SPEED" envDefault:"1.5"`
	ClimbBraking  float32 `env:"CLIMB_BRAKING" envDefault:"8"`
	HoldFlySpeed  float32 `env:"HOLD_FLY_SPEED" envDefault:"0.8"`
	HoldBraking   float32 `env:"HOLD_BRAKING" envDefault:"12"`

	JumpOffLateral float32 `env:"JUMP_OFF_LATERAL" envDefault:"4"`
	JumpOffUp      float32 `env:"JUMP_OFF_UP" envDefault:"3"`
	JumpImpulse    float32 `env:"JUMP_IMPULSE" envDefault:"7"`
}

// DefaultTuning returns the envDefault values without reading the
// environment.
func DefaultTuning() Tuning {
	return Tuning{
		WallProbeLength:          0.5,
		LateralWallProbeLength:   0.8,
		LateralWallProbeAngle:    45,
		LedgeProbeForward:        0.3,
		LedgeProbeDrop:           0.45,
		LedgeProbeHeight:         1.4,
		LedgeProbeRadius:         0.14,
		LedgeProbeHalfHeight:     0.7,
		ConfirmProbeExtend:       0.1,
		LateralLedgeOffset:       0.4,
		LateralLedgeProbeLength:  0.6,
		LateralLedgeProbeDrop:    0.05,
		WallRotationThreshold:    0.02,
		LedgeRotationThreshold:   0.01,
		GrappleRotationThreshold: 0.02,
		RotationStep:             1,
		GrappleDelay:             3 * time.Second,
		GrappleMaxRange:          15,
		GrappleTravelRate:        4,
		GrappleArrivalEpsilon:    0.05,
		HoldOffsetForward:        0.35,
		HoldOffsetUp:             0.1,
		ClimbFlySpeed:            1.5,
		ClimbBraking:             8,
		HoldFlySpeed:             0.8,
		HoldBraking:              12,
		JumpOffLateral:           4,
		JumpOffUp:                3,
		JumpImpulse:              7,
	}
}

// Validate rejects tunings under which rotation or grapple travel would
// never finish.
func (t Tuning) Validate() error {
	if t.GrappleDelay < 0 {
		return fmt.Errorf("negative grapple delay %s", t.GrappleDelay)
	}
	if t.GrappleTravelRate <= 0 {
		return fmt.Errorf("grapple travel rate %v must be positive", t.GrappleTravelRate)
	}
	if t.GrappleArrivalEpsilon <= 0 {
		return fmt.Errorf("grapple arrival epsilon %v must be positive", t.GrappleArrivalEpsilon)
	}
	if t.RotationStep <= 0 {
		return fmt.Errorf("rotation step %v must be positive", t.RotationStep)
	}

	thresholds := []struct {
		name  string
		value float32
	}{
		{"wall", t.WallRotationThreshold},
		{"ledge", t.LedgeRotationThreshold},
		{"grapple", t.GrappleRotationThreshold},
	}
	for _, th := range thresholds {
		if th.value <= 0 || th.value > 1 {
			return fmt.Errorf("%s rotation threshold %v outside (0, 1]", th.name, th.value)
		}
		if band := rotationBand(th.value); t.RotationStep >= band {
			return fmt.Errorf("rotation step %v° can jump over the %.2f° %s threshold band", t.RotationStep, band, th.name)
		}
	}
	return nil
}

// rotationBand is the width in degrees of the yaw range around facing
// where |dot(normal, right)| < threshold. rotateStep only stops inside it.
func rotationBand(threshold float32) float32 {
	return float32(2 * math.Asin(float64(threshold)) * 180 / math.Pi)
}
