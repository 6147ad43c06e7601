package components

import (
	"math"

	"wallclimb/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FollowCamera is a third-person boom camera orbiting its object. Yaw
// and pitch are in degrees; positive pitch looks down.
type FollowCamera struct {
	engine.BaseComponent
	FOV         float32
	Near        float32
	Far         float32
	Distance    float32
	PivotHeight float32
	Yaw         float32
	Pitch       float32
	MinPitch    float32
	MaxPitch    float32

	screenWidth  float32
	screenHeight float32
}

func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		FOV:         60.0,
		Near:        0.1,
		Far:         500.0,
		Distance:    4.5,
		PivotHeight: 0.6,
		Pitch:       15.0,
		MinPitch:    -30.0,
		MaxPitch:    70.0,
	}
}

func (c *FollowCamera) SetScreenSize(width, height float32) {
	c.screenWidth = width
	c.screenHeight = height
}

// Size returns the viewport size in pixels.
func (c *FollowCamera) Size() (float32, float32) {
	return c.screenWidth, c.screenHeight
}

// ControlYaw is the heading used for camera-relative movement.
func (c *FollowCamera) ControlYaw() float32 {
	return c.Yaw
}

// AddLookInput applies mouse deltas in degrees.
func (c *FollowCamera) AddLookInput(yaw, pitch float32) {
	c.Yaw = engine.WrapDegrees(c.Yaw + yaw)
	c.Pitch += pitch
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

func (c *FollowCamera) lookDirection() rl.Vector3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(pitch) * math.Sin(yaw)),
		Y: float32(-math.Sin(pitch)),
		Z: float32(math.Cos(pitch) * math.Cos(yaw)),
	}
}

func (c *FollowCamera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	pivot := rl.Vector3Add(g.WorldPosition(), rl.Vector3{Y: c.PivotHeight})
	eye := rl.Vector3Subtract(pivot, rl.Vector3Scale(c.lookDirection(), c.Distance))

	return rl.Camera3D{
		Position:   eye,
		Target:     pivot,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// Project maps a world point to screen pixels. ok is false for points
// behind the camera or when the viewport has no size.
func (c *FollowCamera) Project(point rl.Vector3) (rl.Vector2, bool) {
	if c.screenWidth <= 0 || c.screenHeight <= 0 || c.GetGameObject() == nil {
		return rl.Vector2{}, false
	}

	cam := c.GetRaylibCamera()
	view := rl.MatrixLookAt(cam.Position, cam.Target, cam.Up)
	proj := rl.MatrixPerspective(cam.Fovy*rl.Deg2rad, c.screenWidth/c.screenHeight, c.Near, c.Far)

	v := transformPoint(view, point, 1)
	x := proj.M0*v.X + proj.M4*v.Y + proj.M8*v.Z + proj.M12
	y := proj.M1*v.X + proj.M5*v.Y + proj.M9*v.Z + proj.M13
	w := proj.M3*v.X + proj.M7*v.Y + proj.M11*v.Z + proj.M15
	if w <= 0 {
		return rl.Vector2{}, false
	}

	ndcX := x / w
	ndcY := y / w
	return rl.Vector2{
		X: (ndcX + 1) / 2 * c.screenWidth,
		Y: (1 - ndcY) / 2 * c.screenHeight,
	}, true
}

func transformPoint(m rl.Matrix, p rl.Vector3, w float32) rl.Vector3 {
	return rl.Vector3{
		X: m.M0*p.X + m.M4*p.Y + m.M8*p.Z + m.M12*w,
		Y: m.M1*p.X + m.M5*p.Y + m.M9*p.Z + m.M13*w,
		Z: m.M2*p.X + m.M6*p.Y + m.M10*p.Z + m.M14*w,
	}
}
