package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees, Y is yaw
	Scale    rl.Vector3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of concrete type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent returns the first component implementing interface T.
func FindComponent[T any](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WorldPosition returns the object position. Objects are not parented, so
// this is the transform position; kept as the accessor components use.
func (g *GameObject) WorldPosition() rl.Vector3 {
	return g.Transform.Position
}

func (g *GameObject) WorldScale() rl.Vector3 {
	return g.Transform.Scale
}

// Yaw returns the heading in degrees.
func (g *GameObject) Yaw() float32 {
	return g.Transform.Rotation.Y
}

// SetYaw sets the heading, wrapped into (-180, 180].
func (g *GameObject) SetYaw(degrees float32) {
	g.Transform.Rotation.Y = WrapDegrees(degrees)
}

// AddYaw rotates the object around world up.
func (g *GameObject) AddYaw(degrees float32) {
	g.SetYaw(g.Transform.Rotation.Y + degrees)
}

// Forward is the horizontal facing direction. Yaw 0 faces +Z.
func (g *GameObject) Forward() rl.Vector3 {
	return DirectionFromYaw(g.Transform.Rotation.Y)
}

// Right is forward x up, so yaw 0 has right = -X.
func (g *GameObject) Right() rl.Vector3 {
	return rl.Vector3CrossProduct(g.Forward(), Up)
}

// Up is always world up; characters only yaw.
func (g *GameObject) Up() rl.Vector3 {
	return Up
}

var Up = rl.Vector3{X: 0, Y: 1, Z: 0}

// DirectionFromYaw returns the unit horizontal vector for a heading in degrees.
func DirectionFromYaw(degrees float32) rl.Vector3 {
	rad := float64(degrees) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Sin(rad)),
		Y: 0,
		Z: float32(math.Cos(rad)),
	}
}

// YawFromDirection is the inverse of DirectionFromYaw; Y is ignored.
func YawFromDirection(dir rl.Vector3) float32 {
	return float32(math.Atan2(float64(dir.X), float64(dir.Z)) * 180 / math.Pi)
}

func WrapDegrees(degrees float32) float32 {
	d := math.Mod(float64(degrees), 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return float32(d)
}
