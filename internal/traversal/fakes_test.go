package traversal

import (
	"math"
	"testing"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"
	"wallclimb/internal/surface"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const tick = float32(1.0 / 60)

type fakeMovement struct {
	g          *engine.GameObject
	mode       components.MovementMode
	maxSpeed   float32
	braking    float32
	inputs     []rl.Vector3
	impulses   []rl.Vector3
	stops      int
	coupled    bool
	velocity   rl.Vector3
	halfHeight float32
}

func (m *fakeMovement) SetMode(mode components.MovementMode) { m.mode = mode }
func (m *fakeMovement) Mode() components.MovementMode        { return m.mode }
func (m *fakeMovement) SetFlightTuning(maxSpeed, braking float32) {
	m.maxSpeed, m.braking = maxSpeed, braking
}
func (m *fakeMovement) AddMovementInput(dir rl.Vector3, scale float32, force bool) {
	m.inputs = append(m.inputs, rl.Vector3Scale(dir, scale))
}
func (m *fakeMovement) ApplyImpulse(impulse rl.Vector3) { m.impulses = append(m.impulses, impulse) }
func (m *fakeMovement) StopImmediately()                { m.stops++; m.velocity = rl.Vector3{} }
func (m *fakeMovement) SetOrientationCoupledToMovement(coupled bool) {
	m.coupled = coupled
}
func (m *fakeMovement) Teleport(pos rl.Vector3)    { m.g.Transform.Position = pos }
func (m *fakeMovement) Velocity() rl.Vector3       { return m.velocity }
func (m *fakeMovement) CapsuleHalfHeight() float32 { return m.halfHeight }

type fakePrompt struct {
	shows []string
	hides int
	text  string
}

func (p *fakePrompt) ShowPrompt(text string) {
	p.shows = append(p.shows, text)
	p.text = text
}

func (p *fakePrompt) HidePrompt() {
	p.hides++
	p.text = ""
}

// fakeViewport treats everything with negative Z as off-screen.
type fakeViewport struct{}

func (fakeViewport) Project(p rl.Vector3) (rl.Vector2, bool) {
	if p.Z < 0 {
		return rl.Vector2{X: -50, Y: 300}, true
	}
	return rl.Vector2{X: 400, Y: 300}, true
}

func (fakeViewport) Size() (float32, float32) { return 800, 600 }

type rig struct {
	t      *testing.T
	scene  *engine.Scene
	world  *physics.PhysicsWorld
	reg    *surface.Registry
	player *engine.GameObject
	tc     *TraversalComponent
	move   *fakeMovement
	prompt *fakePrompt
	marker *components.GrappleMarker
}

func newRig(t *testing.T, pos rl.Vector3, yaw float32) *rig {
	r := &rig{
		t:      t,
		scene:  engine.NewScene("test"),
		world:  physics.NewPhysicsWorld(),
		reg:    surface.NewRegistry(),
		prompt: &fakePrompt{},
	}

	r.player = engine.NewGameObject("player")
	r.player.Transform.Position = pos
	r.player.SetYaw(yaw)
	r.move = &fakeMovement{g: r.player, halfHeight: 0.9, coupled: true}

	markerObj := engine.NewGameObject("marker")
	r.marker = components.NewGrappleMarker()
	markerObj.AddComponent(r.marker)
	r.scene.AddGameObject(markerObj)

	r.tc = NewTraversalComponent(DefaultTuning(), Deps{
		Query:    r.world,
		Movement: r.move,
		Prompt:   r.prompt,
		Ledges:   r.reg,
		Marker:   r.marker,
	})
	r.player.AddComponent(r.tc)
	r.scene.AddGameObject(r.player)
	return r
}

// box adds a static box with the given channels and surface markers.
func (r *rig) box(name string, center, size rl.Vector3, ch physics.Channel, markers ...engine.Component) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = center
	col := components.NewBoxCollider(size)
	col.Channels = ch
	g.AddComponent(col)
	for _, m := range markers {
		g.AddComponent(m)
	}
	r.scene.AddGameObject(g)
	r.world.AddShape(col)
	r.reg.Add(g)
	return g
}

func (r *rig) wall(name string, center, size rl.Vector3) *engine.GameObject {
	return r.box(name, center, size, physics.ChannelWorldStatic, &components.ClimbableWall{})
}

func (r *rig) ledge(name string, center, size rl.Vector3) *engine.GameObject {
	return r.box(name, center, size, physics.ChannelLedge, &components.Ledge{})
}

func (r *rig) tick(n int) {
	for i := 0; i < n; i++ {
		r.tc.Update(tick)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func nearVec(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}
