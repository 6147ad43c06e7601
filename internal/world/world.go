package world

import (
	"log"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"
	"wallclimb/internal/surface"
	"wallclimb/internal/traversal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spawn is where the player enters the level. Position is the capsule
// center.
type Spawn struct {
	Position rl.Vector3
	Yaw      float32
}

var DefaultSpawn = Spawn{Position: rl.Vector3{X: 0, Y: 0.9, Z: 0}}

type World struct {
	Name     string
	Scene    *engine.Scene
	Physics  *physics.PhysicsWorld
	Surfaces *surface.Registry
	Spawn    Spawn

	Player    *engine.GameObject
	Traversal *traversal.TraversalComponent
	Movement  *components.CharacterController
	Camera    *components.FollowCamera
	Prompt    *components.PromptWidget
	Marker    *components.GrappleMarker

	screenW, screenH float32
}

func New() *World {
	return &World{
		Scene:    engine.NewScene("Main"),
		Physics:  physics.NewPhysicsWorld(),
		Surfaces: surface.NewRegistry(),
		Spawn:    DefaultSpawn,
	}
}

// SetViewport records the screen size used for on-screen tests.
func (w *World) SetViewport(width, height float32) {
	w.screenW, w.screenH = width, height
	if w.Camera != nil {
		w.Camera.SetScreenSize(width, height)
	}
}

// SpawnPlayer creates the player at the level spawn with its traversal
// stack wired up. Components in extra run before traversal each tick.
func (w *World) SpawnPlayer(tuning traversal.Tuning, extra ...engine.Component) *engine.GameObject {
	if w.Player != nil {
		log.Printf("World: player already spawned")
		return w.Player
	}

	w.Marker = w.findMarker()
	if w.Marker == nil {
		markerObj := engine.NewGameObject("GrappleMarker")
		w.Marker = components.NewGrappleMarker()
		markerObj.AddComponent(w.Marker)
		w.Scene.AddGameObject(markerObj)
	}

	hud := engine.NewGameObject("HUD")
	w.Prompt = components.NewPromptWidget()
	hud.AddComponent(w.Prompt)
	w.Scene.AddGameObject(hud)

	player := engine.NewGameObject("Player")
	player.Tags = []string{"player"}
	player.Transform.Position = w.Spawn.Position
	player.SetYaw(w.Spawn.Yaw)

	w.Movement = components.NewCharacterController()
	w.Movement.Obstacles = w.Physics

	w.Camera = components.NewFollowCamera()
	w.Camera.Yaw = w.Spawn.Yaw
	w.Camera.SetScreenSize(w.screenW, w.screenH)

	w.Traversal = traversal.NewTraversalComponent(tuning, traversal.Deps{
		Query:    w.Physics,
		Movement: w.Movement,
		Prompt:   w.Prompt,
		Ledges:   w.Surfaces,
		Viewport: w.Camera,
		Control:  w.Camera,
		Marker:   w.Marker,
	})

	for _, c := range extra {
		player.AddComponent(c)
	}
	// Traversal decides before the controller integrates.
	player.AddComponent(w.Traversal)
	player.AddComponent(w.Movement)
	player.AddComponent(w.Camera)

	w.Scene.AddGameObject(player)
	w.Player = player
	return player
}

func (w *World) findMarker() *components.GrappleMarker {
	for _, g := range w.Scene.GameObjects {
		if m := engine.GetComponent[*components.GrappleMarker](g); m != nil {
			return m
		}
	}
	return nil
}

// Destroy removes an object from the scene and the physics world.
// References to it resolve to nothing afterwards.
func (w *World) Destroy(g *engine.GameObject) {
	if g == nil {
		return
	}
	w.Physics.RemoveObject(g)
	w.Scene.RemoveGameObject(g)
}

func (w *World) Start() {
	w.Scene.Start()
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}
