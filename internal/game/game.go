package game

import (
	"fmt"
	"log"
	"time"

	"wallclimb/internal/components"
	"wallclimb/internal/config"
	"wallclimb/internal/traversal"
	"wallclimb/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Config    config.Config
	World     *world.World
	Renderer  *world.Renderer
	DebugMode bool

	updateMs float64
	drawMs   float64

	lastChange traversal.ModeChange
}

func New(cfg config.Config) *Game {
	return &Game{
		Config:   cfg,
		World:    world.New(),
		Renderer: world.NewRenderer(),
	}
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(g.Config.WindowWidth, g.Config.WindowHeight, g.Config.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.Config.TargetFPS)
	rl.DisableCursor()

	if err := g.Load(); err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

// Load builds the configured level and spawns the player.
func (g *Game) Load() error {
	if err := g.World.LoadLevel(g.Config.Level); err != nil {
		return fmt.Errorf("load %s: %w", g.Config.Level, err)
	}
	g.World.SetViewport(float32(g.Config.WindowWidth), float32(g.Config.WindowHeight))

	input := components.NewPlayerInput()
	input.LookSpeed = g.Config.MouseSensitivity
	g.World.SpawnPlayer(g.Config.Traversal, input)

	g.World.Traversal.ModeChanged.AddListener(func(c traversal.ModeChange) {
		g.lastChange = c
	})

	g.World.Start()
	return nil
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.World.SetViewport(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.respawn()
	}

	g.World.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// respawn drops whatever the player is doing and returns them to the
// level spawn.
func (g *Game) respawn() {
	w := g.World
	if w.Player == nil {
		return
	}
	log.Printf("Respawn at %v", w.Spawn.Position)
	w.Traversal.Reset()
	w.Movement.Teleport(w.Spawn.Position)
	w.Movement.StopImmediately()
	w.Player.SetYaw(w.Spawn.Yaw)
}

func (g *Game) Draw() {
	rl.BeginDrawing()

	drawStart := time.Now()
	g.Renderer.Draw(g.World)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	if g.World.Prompt != nil {
		g.World.Prompt.Draw(screenW, screenH)
	}

	rl.DrawText("WASD move/climb, Mouse look, E climb, Space jump/grab, F grapple, X cancel", 10, 10, 20, rl.LightGray)
	rl.DrawText("R respawn, F1 debug view", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if !g.DebugMode || g.World.Traversal == nil {
		return
	}

	t := g.World.Traversal
	state := t.State()
	y := int32(85)
	line := func(color rl.Color, format string, args ...any) {
		rl.DrawText(fmt.Sprintf(format, args...), 10, y, 16, color)
		y += 20
	}

	line(rl.Yellow, "Mode: %s (last %s -> %s)", state.Mode, g.lastChange.From, g.lastChange.To)
	line(rl.Yellow, "Movement: %s  speed %.2f", g.World.Movement.Mode(), g.World.Movement.Speed())
	line(rl.Yellow, "Rotating: %v  anim rate %.2f", state.IsRotating, t.Anim.AnimRate)
	line(rl.Yellow, "Wall %d  Ledge %d  Holding %d  Target %d",
		state.SelectedWall.UID, state.SelectedLedge.UID, state.CurrentLedge.UID, state.TargetLedge.UID)
	line(rl.Yellow, "Surfaces: %d walls, %d ledges", len(g.World.Surfaces.Walls()), len(g.World.Surfaces.AllLedges()))
	if t.GrapplePending() {
		line(rl.Orange, "Grapple armed")
	}
	line(rl.Green, "Update: %.2f ms", g.updateMs)
	line(rl.Green, "Draw:   %.2f ms", g.drawMs)
}
