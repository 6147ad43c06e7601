package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type LevelFile struct {
	Name    string      `json:"name"`
	Spawn   *SpawnDef   `json:"spawn,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type SpawnDef struct {
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type meshRendererDef struct {
	Type      string     `json:"type"`
	Size      [3]float32 `json:"size"`
	Color     string     `json:"color"`
	Wireframe *bool      `json:"wireframe,omitempty"`
}

type boxColliderDef struct {
	Type     string     `json:"type"`
	Size     [3]float32 `json:"size"`
	Offset   [3]float32 `json:"offset,omitempty"`
	Channels []string   `json:"channels,omitempty"`
}

type scriptDef struct {
	Type  string         `json:"type"`
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Loading ---

// LoadLevel reads a level file and adds its objects to the world.
func (w *World) LoadLevel(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read level: %w", err)
	}
	return w.LoadLevelData(data)
}

// LoadLevelData builds the level described by data. Colliders are
// registered with the physics world and surface markers with the
// surface registry.
func (w *World) LoadLevelData(data []byte) error {
	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("parse level: %w", err)
	}

	w.Name = lf.Name
	if lf.Spawn != nil {
		w.Spawn = Spawn{Position: vec3(lf.Spawn.Position), Yaw: lf.Spawn.Yaw}
	}

	for _, objDef := range lf.Objects {
		g := engine.NewGameObject(objDef.Name)
		g.Tags = objDef.Tags
		g.Transform.Position = vec3(objDef.Position)
		g.Transform.Rotation = vec3(objDef.Rotation)

		// Default scale to 1 if zero
		if objDef.Scale != [3]float32{} {
			g.Transform.Scale = vec3(objDef.Scale)
		}

		for _, raw := range objDef.Components {
			var header componentHeader
			if err := json.Unmarshal(raw, &header); err != nil {
				continue
			}

			switch header.Type {
			case "MeshRenderer":
				loadMeshRenderer(g, raw)
			case "BoxCollider":
				loadBoxCollider(g, raw)
			case "Script":
				loadScript(g, raw)
			default:
				log.Printf("Level: unknown component %q on %s", header.Type, g.Name)
			}
		}

		w.addObject(g)
	}

	w.Surfaces.Populate(w.Scene)
	log.Printf("Level %q: %d objects", w.Name, len(lf.Objects))
	w.Physics.LogSummary()
	return nil
}

func (w *World) addObject(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	if col := engine.GetComponent[*components.BoxCollider](g); col != nil {
		w.Physics.AddShape(col)
	}
}

func loadMeshRenderer(g *engine.GameObject, raw json.RawMessage) {
	var def meshRendererDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return
	}
	mr := components.NewMeshRenderer(lookupColor(def.Color), vec3(def.Size))
	if def.Wireframe != nil {
		mr.Wireframe = *def.Wireframe
	}
	g.AddComponent(mr)
}

func loadBoxCollider(g *engine.GameObject, raw json.RawMessage) {
	var def boxColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return
	}
	col := components.NewBoxCollider(vec3(def.Size))
	col.Offset = vec3(def.Offset)

	if len(def.Channels) > 0 {
		var channels physics.Channel
		for _, name := range def.Channels {
			ch, ok := physics.ParseChannel(name)
			if !ok {
				log.Printf("Level: unknown channel %q on %s", name, g.Name)
				continue
			}
			channels |= ch
		}
		col.Channels = channels
	}
	g.AddComponent(col)
}

func loadScript(g *engine.GameObject, raw json.RawMessage) {
	var def scriptDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return
	}
	if comp := engine.CreateScript(def.Name, def.Props); comp != nil {
		g.AddComponent(comp)
	} else {
		log.Printf("Level: unknown script %q on %s", def.Name, g.Name)
	}
}
