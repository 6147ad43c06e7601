// Stress test for the probe queries traversal runs every tick.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"wallclimb/internal/components"
	"wallclimb/internal/engine"
	"wallclimb/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// Test various shape counts
	testCounts := []int{100, 500, 1000, 2000, 5000, 10000}

	for _, count := range testCounts {
		testProbes(count)
	}
}

func testProbes(count int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results
	world := physics.NewPhysicsWorld()

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0

	for i := 0; i < count; i++ {
		g := engine.NewGameObject(fmt.Sprintf("Box_%d", i))
		g.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * spawnSize / 4,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		size := 0.5 + rng.Float32()*2
		col := components.NewBoxCollider(rl.Vector3{X: size, Y: size, Z: size})
		if i%4 == 0 {
			col.Channels = physics.ChannelLedge
		}
		g.AddComponent(col)
		world.AddShape(col)
	}

	// One tick of probes: forward wall ray, ledge sweep, two lateral rays.
	const iterations = 200
	var hits int
	start := time.Now()
	for iter := 0; iter < iterations; iter++ {
		origin := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 0.9,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		fwd := engine.DirectionFromYaw(rng.Float32() * 360)
		right := rl.Vector3CrossProduct(fwd, engine.Up)

		if _, ok := world.CastRay(origin, rl.Vector3Add(origin, rl.Vector3Scale(fwd, 0.5)), physics.ChannelWorldStatic); ok {
			hits++
		}
		sweepStart := rl.Vector3Add(origin, rl.Vector3Scale(fwd, 0.3))
		sweepStart.Y -= 0.45
		sweepEnd := rl.Vector3Add(sweepStart, rl.Vector3Scale(engine.Up, 1.4))
		if _, ok := world.SweepCapsule(sweepStart, sweepEnd, right, 0.14, 0.7, physics.ChannelLedge); ok {
			hits++
		}
		for _, side := range []float32{-1, 1} {
			end := rl.Vector3Add(origin, rl.Vector3Scale(rl.Vector3Add(fwd, rl.Vector3Scale(right, side)), 0.6))
			if _, ok := world.CastRay(origin, end, physics.ChannelWorldStatic); ok {
				hits++
			}
		}
	}
	perTick := time.Since(start) / iterations

	fmt.Printf("%5d shapes: %10v per tick (%d hits over %d ticks)\n",
		count, perTick.Round(time.Microsecond/10), hits, iterations)
}
