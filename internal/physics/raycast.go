package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// intersectRay runs a slab test of the ray origin + dir*t, t in [0, maxDistance],
// against box. dir must be normalized. Rays starting inside the box report no
// hit: probes never block on a shape they start in.
func intersectRay(origin, dir rl.Vector3, maxDistance float32, box AABB) (float32, rl.Vector3, bool) {
	if box.Contains(origin) {
		return 0, rl.Vector3{}, false
	}

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	tmin := float32(-1e30)
	tmax := float32(1e30)
	axis := -1

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}

	if axis < 0 || tmin < 0 || tmin > maxDistance {
		return 0, rl.Vector3{}, false
	}

	// Entering face is the one on the slab that set tmin
	var n [3]float32
	if d[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return tmin, rl.Vector3{X: n[0], Y: n[1], Z: n[2]}, true
}

// capsuleExtents is the half-size of the box bounding a capsule with the
// given axis, radius and half height (half height includes the caps).
func capsuleExtents(axis rl.Vector3, radius, halfHeight float32) rl.Vector3 {
	segment := halfHeight - radius
	if segment < 0 {
		segment = 0
	}
	return rl.Vector3{
		X: abs(axis.X)*segment + radius,
		Y: abs(axis.Y)*segment + radius,
		Z: abs(axis.Z)*segment + radius,
	}
}
