// math/vecmat.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Vec3 is a 3D point/vector in the world coordinate system: x east,
// y up, z north (meters).
type Vec3 = [3]float32

// Various useful functions for arithmetic with 3D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add3f(a Vec3, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// a-b
func Sub3f(a Vec3, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// a*s
func Scale3f(a Vec3, s float32) Vec3 {
	return Vec3{s * a[0], s * a[1], s * a[2]}
}

func Dot3f(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3f(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length of v
func Length3f(v Vec3) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalizes the given vector; a zero vector is returned unchanged.
func Normalize3f(a Vec3) Vec3 {
	l := Length3f(a)
	if l == 0 {
		return a
	}
	return Scale3f(a, 1/l)
}

// Linearly interpolate x of the way between a and b.
func Lerp3f(x float32, a Vec3, b Vec3) Vec3 {
	return Vec3{Lerp(x, a[0], b[0]), Lerp(x, a[1], b[1]), Lerp(x, a[2], b[2])}
}
