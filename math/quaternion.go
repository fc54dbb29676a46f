// math/quaternion.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Quaternion represents a rotation of the world coordinate frame. The
// aircraft body axes are the canonical axes rotated through it: body
// forward is Rotate((1,0,0)), body up is Rotate((0,1,0)), and body right
// is Rotate((0,0,1)).
type Quaternion struct {
	W, X, Y, Z float32
}

func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAngleAxis returns the rotation by the given angle (in
// radians) around the given axis, which is assumed to be normalized.
func QuaternionFromAngleAxis(angle float32, axis Vec3) Quaternion {
	s, c := Sin(angle/2), Cos(angle/2)
	return Quaternion{W: c, X: s * axis[0], Y: s * axis[1], Z: s * axis[2]}
}

// QuaternionFromTo returns frac of the minimal rotation that takes the
// unit vector from onto the unit vector to. If the two are parallel or
// antiparallel there is no unique rotation axis and the components of the
// result are NaN; callers are expected to check for that (via IsNaN) and
// skip applying the rotation.
func QuaternionFromTo(from, to Vec3, frac float32) Quaternion {
	axis := Cross3f(from, to)
	// Note: not Normalize3f; a degenerate axis must come out as NaN
	// rather than zero so the caller can detect it.
	axis = Scale3f(axis, 1/Length3f(axis))
	angle := Acos(Clamp(Dot3f(from, to), -1, 1)) * frac
	return QuaternionFromAngleAxis(angle, axis)
}

// QuaternionFromDirectionAndRoll returns the orientation with the body
// forward axis along the horizontal direction dir and the given roll
// angle (radians) about it. dir does not need to be normalized; a zero
// dir gives an identity heading.
func QuaternionFromDirectionAndRoll(dir Vec3, roll float32) Quaternion {
	heading := QuaternionFromAngleAxis(Atan2(-dir[2], dir[0]), Vec3{0, 1, 0})
	if roll == 0 {
		return heading
	}
	return QuaternionFromAngleAxis(roll, Normalize3f(dir)).Mul(heading)
}

// Mul returns the Hamilton product q*r: the rotation r followed by the
// rotation q.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Normalized returns the unit quaternion in the same direction;
// orientation state must be renormalized after every composition so that
// floating-point drift from repeated multiplication doesn't accumulate.
func (q Quaternion) Normalized() Quaternion {
	l := Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Rotate applies the rotation to the given vector.
func (q Quaternion) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2(u x (u x v)), u = (x,y,z)
	u := Vec3{q.X, q.Y, q.Z}
	t := Scale3f(Cross3f(u, v), 2)
	return Add3f(Add3f(v, Scale3f(t, q.W)), Cross3f(u, t))
}

// ToEuler decomposes the orientation into roll, pitch, and heading, all
// in degrees. Roll and pitch are zero for straight-and-level flight;
// heading is measured from the +x axis toward +z.
func (q Quaternion) ToEuler() (roll, pitch, heading float32) {
	fwd := q.Rotate(Vec3{1, 0, 0})
	up := q.Rotate(Vec3{0, 1, 0})
	right := q.Rotate(Vec3{0, 0, 1})

	pitch = Degrees(Asin(Clamp(fwd[1], -1, 1)))
	roll = Degrees(Atan2(-right[1], up[1]))
	heading = Degrees(Atan2(fwd[2], fwd[0]))
	return
}
