// math/quaternion_test.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func quatNorm(q Quaternion) float32 {
	return Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

func TestQuaternionRotate(t *testing.T) {
	for _, tc := range []struct {
		angle float32 // degrees
		axis  Vec3
		v     Vec3
		want  Vec3
	}{
		// 90 degrees about y takes +x to -z.
		{90, Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		// 90 degrees about x takes +y to +z.
		{90, Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		// 90 degrees about z takes +x to +y.
		{90, Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		// Vectors along the axis are unchanged.
		{137, Vec3{0, 1, 0}, Vec3{0, 3, 0}, Vec3{0, 3, 0}},
		// Identity.
		{0, Vec3{1, 0, 0}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	} {
		q := QuaternionFromAngleAxis(Radians(tc.angle), tc.axis)
		if got := q.Rotate(tc.v); !vecsClose(got, tc.want, 1e-5) {
			t.Errorf("rotate %v by %v deg about %v: got %v, want %v",
				tc.v, tc.angle, tc.axis, got, tc.want)
		}
	}
}

func TestQuaternionMul(t *testing.T) {
	// Two rotations about the same axis compose by adding angles.
	a := QuaternionFromAngleAxis(Radians(30), Vec3{0, 1, 0})
	b := QuaternionFromAngleAxis(Radians(60), Vec3{0, 1, 0})
	want := QuaternionFromAngleAxis(Radians(90), Vec3{0, 1, 0})

	got := a.Mul(b).Rotate(Vec3{1, 0, 0})
	if !vecsClose(got, want.Rotate(Vec3{1, 0, 0}), 1e-5) {
		t.Errorf("composed rotation: got %v", got)
	}

	// q.Mul(r) applies r first: rotating 90 about x takes +y to +z, and
	// then rotating 90 about y takes +z to +x.
	q := QuaternionFromAngleAxis(Radians(90), Vec3{0, 1, 0}).
		Mul(QuaternionFromAngleAxis(Radians(90), Vec3{1, 0, 0}))
	if got := q.Rotate(Vec3{0, 1, 0}); !vecsClose(got, Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("ordered composition: got %v, want (1 0 0)", got)
	}
}

func TestQuaternionNormalized(t *testing.T) {
	q := Quaternion{W: 2, X: 0, Y: 2, Z: 0}
	n := q.Normalized()
	if l := quatNorm(n); Abs(l-1) > 1e-6 {
		t.Errorf("norm after Normalized: got %v", l)
	}

	// Degenerate input becomes the identity rather than NaN.
	if got := (Quaternion{}).Normalized(); got != IdentityQuaternion() {
		t.Errorf("Normalized of zero quaternion: got %+v", got)
	}
}

func TestQuaternionFromTo(t *testing.T) {
	from, to := Vec3{1, 0, 0}, Vec3{0, 0, 1}

	// Full rotation takes from onto to.
	q := QuaternionFromTo(from, to, 1)
	if got := q.Rotate(from); !vecsClose(got, to, 1e-5) {
		t.Errorf("full rotation: got %v, want %v", got, to)
	}

	// Half the rotation lands halfway in angle.
	h := QuaternionFromTo(from, to, 0.5)
	got := h.Rotate(from)
	if angle := Degrees(Acos(Dot3f(got, from))); Abs(angle-45) > 0.01 {
		t.Errorf("half rotation angle: got %v deg, want 45", angle)
	}

	// Degenerate cases have no rotation axis; the caller is expected to
	// check for NaN and skip.
	for _, to := range []Vec3{from, Scale3f(from, -1)} {
		q := QuaternionFromTo(from, to, 0.001)
		if !IsNaN(q.X) {
			t.Errorf("degenerate from-to %v: got %+v, want NaN components", to, q)
		}
	}
}

func TestQuaternionFromDirectionAndRoll(t *testing.T) {
	for _, tc := range []struct {
		dir  Vec3
		roll float32 // radians
	}{
		{Vec3{1, 0, 0}, 0},
		{Vec3{0, 0, 1}, 0},
		{Vec3{-1, 0, 1}, 0},
		{Vec3{0, 0, 1}, Radians(10)},
		{Vec3{1, 0, -1}, Radians(-30)},
	} {
		q := QuaternionFromDirectionAndRoll(tc.dir, tc.roll)

		if got := q.Rotate(Vec3{1, 0, 0}); !vecsClose(got, Normalize3f(tc.dir), 1e-5) {
			t.Errorf("dir %v: forward axis %v", tc.dir, got)
		}

		roll, pitch, _ := q.ToEuler()
		if Abs(roll-Degrees(tc.roll)) > 0.01 {
			t.Errorf("dir %v roll %v: got roll %v deg", tc.dir, tc.roll, roll)
		}
		if Abs(pitch) > 0.01 {
			t.Errorf("dir %v: got pitch %v deg, want 0", tc.dir, pitch)
		}
	}
}

func TestToEuler(t *testing.T) {
	// Pitch up 2 degrees (about the right axis) composed with roll 1
	// degree (about the forward axis).
	q := QuaternionFromAngleAxis(Radians(2), Vec3{0, 0, 1}).
		Mul(QuaternionFromAngleAxis(Radians(1), Vec3{1, 0, 0}))

	roll, pitch, heading := q.ToEuler()
	if Abs(pitch-2) > 0.01 {
		t.Errorf("pitch: got %v, want 2", pitch)
	}
	if Abs(roll-1) > 0.01 {
		t.Errorf("roll: got %v, want 1", roll)
	}
	if Abs(heading) > 0.1 {
		t.Errorf("heading: got %v, want 0", heading)
	}

	// Heading is measured from +x toward +z.
	_, _, heading = QuaternionFromDirectionAndRoll(Vec3{0, 0, 1}, 0).ToEuler()
	if Abs(heading-90) > 0.01 {
		t.Errorf("heading along +z: got %v, want 90", heading)
	}
}
