// math/vecmat_test.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func vecsClose(a, b Vec3, eps float32) bool {
	return Abs(a[0]-b[0]) < eps && Abs(a[1]-b[1]) < eps && Abs(a[2]-b[2]) < eps
}

func TestVectorArithmetic(t *testing.T) {
	a, b := Vec3{1, 2, 3}, Vec3{4, -5, 6}

	if got := Add3f(a, b); got != (Vec3{5, -3, 9}) {
		t.Errorf("Add3f: got %v", got)
	}
	if got := Sub3f(a, b); got != (Vec3{-3, 7, -3}) {
		t.Errorf("Sub3f: got %v", got)
	}
	if got := Scale3f(a, 2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale3f: got %v", got)
	}
	if got := Dot3f(a, b); got != 4-10+18 {
		t.Errorf("Dot3f: got %v", got)
	}
}

func TestCross(t *testing.T) {
	// Right-handed coordinate system.
	if got := Cross3f(Vec3{1, 0, 0}, Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y: got %v", got)
	}
	if got := Cross3f(Vec3{0, 1, 0}, Vec3{0, 0, 1}); got != (Vec3{1, 0, 0}) {
		t.Errorf("y cross z: got %v", got)
	}

	// The cross product is orthogonal to both operands.
	a, b := Vec3{1, 2, 3}, Vec3{-2, 1, 4}
	c := Cross3f(a, b)
	if d := Dot3f(a, c); Abs(d) > 1e-5 {
		t.Errorf("cross not orthogonal to a: dot %v", d)
	}
	if d := Dot3f(b, c); Abs(d) > 1e-5 {
		t.Errorf("cross not orthogonal to b: dot %v", d)
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize3f(Vec3{3, 0, 4})
	if !vecsClose(n, Vec3{0.6, 0, 0.8}, 1e-6) {
		t.Errorf("Normalize3f: got %v", n)
	}
	if l := Length3f(n); Abs(l-1) > 1e-6 {
		t.Errorf("normalized length: got %v", l)
	}

	// The zero vector comes back unchanged rather than as NaNs.
	if got := Normalize3f(Vec3{}); got != (Vec3{}) {
		t.Errorf("Normalize3f of zero vector: got %v", got)
	}
}

func TestLerp3f(t *testing.T) {
	a, b := Vec3{0, 10, -4}, Vec3{2, 20, 4}
	if got := Lerp3f(0, a, b); got != a {
		t.Errorf("Lerp3f(0): got %v", got)
	}
	if got := Lerp3f(1, a, b); got != b {
		t.Errorf("Lerp3f(1): got %v", got)
	}
	if got := Lerp3f(0.5, a, b); !vecsClose(got, Vec3{1, 15, 0}, 1e-6) {
		t.Errorf("Lerp3f(0.5): got %v", got)
	}
}
