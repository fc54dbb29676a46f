// fdm/landing_test.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fdm

import (
	"strings"
	"testing"

	"github.com/avdyn/flightsim/math"
)

// touchdownState returns a state at the moment of touchdown with the
// given measured values.
func touchdownState(speed, sink, pitch, roll float32, pos math.Vec3) FlightState {
	fs := MakeFlightState()
	fs.Speed = speed
	fs.Velocity = math.Vec3{0, sink, speed}
	fs.Position = pos
	fs.Orientation = math.QuaternionFromAngleAxis(math.Radians(pitch), math.Vec3{0, 0, 1}).
		Mul(math.QuaternionFromAngleAxis(math.Radians(roll), math.Vec3{1, 0, 0}))
	return fs
}

func TestEvaluateLanding(t *testing.T) {
	runway := Runway{Width: 50, Length: 2000}

	fs := touchdownState(60, -1, 2, 1, math.Vec3{10, 0, 500})
	r := EvaluateLanding(&fs, runway)

	if !r.OKSpeed || !r.OKSink || !r.OKPitch || !r.OKRoll || !r.OKRunway {
		t.Errorf("expected all criteria to pass: %+v", r)
	}
	if !r.Landed {
		t.Errorf("expected a good landing: %+v", r)
	}
	if math.Abs(r.Pitch-2) > 0.01 || math.Abs(r.Roll-1) > 0.01 {
		t.Errorf("measured pitch %v roll %v, want 2 and 1", r.Pitch, r.Roll)
	}
	if r.SinkRate != -1 {
		t.Errorf("measured sink rate %v, want -1", r.SinkRate)
	}
}

func TestEvaluateLandingTooFast(t *testing.T) {
	// Same scenario but too fast: only the speed criterion fails.
	runway := Runway{Width: 50, Length: 2000}

	fs := touchdownState(100, -1, 2, 1, math.Vec3{10, 0, 500})
	r := EvaluateLanding(&fs, runway)

	if r.OKSpeed {
		t.Errorf("speed criterion passed at 100 m/s: %+v", r)
	}
	if !r.OKSink || !r.OKPitch || !r.OKRoll || !r.OKRunway {
		t.Errorf("unrelated criteria affected: %+v", r)
	}
	if r.Landed {
		t.Errorf("expected a crash: %+v", r)
	}
}

func TestEvaluateLandingCriteria(t *testing.T) {
	runway := Runway{Width: 50, Length: 2000}

	for _, tc := range []struct {
		name string
		fs   FlightState
		fail func(r LandingReport) bool
	}{
		{"sink", touchdownState(60, -3, 2, 1, math.Vec3{10, 0, 500}),
			func(r LandingReport) bool { return !r.OKSink && r.OKSpeed && r.OKPitch && r.OKRoll && r.OKRunway }},
		{"pitch", touchdownState(60, -1, 8, 1, math.Vec3{10, 0, 500}),
			func(r LandingReport) bool { return !r.OKPitch && r.OKSpeed && r.OKSink && r.OKRoll && r.OKRunway }},
		{"roll", touchdownState(60, -1, 2, -7, math.Vec3{10, 0, 500}),
			func(r LandingReport) bool { return !r.OKRoll && r.OKSpeed && r.OKSink && r.OKPitch && r.OKRunway }},
		{"off runway wide", touchdownState(60, -1, 2, 1, math.Vec3{60, 0, 500}),
			func(r LandingReport) bool { return !r.OKRunway && r.OKSpeed && r.OKSink && r.OKPitch && r.OKRoll }},
		{"off runway long", touchdownState(60, -1, 2, 1, math.Vec3{10, 0, 2500}),
			func(r LandingReport) bool { return !r.OKRunway }},
	} {
		r := EvaluateLanding(&tc.fs, runway)
		if !tc.fail(r) {
			t.Errorf("%s: unexpected criteria: %+v", tc.name, r)
		}
		if r.Landed {
			t.Errorf("%s: classified as landed: %+v", tc.name, r)
		}
	}
}

func TestLandingReportString(t *testing.T) {
	fs := touchdownState(60, -1, 2, 1, math.Vec3{10, 0, 500})
	good := EvaluateLanding(&fs, Runway{Width: 50, Length: 2000})
	if s := good.String(); !strings.Contains(s, "LANDED!") {
		t.Errorf("report missing LANDED!: %q", s)
	}

	fs = touchdownState(100, -1, 2, 1, math.Vec3{10, 0, 500})
	bad := EvaluateLanding(&fs, Runway{Width: 50, Length: 2000})
	s := bad.String()
	if !strings.Contains(s, "CRASH") {
		t.Errorf("report missing CRASH: %q", s)
	}
	if !strings.Contains(s, "FAIL") {
		t.Errorf("report missing FAIL for the speed criterion: %q", s)
	}
}

func TestRunwayContains(t *testing.T) {
	r := Runway{Width: 50, Length: 2000}
	for _, tc := range []struct {
		p    math.Vec3
		want bool
	}{
		{math.Vec3{0, 0, 0}, true},
		{math.Vec3{49, 0, 1999}, true},
		{math.Vec3{-49, 0, -1999}, true},
		{math.Vec3{50, 0, 0}, false},
		{math.Vec3{0, 0, 2000}, false},
		{math.Vec3{-51, 0, 100}, false},
	} {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v): got %v, want %v", tc.p, got, tc.want)
		}
	}
}
