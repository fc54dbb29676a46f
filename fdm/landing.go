// fdm/landing.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fdm

import (
	"fmt"
	"log/slog"

	"github.com/avdyn/flightsim/math"
	"github.com/avdyn/flightsim/util"
)

// Runway gives the half-extents of the runway, centered at the origin:
// the touchdown point must satisfy |x| < Width and |z| < Length.
type Runway struct {
	Width  float32 // meters
	Length float32 // meters
}

func (r Runway) Contains(p math.Vec3) bool {
	return p[0] > -r.Width && p[0] < r.Width && p[2] > -r.Length && p[2] < r.Length
}

// Thresholds for a good landing.
const (
	landingMaxSpeed = 80 // m/s
	landingMaxSink  = 2  // m/s
	landingMaxPitch = 5  // degrees
	landingMaxRoll  = 5  // degrees
)

// LandingReport records the outcome of one touchdown: the overall
// classification plus each criterion's measured value and pass/fail.
// It is pure output for display; nothing in it feeds back into the
// physics.
type LandingReport struct {
	Landed bool // all criteria passed

	Speed    float32 // m/s
	SinkRate float32 // m/s, signed (negative is descending)
	Pitch    float32 // degrees, signed
	Roll     float32 // degrees, signed
	Position math.Vec3

	OKSpeed  bool
	OKSink   bool
	OKPitch  bool
	OKRoll   bool
	OKRunway bool
}

// EvaluateLanding classifies the touchdown described by the given state.
// It is a pure function of the state; Step calls it on the ground-contact
// transition, before the contact handling zeroes the vertical velocity
// and levels the orientation.
func EvaluateLanding(fs *FlightState, runway Runway) LandingReport {
	roll, pitch, _ := fs.Orientation.ToEuler()

	r := LandingReport{
		Speed:    fs.Speed,
		SinkRate: fs.Velocity[1],
		Pitch:    pitch,
		Roll:     roll,
		Position: fs.Position,
	}
	r.OKSpeed = r.Speed < landingMaxSpeed
	r.OKSink = math.Abs(r.SinkRate) < landingMaxSink
	r.OKPitch = math.Abs(r.Pitch) < landingMaxPitch
	r.OKRoll = math.Abs(r.Roll) < landingMaxRoll
	r.OKRunway = runway.Contains(fs.Position)
	r.Landed = r.OKSpeed && r.OKSink && r.OKPitch && r.OKRoll && r.OKRunway

	return r
}

// String formats the report the way the cockpit display shows it.
func (r LandingReport) String() string {
	ok := func(b bool) string { return util.Select(b, "OK", "FAIL") }
	s := util.Select(r.Landed, "LANDED!", "CRASH") + "\n"
	s += fmt.Sprintf(" Speed (<%d): %4.1f m/s     %s\n", landingMaxSpeed, r.Speed, ok(r.OKSpeed))
	s += fmt.Sprintf(" Sink rate (<%d): %4.1f m/s      %s\n", landingMaxSink, r.SinkRate, ok(r.OKSink))
	s += fmt.Sprintf(" Pitch (<%d): %4.1f deg     %s\n", landingMaxPitch, math.Abs(r.Pitch), ok(r.OKPitch))
	s += fmt.Sprintf(" Roll (<%d): %4.1f deg     %s\n", landingMaxRoll, math.Abs(r.Roll), ok(r.OKRoll))
	s += fmt.Sprintf(" On Runway: %s\n", util.Select(r.OKRunway, "Yes     OK", "No     FAIL"))
	return s
}

func (r LandingReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("landed", r.Landed),
		slog.Float64("speed", float64(r.Speed)),
		slog.Float64("sink_rate", float64(r.SinkRate)),
		slog.Float64("pitch", float64(r.Pitch)),
		slog.Float64("roll", float64(r.Roll)),
		slog.Bool("on_runway", r.OKRunway))
}
