// fdm/state.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fdm

import (
	"fmt"
	"log/slog"

	"github.com/avdyn/flightsim/math"
	"github.com/avdyn/flightsim/util"
)

// FlightState is the complete per-aircraft simulation state. One instance
// is created per simulated aircraft at startup and then mutated in place
// by Step every tick for the life of the simulation. Aircraft are fully
// independent: distinct FlightStates share nothing mutable, so they can
// be stepped concurrently given the same read-only Environment.
type FlightState struct {
	Position    math.Vec3       // world space, meters; y <= 0 is on the ground
	Velocity    math.Vec3       // world space, meters/second
	Orientation math.Quaternion // unit quaternion defining the body axes

	// Pilot controls, written by the owner between steps.
	RollInput  float32 // normalized, [-1, 1]
	PitchInput float32 // normalized, [-1, 1]
	Power      float32 // throttle, [0, maxPower]
	Flaps      bool

	// PitchTrim is the smoothed pitch bias that actually steers the
	// velocity direction; it trails PitchInput to give a sluggish,
	// momentum-like response and is forced nose-up while on the ground.
	// It persists across ticks and so is part of the state rather than a
	// local in Step.
	PitchTrim float32

	Wind math.Vec3 // meters/second, set by the owner; rarely changes

	// AirborneTicks counts consecutive steps with Position[1] > 0. It is
	// reset to zero on the step that detects ground contact, which is
	// also what keeps repeated ground contact from re-triggering landing
	// evaluation.
	AirborneTicks int

	// Telemetry, recomputed by Step every tick purely for display; none
	// of it is read back as simulation input.
	Lift          math.Vec3
	Drag          math.Vec3
	Thrust        math.Vec3
	NetForce      math.Vec3
	Accel         math.Vec3
	Speed         float32
	AngleOfAttack float32 // degrees; always finite

	// LandingReport is set on touchdown after a sufficiently long flight
	// and cleared again once the aircraft has been airborne for a while.
	LandingReport *LandingReport
}

const (
	maxPower       = 10
	powerIncrement = 0.1
)

// MakeFlightState returns a FlightState matching the standard spawn:
// short final over the runway threshold, throttled up, wings level.
func MakeFlightState() FlightState {
	return FlightState{
		Position:      math.Vec3{0, 10, 0},
		Velocity:      math.Vec3{0, 0, 200},
		Orientation:   math.QuaternionFromDirectionAndRoll(math.Vec3{0, 0, 1}, 0),
		Power:         3, // throttle up
		AirborneTicks: 1,
	}
}

// SetRoll sets the aileron input, clamped to [-1, 1]. On the ground the
// same input acts as rudder.
func (fs *FlightState) SetRoll(roll float32) {
	fs.RollInput = math.Clamp(roll, -1, 1)
}

// SetPitch sets the elevator input, clamped to [-1, 1].
func (fs *FlightState) SetPitch(pitch float32) {
	fs.PitchInput = math.Clamp(pitch, -1, 1)
}

// AdjustPower changes the throttle by the given number of discrete
// increments (positive or negative), clamping to [0, 10].
func (fs *FlightState) AdjustPower(increments int) {
	fs.Power = math.Clamp(fs.Power+float32(increments)*powerIncrement, 0, maxPower)
}

func (fs *FlightState) ToggleFlaps() {
	fs.Flaps = !fs.Flaps
}

func (fs *FlightState) SetWind(wind math.Vec3) {
	fs.Wind = wind
}

// IsOnGround reports whether the aircraft is in contact with the ground.
func (fs *FlightState) IsOnGround() bool {
	return fs.Position[1] <= groundEpsilon
}

// Summary returns a multi-line instrument readout of the current state
// for display.
func (fs *FlightState) Summary() string {
	roll, pitch, heading := fs.Orientation.ToEuler()
	s := fmt.Sprintf("Speed:     %4.3f m/s, %4.1f kph, %4.1f mph\n",
		fs.Speed, fs.Speed*3.6, fs.Speed*2.237)
	s += fmt.Sprintf("Power:     %4.1f\n", fs.Power)
	s += fmt.Sprintf("Altitude:  %4.2f m\n", fs.Position[1])
	s += fmt.Sprintf("Sink rate: %4.2f m/s\n", fs.Velocity[1])
	s += fmt.Sprintf("AOA:       %4.4f\n", fs.AngleOfAttack)
	s += fmt.Sprintf("Roll:      %4.1f\n", roll)
	s += fmt.Sprintf("Pitch:     %4.1f\n", pitch)
	s += fmt.Sprintf("Heading:   %4.1f\n", heading)
	s += fmt.Sprintf("Flaps:     %d", util.Select(fs.Flaps, 1, 0))
	return s
}

func (fs FlightState) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Any("position", fs.Position),
		slog.Float64("speed", float64(fs.Speed)),
		slog.Float64("altitude", float64(fs.Position[1])),
		slog.Float64("power", float64(fs.Power)),
		slog.Float64("aoa", float64(fs.AngleOfAttack)),
		slog.Int("airborne_ticks", fs.AirborneTicks),
	}
	if fs.LandingReport != nil {
		attrs = append(attrs, slog.Any("landing_report", *fs.LandingReport))
	}
	return slog.GroupValue(attrs...)
}
