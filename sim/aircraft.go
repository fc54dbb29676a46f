// sim/aircraft.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"github.com/avdyn/flightsim/fdm"
	"github.com/avdyn/flightsim/log"
	"github.com/avdyn/flightsim/math"
)

// Aircraft couples one FlightState with its identity in the simulation.
// Aircraft never share mutable state so their steps are independent of
// one another.
type Aircraft struct {
	Callsign string
	State    fdm.FlightState

	// publishedReport is the landing report most recently posted to the
	// event stream, so that a report is announced exactly once.
	publishedReport *fdm.LandingReport
}

// Check validates invariants that should hold after every step; the
// integrator is designed to always produce a finite state, so a
// violation here indicates a bug rather than bad pilot input.
func (ac *Aircraft) Check(lg *log.Logger) {
	for _, v := range [][3]float32{ac.State.Position, ac.State.Velocity} {
		for _, x := range v {
			if math.IsNaN(x) {
				lg.Error("NaN in aircraft state", slog.String("callsign", ac.Callsign),
					slog.Any("state", ac.State))
				return
			}
		}
	}

	q := ac.State.Orientation
	if n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z); math.Abs(n-1) > 1e-3 {
		lg.Error("orientation quaternion is not unit length",
			slog.String("callsign", ac.Callsign), slog.Float64("norm", float64(n)))
	}

	if math.IsNaN(ac.State.AngleOfAttack) {
		lg.Error("NaN angle of attack", slog.String("callsign", ac.Callsign))
	}
}

func (ac *Aircraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("callsign", ac.Callsign),
		slog.Any("state", ac.State))
}
