// wx/wind.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"github.com/avdyn/flightsim/math"
	"github.com/avdyn/flightsim/rand"
)

// WindModel produces the wind vector seen by the aircraft each tick: a
// steady component plus an optional gust component that wanders as a
// bounded random walk. With a zero gust magnitude it reduces to the
// constant steady wind.
type WindModel struct {
	steady math.Vec3
	gust   float32 // maximum gust magnitude, m/s
	offset math.Vec3
	r      rand.Rand
}

func MakeWindModel(steady math.Vec3, gust float32, seed int64) *WindModel {
	w := &WindModel{steady: steady, gust: gust, r: rand.New()}
	w.r.Seed(seed)
	return w
}

// The fraction of the gust offset carried tick to tick and the
// per-component step size; gusts evolve slowly relative to the physics
// rate.
const (
	gustPersistence = 0.999
	gustStep        = 0.01
)

// Sample advances the gust state by one tick and returns the current
// total wind vector.
func (w *WindModel) Sample() math.Vec3 {
	if w.gust == 0 {
		return w.steady
	}

	for i := range w.offset {
		w.offset[i] = w.offset[i]*gustPersistence + w.r.Float32InRange(-gustStep, gustStep)
	}

	// Clamp the walk so the gust never exceeds its rated magnitude.
	if l := math.Length3f(w.offset); l > w.gust {
		w.offset = math.Scale3f(w.offset, w.gust/l)
	}

	return math.Add3f(w.steady, w.offset)
}

// Steady returns the steady component alone.
func (w *WindModel) Steady() math.Vec3 {
	return w.steady
}
