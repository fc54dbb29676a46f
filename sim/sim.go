// sim/sim.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/avdyn/flightsim/fdm"
	"github.com/avdyn/flightsim/log"
	"github.com/avdyn/flightsim/math"
	"github.com/avdyn/flightsim/util"
	"github.com/avdyn/flightsim/wx"

	"github.com/brunoga/deep"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDuplicateCallsign = errors.New("callsign already in use")
	ErrUnknownCallsign   = errors.New("no aircraft with that callsign")
)

// Config gives the fixed parameters of a simulation; they do not change
// after New.
type Config struct {
	// DT is the integration timestep in seconds.
	DT          float32
	Environment fdm.Environment
	Wind        *wx.WindModel
	// ReportHistory is the number of recent landing reports retained;
	// zero gets a reasonable default.
	ReportHistory int
}

// Sim owns a fleet of independent aircraft and advances them all in
// lockstep at a fixed timestep. All exported methods are safe for
// concurrent use; the presentation shell writes control inputs and reads
// snapshots and events between ticks.
type Sim struct {
	mu util.LoggingMutex
	lg *log.Logger

	aircraft map[string]*Aircraft

	dt   float32
	env  fdm.Environment
	wind *wx.WindModel

	eventStream *EventStream
	reports     *util.RingBuffer[fdm.LandingReport]

	paused bool
	ticks  int64

	lastUpdateTime time.Time
	updateTimeSlop time.Duration
}

func New(config Config, lg *log.Logger) *Sim {
	if config.DT <= 0 {
		config.DT = 0.001
	}
	if config.ReportHistory == 0 {
		config.ReportHistory = 16
	}
	if config.Wind == nil {
		config.Wind = wx.MakeWindModel(math.Vec3{}, 0, 0)
	}

	return &Sim{
		lg:             lg,
		aircraft:       make(map[string]*Aircraft),
		dt:             config.DT,
		env:            config.Environment,
		wind:           config.Wind,
		eventStream:    NewEventStream(lg),
		reports:        util.NewRingBuffer[fdm.LandingReport](config.ReportHistory),
		lastUpdateTime: time.Now(),
	}
}

// AddAircraft spawns an aircraft with the given callsign and initial
// state.
func (s *Sim) AddAircraft(callsign string, state fdm.FlightState) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if _, ok := s.aircraft[callsign]; ok {
		return ErrDuplicateCallsign
	}
	s.aircraft[callsign] = &Aircraft{Callsign: callsign, State: state}

	s.lg.Info("spawned aircraft", slog.String("callsign", callsign), slog.Any("state", state))
	return nil
}

// ControlInput carries one tick's worth of pilot input for an aircraft.
type ControlInput struct {
	Roll        float32 // [-1, 1]
	Pitch       float32 // [-1, 1]
	PowerDelta  int     // discrete throttle increments
	ToggleFlaps bool
}

// SetControls applies pilot input to the given aircraft; it takes effect
// on the next tick.
func (s *Sim) SetControls(callsign string, input ControlInput) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.aircraft[callsign]
	if !ok {
		return ErrUnknownCallsign
	}

	ac.State.SetRoll(input.Roll)
	ac.State.SetPitch(input.Pitch)
	if input.PowerDelta != 0 {
		ac.State.AdjustPower(input.PowerDelta)
	}
	if input.ToggleFlaps {
		ac.State.ToggleFlaps()
	}
	return nil
}

// SetPaused pauses or resumes the simulation; while paused, Update and
// Step do nothing.
func (s *Sim) SetPaused(p bool) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if s.paused != p {
		s.paused = p
		s.eventStream.Post(Event{
			Type:    StatusMessageEvent,
			Message: util.Select(p, "Simulation paused.", "Simulation resumed."),
		})
	}
}

// Update advances the simulation in real time: it figures out how much
// wallclock time has passed since the last call and runs the
// corresponding number of fixed timesteps, carrying any remainder over
// to the next call.
func (s *Sim) Update() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	elapsed := time.Since(s.lastUpdateTime) + s.updateTimeSlop
	s.lastUpdateTime = time.Now()

	if s.paused {
		s.updateTimeSlop = 0
		return
	}

	tick := time.Duration(float64(s.dt) * float64(time.Second))
	n := int(elapsed / tick)
	s.updateTimeSlop = elapsed - time.Duration(n)*tick

	if n > 10000 {
		s.lg.Warn("unexpected hitch in update rate", slog.Duration("elapsed", elapsed),
			slog.Int("steps", n))
	}

	for i := 0; i < n; i++ {
		s.step()
	}
}

// Step runs exactly one fixed timestep (unless paused). Headless drivers
// that don't care about wallclock pacing call this in a loop.
func (s *Sim) Step() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if !s.paused {
		s.step()
	}
}

func (s *Sim) step() {
	wind := s.wind.Sample()

	// Aircraft are fully independent given the shared read-only
	// environment, so step them in parallel.
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, ac := range s.aircraft {
		ac := ac
		eg.Go(func() error {
			ac.State.SetWind(wind)
			fdm.Step(&ac.State, s.dt, s.env)
			return nil
		})
	}
	_ = eg.Wait()

	s.ticks++

	// Publish any new landing reports, and sanity-check the stepped
	// states while we're at it. Sorted order so event order is
	// deterministic.
	for _, callsign := range util.SortedMapKeys(s.aircraft) {
		ac := s.aircraft[callsign]
		ac.Check(s.lg)

		report := ac.State.LandingReport
		if report == nil {
			ac.publishedReport = nil
			continue
		}
		if report == ac.publishedReport {
			continue
		}
		ac.publishedReport = report
		s.reports.Add(*report)

		s.eventStream.Post(Event{
			Type:     util.Select(report.Landed, LandedEvent, CrashedEvent),
			Callsign: ac.Callsign,
			Message:  report.String(),
			Report:   report,
		})
		s.lg.Info("touchdown", slog.String("callsign", ac.Callsign), slog.Any("report", *report))
	}
}

// Ticks returns the number of timesteps run so far.
func (s *Sim) Ticks() int64 {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return s.ticks
}

// Subscribe registers an event stream subscription for landing outcomes
// and status messages.
func (s *Sim) Subscribe() *EventsSubscription {
	return s.eventStream.Subscribe()
}

// Snapshot returns a deep copy of every aircraft's state, keyed by
// callsign, so the caller never aliases live simulation state.
func (s *Sim) Snapshot() map[string]fdm.FlightState {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	snap := make(map[string]fdm.FlightState, len(s.aircraft))
	for callsign, ac := range s.aircraft {
		snap[callsign] = deep.MustCopy(ac.State)
	}
	return snap
}

// State returns a deep copy of one aircraft's state.
func (s *Sim) State(callsign string) (fdm.FlightState, error) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.aircraft[callsign]
	if !ok {
		return fdm.FlightState{}, ErrUnknownCallsign
	}
	return deep.MustCopy(ac.State), nil
}

// RecentReports returns the most recent landing reports, oldest first.
func (s *Sim) RecentReports() []fdm.LandingReport {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	reports := make([]fdm.LandingReport, 0, s.reports.Size())
	for i := 0; i < s.reports.Size(); i++ {
		reports = append(reports, s.reports.Get(i))
	}
	return reports
}

// Callsigns returns the callsigns of all aircraft, sorted.
func (s *Sim) Callsigns() []string {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return util.SortedMapKeys(s.aircraft)
}
