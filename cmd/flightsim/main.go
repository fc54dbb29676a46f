// cmd/flightsim/main.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// flightsim is a headless driver for the flight dynamics model: it spawns
// a fleet of aircraft from a JSON config, runs a fixed number of
// timesteps, and reports the landing outcomes. The interactive shell
// (window, camera, instruments) lives elsewhere and talks to the same sim
// package this does.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/avdyn/flightsim/fdm"
	"github.com/avdyn/flightsim/log"
	"github.com/avdyn/flightsim/sim"
	"github.com/avdyn/flightsim/wx"
)

var (
	configFilename = flag.String("config", "", "filename of JSON file with a simulation configuration")
	steps          = flag.Int("steps", 0, "if non-zero, override the number of timesteps to run")
	logLevel       = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir         = flag.String("logdir", "", "log file directory")
	seed           = flag.Int64("seed", 0, "if non-zero, override the wind model seed")
	quiet          = flag.Bool("quiet", false, "only report landing outcomes, not per-aircraft telemetry")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	config, err := loadConfig(*configFilename)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *steps != 0 {
		config.Steps = *steps
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	env := makeEnvironment(config)
	s := sim.New(sim.Config{
		DT:          config.DT,
		Environment: env,
		Wind:        wx.MakeWindModel(config.Wind.Steady, config.Wind.Gust, config.Seed),
	}, lg)

	for _, ac := range config.Aircraft {
		if err := s.AddAircraft(ac.Callsign, ac.FlightState()); err != nil {
			lg.Errorf("%s: %v", ac.Callsign, err)
			fmt.Fprintf(os.Stderr, "%s: %v\n", ac.Callsign, err)
			os.Exit(1)
		}
	}

	events := s.Subscribe()
	defer events.Unsubscribe()

	script := makeScript(config)
	for i := 0; i < config.Steps; i++ {
		for _, sc := range script[i] {
			if err := s.SetControls(sc.callsign, sc.input); err != nil {
				lg.Errorf("%s: %v", sc.callsign, err)
			}
		}
		s.Step()
	}

	for _, ev := range events.Get() {
		fmt.Printf("%s:\n%s\n", ev.Callsign, ev.Message)
	}

	if !*quiet {
		snap := s.Snapshot()
		for _, callsign := range s.Callsigns() {
			state := snap[callsign]
			fmt.Printf("%s after %d steps:\n%s\n\n", callsign, s.Ticks(), state.Summary())
		}
	}
}

type scriptedInput struct {
	callsign string
	input    sim.ControlInput
}

// makeScript indexes the aircrafts' scripted control inputs by the step
// they apply at.
func makeScript(config *Config) map[int][]scriptedInput {
	script := make(map[int][]scriptedInput)
	for _, ac := range config.Aircraft {
		for _, entry := range ac.Script {
			script[entry.Step] = append(script[entry.Step], scriptedInput{
				callsign: ac.Callsign,
				input: sim.ControlInput{
					Roll:        entry.Roll,
					Pitch:       entry.Pitch,
					PowerDelta:  entry.PowerDelta,
					ToggleFlaps: entry.ToggleFlaps,
				},
			})
		}
	}
	return script
}

func makeEnvironment(config *Config) fdm.Environment {
	if config.Environment != nil {
		return *config.Environment
	}
	return fdm.MakeEnvironment()
}
