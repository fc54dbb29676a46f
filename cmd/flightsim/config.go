// cmd/flightsim/config.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avdyn/flightsim/fdm"
	"github.com/avdyn/flightsim/math"
)

// Config describes a headless simulation run: the fleet, the weather,
// and how long to run.
type Config struct {
	// DT is the integration timestep in seconds.
	DT float32 `json:"dt"`
	// Steps is the number of timesteps to run.
	Steps int `json:"steps"`

	Aircraft []AircraftConfig `json:"aircraft"`
	Wind     WindConfig       `json:"wind"`

	// Environment optionally overrides the standard aerodynamic tuning.
	Environment *fdm.Environment `json:"environment,omitempty"`

	Seed int64 `json:"seed"`
}

type AircraftConfig struct {
	Callsign string    `json:"callsign"`
	Position math.Vec3 `json:"position"`
	Velocity math.Vec3 `json:"velocity"`
	Power    float32   `json:"power"`

	// Script optionally gives scripted control inputs, applied just
	// before the given step.
	Script []ScriptEntry `json:"script,omitempty"`
}

type ScriptEntry struct {
	Step        int     `json:"step"`
	Roll        float32 `json:"roll"`
	Pitch       float32 `json:"pitch"`
	PowerDelta  int     `json:"power_delta"`
	ToggleFlaps bool    `json:"toggle_flaps"`
}

type WindConfig struct {
	Steady math.Vec3 `json:"steady"`
	Gust   float32   `json:"gust"`
}

// defaultConfig is a single aircraft on short final with calm wind.
func defaultConfig() *Config {
	return &Config{
		DT:    0.001,
		Steps: 100000,
		Aircraft: []AircraftConfig{
			{Callsign: "N123AB", Position: math.Vec3{0, 10, 0}, Velocity: math.Vec3{0, 0, 200}, Power: 3},
		},
	}
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if config.DT <= 0 {
		return nil, fmt.Errorf("%s: dt must be positive", path)
	}
	if len(config.Aircraft) == 0 {
		return nil, fmt.Errorf("%s: no aircraft specified", path)
	}
	seen := make(map[string]interface{})
	for _, ac := range config.Aircraft {
		if ac.Callsign == "" {
			return nil, fmt.Errorf("%s: aircraft with empty callsign", path)
		}
		if _, ok := seen[ac.Callsign]; ok {
			return nil, fmt.Errorf("%s: duplicate callsign %q", path, ac.Callsign)
		}
		seen[ac.Callsign] = nil

		for _, entry := range ac.Script {
			if entry.Step < 0 {
				return nil, fmt.Errorf("%s: %s: negative script step %d", path,
					ac.Callsign, entry.Step)
			}
		}
	}
	return config, nil
}

// FlightState returns the initial state for the configured aircraft:
// oriented along its velocity, wings level.
func (ac *AircraftConfig) FlightState() fdm.FlightState {
	fs := fdm.MakeFlightState()
	fs.Position = ac.Position
	fs.Velocity = ac.Velocity
	fs.Power = math.Clamp(ac.Power, 0, 10)

	dir := math.Vec3{ac.Velocity[0], 0, ac.Velocity[2]}
	if math.Length3f(dir) > 0 {
		fs.Orientation = math.QuaternionFromDirectionAndRoll(dir, 0)
	}
	return fs
}
