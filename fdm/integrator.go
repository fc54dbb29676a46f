// fdm/integrator.go
// Copyright(c) 2023-2026 flightsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// This implements a compact force-based flight model with lift, drag,
// thrust and gravity forces.
//
// Orientation is the interesting part. A common approach is to treat each
// wing/control surface as an independent aerofoil acting on a single
// rigid body; while more realistic, that complicates the code and
// requires significantly more computation (inertia tensors and the like).
// Instead we take advantage of the directional stability of aircraft,
// which tend to reorient toward the forward velocity:
//   https://en.wikipedia.org/wiki/Directional_stability
// The body orientation is gradually interpolated toward the velocity
// direction with quaternions each tick.
//
// The model still retains the difference between the velocity direction
// and the body forward axis, which is what gives the angle of attack for
// lift. There is no torque, angular velocity, or rotational inertia;
// stalls are possible but not flat spins or 3D flying.

package fdm

import (
	"github.com/avdyn/flightsim/math"
)

// Environment collects the fixed aerodynamic and world parameters for
// Step. It is immutable during a step and shared read-only across
// aircraft, so steps for distinct FlightStates may run concurrently.
type Environment struct {
	LiftFactor float32
	DragFactor float32
	Mass       float32 // kg
	Gravity    float32 // m/s^2
	MaxSpeed   float32 // m/s
	AirDensity float32 // kg/m^3
	Runway     Runway

	// MinAirborneTicks is the minimum number of consecutive airborne
	// steps before a ground contact counts as a landing attempt worth
	// evaluating; brief skips along the runway don't qualify.
	MinAirborneTicks int
	// ReportClearTicks is the airborne duration after which a stale
	// landing report is cleared.
	ReportClearTicks int
}

// MakeEnvironment returns the standard tuning. The individual factors are
// not physical; they were chosen together for plausible gliding, stall,
// and landing behavior, so change one and you likely need to retune the
// rest.
func MakeEnvironment() Environment {
	return Environment{
		LiftFactor:       0.0001,
		DragFactor:       0.0001,
		Mass:             0.1,
		Gravity:          9.8,
		MaxSpeed:         500, // 500 m/s = 1800 kph = 1118 mph
		AirDensity:       1.225,
		Runway:           Runway{Width: 50, Length: 2000},
		MinAirborneTicks: 2000,
		ReportClearTicks: 3200,
	}
}

const (
	// Pitch trim is forced to this nose-up bias while on the ground so
	// that rotation comes naturally on the takeoff roll.
	groundTrimBias = 1.1
	// Per-tick exponential smoothing of pitch trim toward the pilot's
	// pitch input.
	trimDecay = 0.9995
	trimGain  = 0.005

	pitchRate = 0.0001 // radians per unit trim per tick
	rollRate  = 0.001  // radians per unit input per tick

	// Fraction of the forward-to-velocity rotation applied per tick; the
	// directional stability of the airframe.
	stabilityFrac = 0.001

	groundFriction  = 0.9999
	windForceFactor = 0.1
	groundEpsilon   = 0.00001
)

// Step advances the flight state by one fixed timestep of dt seconds. It
// mutates fs in place and always succeeds: the geometric singularities
// (zero speed, velocity antiparallel to the body forward axis) are
// handled by substitution or by skipping the offending term, never by
// failing. Note the integration order at the bottom: position is advanced
// with the pre-update velocity and the velocity update comes last. The
// flight feel (gliding, stalls) was tuned against that ordering, so don't
// "fix" it.
func Step(fs *FlightState, dt float32, env Environment) {
	// Body frame of reference
	fwd := fs.Orientation.Rotate(math.Vec3{1, 0, 0})   // X-axis is body forward
	up := fs.Orientation.Rotate(math.Vec3{0, 1, 0})    // Y-axis is body up
	right := fs.Orientation.Rotate(math.Vec3{0, 0, 1}) // Z-axis is body right

	// Velocity limit. Planes don't go in reverse. The division is
	// benign when the speed is zero since vaxis is replaced wholesale
	// below.
	speed := math.Length3f(fs.Velocity)
	vaxis := math.Scale3f(fs.Velocity, 1/speed)
	speed = math.Clamp(speed, 0, env.MaxSpeed)
	if speed == 0 {
		vaxis = fwd
	}
	fs.Speed = speed

	// Pitch inputs modify the direction of travel, not the orientation;
	// the body then follows the velocity via directional stability below.
	if fs.Position[1] <= 0 {
		fs.PitchTrim = groundTrimBias
	}
	fs.PitchTrim = fs.PitchTrim*trimDecay + fs.PitchInput*trimGain
	ctrlPitch := math.QuaternionFromAngleAxis(fs.PitchTrim*pitchRate, right)
	vaxis = math.Normalize3f(ctrlPitch.Rotate(vaxis))

	fs.Velocity = math.Scale3f(vaxis, speed)

	// Flaps: lift bonus decreases with speed, wing area (drag) increases.
	var flapLift, wingArea float32 = 0, 1
	if fs.Flaps {
		flapLift = math.Cos(speed / env.MaxSpeed * (math.Pi / 2))
		wingArea = 2
	}

	// Dynamic pressure; airflow is aircraft speed plus wind over the wing.
	airflow := speed + math.Dot3f(fs.Wind, math.Scale3f(vaxis, -1))
	dynamicPressure := 0.5 * env.AirDensity * airflow * airflow

	// Angle of attack: angle between the velocity and body forward. The
	// dot product can drift slightly past +/-1 and hand acos a NaN, in
	// which case fall back to the +1 degree offset alone.
	fs.AngleOfAttack = math.Degrees(math.Acos(math.Dot3f(fwd, vaxis))) + 1
	if math.IsNaN(fs.AngleOfAttack) {
		fs.AngleOfAttack = 1
	}

	// Lift equation, L = CL (1/2 p v^2) A, approximating the CL curve
	// with sin.
	cl := math.Sin(fs.AngleOfAttack*0.2) + flapLift
	fs.Lift = math.Scale3f(up, cl*dynamicPressure*env.LiftFactor*0.5)

	// Drag equation, D = Cd (1/2 p v^2) A
	fs.Drag = math.Scale3f(vaxis, -dynamicPressure*env.DragFactor*wingArea)

	fs.Thrust = math.Scale3f(fwd, fs.Power)

	fs.NetForce = math.Add3f(math.Add3f(fs.Lift, fs.Drag), fs.Thrust)

	// Directional stability: reorient a small fraction of the way toward
	// the velocity vector. The rotation is degenerate when fwd and vaxis
	// are (anti)parallel; in that case its components come out NaN and we
	// skip it for this tick rather than corrupting the orientation.
	stab := math.QuaternionFromTo(fwd, vaxis, stabilityFrac)
	if !math.IsNaN(stab.X) {
		fs.Orientation = stab.Mul(fs.Orientation).Normalized()
	}

	// Roll inputs modify the body orientation along its forward axis.
	ctrlRoll := math.QuaternionFromAngleAxis(fs.RollInput*rollRate, fwd)
	fs.Orientation = ctrlRoll.Mul(fs.Orientation).Normalized()

	// Body forces, gravity, and a small drag-like wind force,
	// Fw = w^2 p A.
	fs.Accel = math.Scale3f(fs.NetForce, 1/env.Mass)
	fs.Accel = math.Add3f(fs.Accel, math.Vec3{0, -env.Gravity, 0})
	fs.Accel = math.Add3f(fs.Accel, math.Scale3f(fs.Wind, env.AirDensity*windForceFactor))

	// Integrate position with the pre-update velocity.
	fs.Position = math.Add3f(fs.Position, math.Scale3f(fs.Velocity, dt))

	if fs.Position[1] <= groundEpsilon {
		// Record the landing outcome before ground handling wipes out
		// the evidence, but only if this is a real touchdown rather
		// than a bounce or the takeoff roll.
		if fs.AirborneTicks > env.MinAirborneTicks {
			report := EvaluateLanding(fs, env.Runway)
			fs.LandingReport = &report
		}
		fs.AirborneTicks = 0

		fs.Position[1] = 0
		fs.Velocity[1] = 0
		// Ground reaction: the runway cancels all vertical acceleration,
		// so the velocity integration below leaves velocity.y at exactly
		// zero. Liftoff comes from the trim rotation of the velocity
		// direction, not from vertical acceleration.
		fs.Accel[1] = 0
		fs.Velocity = math.Scale3f(fs.Velocity, groundFriction) // ground friction

		// Zero pitch and roll, keeping only the heading.
		fs.Orientation = math.QuaternionFromDirectionAndRoll(math.Vec3{fwd[0], 0, fwd[2]}, 0)

		// On the ground, left/right input is rudder: yaw the body and
		// the velocity together so the aircraft can taxi.
		rudder := math.QuaternionFromAngleAxis(-fs.RollInput*rollRate, math.Vec3{0, 1, 0})
		fs.Orientation = rudder.Mul(fs.Orientation).Normalized()
		fs.Velocity = rudder.Rotate(fs.Velocity)
	} else {
		fs.AirborneTicks++
		if fs.AirborneTicks > env.ReportClearTicks {
			fs.LandingReport = nil
		}
	}

	// Integrate velocity last.
	fs.Velocity = math.Add3f(fs.Velocity, math.Scale3f(fs.Accel, dt))
}
