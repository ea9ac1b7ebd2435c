package automata

import (
	"hexworld/internal/randx"
)

// RainState is the Dry/Raining state machine spec.md §4.7 describes.
type RainState int

const (
	Dry RainState = iota
	Raining
)

// Rain constants recovered from world.cpp's rain_data_ handling (see
// SPEC_FULL.md §4.4-4.7 supplemental detail).
const (
	rainTryIntervalTicks = 6 // multiplied by the scheduler's ticks-per-second at call sites
	rainStartThreshold   = randx.MaxLongRand / 256
	rainRampEdgeSeconds  = 10.0
)

// RainMachine tracks the current weather state and exposes intensity for
// the fire automaton and renderer, matching world.cpp's separation of a
// long-period PRNG dedicated to rain from the LCG every other automaton
// shares.
type RainMachine struct {
	rng *randx.LongRand

	state            RainState
	ticksPerSecond   float64
	dayLengthTicks   float64
	startedAtTick    uint64
	durationTicks    float64
	baseIntensity    float64
	ticksSinceTry    uint64
	currentIntensity float64
}

// NewRainMachine seeds a rain state machine. ticksPerSecond and
// dayLengthTicks come from the scheduler's configured tick rate and the
// calendar's day length, both needed to convert the source's
// second/day-fraction constants into tick counts.
func NewRainMachine(seed int64, ticksPerSecond, dayLengthTicks float64) *RainMachine {
	return &RainMachine{
		rng:            randx.NewLongRand(seed),
		state:          Dry,
		ticksPerSecond: ticksPerSecond,
		dayLengthTicks: dayLengthTicks,
	}
}

// State reports the current weather state.
func (r *RainMachine) State() RainState { return r.state }

// Intensity returns the last-published current_intensity value, ready to
// be stored in an atomic.Uint64 via math.Float64bits by the scheduler.
func (r *RainMachine) Intensity() float64 { return r.currentIntensity }

// Tick advances the rain machine by one scheduler tick.
func (r *RainMachine) Tick(tick uint64) {
	switch r.state {
	case Dry:
		r.ticksSinceTry++
		tryInterval := uint64(rainTryIntervalTicks * r.ticksPerSecond)
		if r.ticksSinceTry < tryInterval {
			return
		}
		r.ticksSinceTry = 0
		if !r.rng.Chance(rainStartThreshold) {
			return
		}
		r.startRain(tick)
	case Raining:
		elapsed := float64(tick - r.startedAtTick)
		if elapsed >= r.durationTicks {
			r.state = Dry
			r.currentIntensity = 0
			return
		}
		r.currentIntensity = r.baseIntensity * r.ramp(elapsed)
	}
}

func (r *RainMachine) startRain(tick uint64) {
	median := r.dayLengthTicks / 8
	duration := r.rng.LogNormal(median, 0.5)
	minDuration := r.dayLengthTicks / 16
	maxDuration := r.dayLengthTicks * 3 / 2
	if duration < minDuration {
		duration = minDuration
	}
	if duration > maxDuration {
		duration = maxDuration
	}

	r.state = Raining
	r.startedAtTick = tick
	r.durationTicks = duration
	r.baseIntensity = r.rng.Uniform(0.3, 1.0)
	r.currentIntensity = 0
}

// ramp implements the linear edge-in/hold/edge-out envelope: it rises
// over rainRampEdgeSeconds, holds at 1, then falls over the same edge
// near the end of durationTicks.
func (r *RainMachine) ramp(elapsed float64) float64 {
	edgeTicks := rainRampEdgeSeconds * r.ticksPerSecond
	if edgeTicks <= 0 {
		return 1
	}
	if elapsed < edgeTicks {
		return elapsed / edgeTicks
	}
	remaining := r.durationTicks - elapsed
	if remaining < edgeTicks {
		return remaining / edgeTicks
	}
	return 1
}
