package core

import (
	"fmt"
	"time"
)

// LaneKind tells whether a lane took part in proportional allocation
type LaneKind int

const (
	// FixedLane carries at most MinGreenTime vehicles and receives exactly MinGreenTime
	FixedLane LaneKind = iota

	// AdjustableLane receives a proportional share above the minimum
	AdjustableLane
)

func (k LaneKind) String() string {
	switch k {
	case FixedLane:
		return "fixed"
	case AdjustableLane:
		return "adjustable"
	default:
		return "unknown"
	}
}

// Result is the outcome of one allocation. It is never mutated after being returned.
type Result struct {
	// ID correlates this invocation across log lines and metrics
	ID         string
	JunctionID string

	Counts     [LaneCount]int
	GreenTimes [LaneCount]int
	Lanes      [LaneCount]LaneKind

	GreenCycleTime int
	TotalCycleTime int

	// ClampRounds counts redistributions performed while enforcing MaxGreenTime
	ClampRounds int

	// Saturated is set when clamped excess could not be absorbed by any lane
	Saturated bool

	// Unbalanced is the rounding difference left unapplied because every lane was fixed
	Unbalanced int

	Elapsed time.Duration
}

// Sum returns the total green time handed out across lanes
func (r *Result) Sum() int {
	sum := 0
	for _, g := range r.GreenTimes {
		sum += g
	}
	return sum
}

// AdjustableCount returns how many lanes were proportionally allocated
func (r *Result) AdjustableCount() int {
	n := 0
	for _, kind := range r.Lanes {
		if kind == AdjustableLane {
			n++
		}
	}
	return n
}

// Signal is the light shown to a lane during a phase
type Signal string

const (
	Green  Signal = "green"
	Yellow Signal = "yellow"
)

// Phase is one interval of the signal cycle
type Phase struct {
	Lane     int
	Signal   Signal
	Start    int // seconds from cycle start
	Duration int // seconds
}

// End returns the offset at which the phase finishes
func (p Phase) End() int {
	return p.Start + p.Duration
}

func (p Phase) String() string {
	return fmt.Sprintf("lane %d %s %ds@%ds", p.Lane, p.Signal, p.Duration, p.Start)
}

// Plan lays the result out as the ordered sequence of phases for one cycle:
// each lane in index order gets its green phase followed by its yellow phase.
func (r *Result) Plan() []Phase {
	phases := make([]Phase, 0, LaneCount*2)
	offset := 0
	for lane, green := range r.GreenTimes {
		phases = append(phases, Phase{Lane: lane, Signal: Green, Start: offset, Duration: green})
		offset += green
		phases = append(phases, Phase{Lane: lane, Signal: Yellow, Start: offset, Duration: YellowLightTime})
		offset += YellowLightTime
	}
	return phases
}
