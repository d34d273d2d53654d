package greentime

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/anggasct/greentime/pkg/core"
)

// Allocator turns per-lane vehicle counts into green times for one junction cycle.
// It holds no per-call state and is safe for concurrent use.
type Allocator struct {
	config    Config
	observers *core.ObserverManager
	now       func() time.Time
}

// Option configures an Allocator at construction time
type Option func(*Allocator)

// WithObserver registers an observer for every allocation
func WithObserver(observer Observer) Option {
	return func(a *Allocator) {
		a.observers.AddObserver(observer)
	}
}

// WithClock replaces the clock used to time allocations
func WithClock(now func() time.Time) Option {
	return func(a *Allocator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAllocator creates an allocator after validating its configuration
func NewAllocator(config Config, opts ...Option) (*Allocator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	a := &Allocator{
		config:    config,
		observers: core.NewObserverManager(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewDefaultAllocator creates an allocator with DefaultConfig
func NewDefaultAllocator(opts ...Option) *Allocator {
	a, err := NewAllocator(DefaultConfig(), opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Config returns the allocator configuration
func (a *Allocator) Config() Config {
	return a.config
}

// Compute allocates green times for the given lane counts
func (a *Allocator) Compute(counts []int) (*Result, error) {
	return a.ComputeForJunction("", counts)
}

// ComputeForJunction allocates green times and tags the result with a junction
// identifier. The identifier is only used for correlation.
func (a *Allocator) ComputeForJunction(junctionID string, counts []int) (*Result, error) {
	start := a.now()

	if err := validateCounts(counts); err != nil {
		a.observers.NotifyRejected(junctionID, counts, err)
		return nil, err
	}

	result := &Result{
		ID:         uuid.New().String(),
		JunctionID: junctionID,
	}
	copy(result.Counts[:], counts)
	a.allocate(result)
	result.Elapsed = a.now().Sub(start)

	a.observers.NotifyAllocation(result)
	return result, nil
}

func validateCounts(counts []int) error {
	if len(counts) != LaneCount {
		return core.NewInvalidLaneCountError(len(counts))
	}
	for lane, count := range counts {
		if count < 0 {
			return core.NewNegativeCountError(lane, count)
		}
	}
	return nil
}

// GreenCycleTime returns the seconds of green available in one cycle for a
// given total vehicle count.
func (a *Allocator) GreenCycleTime(total int) int {
	if total <= core.CongestionThreshold {
		return a.config.BaseCycleTime
	}
	increments := (total - core.CongestionThreshold) / core.CongestionStep
	cycle := a.config.BaseCycleTime + increments*core.CongestionStep
	if cycle > core.MaxCycleTime {
		cycle = core.MaxCycleTime
	}
	return cycle
}

// allocate fills in the green times of r from r.Counts
func (a *Allocator) allocate(r *Result) {
	total := 0
	for _, c := range r.Counts {
		total += c
	}

	r.GreenCycleTime = a.GreenCycleTime(total)
	r.TotalCycleTime = r.GreenCycleTime + LaneCount*YellowLightTime

	times, adjustable := a.initialAllocation(r, total)
	a.normalize(&times, adjustable, r.GreenCycleTime)
	r.ClampRounds, r.Saturated = a.enforceMax(&times, adjustable)
	r.Unbalanced = balance(r, times, adjustable)
}

// initialAllocation gives fixed lanes the minimum and adjustable lanes the
// minimum plus their proportional share of the remaining cycle.
func (a *Allocator) initialAllocation(r *Result, total int) ([LaneCount]float64, []int) {
	minGreen := a.config.MinGreenTime
	remaining := float64(r.GreenCycleTime - minGreen*LaneCount)

	var times [LaneCount]float64
	adjustable := make([]int, 0, LaneCount)

	for lane, count := range r.Counts {
		// An empty junction has no share to hand out; every lane stays fixed.
		if total == 0 || count <= minGreen {
			times[lane] = float64(minGreen)
			r.Lanes[lane] = FixedLane
			continue
		}
		share := float64(count-minGreen) / float64(total)
		times[lane] = float64(minGreen) + share*remaining
		r.Lanes[lane] = AdjustableLane
		adjustable = append(adjustable, lane)
	}
	return times, adjustable
}

// normalize rescales adjustable lanes so that together with the fixed lanes
// they fill the green cycle exactly.
func (a *Allocator) normalize(times *[LaneCount]float64, adjustable []int, greenCycle int) {
	if len(adjustable) == 0 {
		return
	}

	fixedSum := 0.0
	rawSum := 0.0
	isAdjustable := [LaneCount]bool{}
	for _, lane := range adjustable {
		isAdjustable[lane] = true
		rawSum += times[lane]
	}
	for lane, t := range times {
		if !isAdjustable[lane] {
			fixedSum += t
		}
	}

	if rawSum <= 0 {
		return
	}
	pool := float64(greenCycle) - fixedSum
	for _, lane := range adjustable {
		times[lane] = times[lane] / rawSum * pool
	}
}

// enforceMax clamps adjustable lanes to MaxGreenTime and shares the excess
// equally among lanes that have not been capped yet. A capped lane never
// receives more time, so each round caps at least one more lane and the loop
// performs at most LaneCount-1 redistributions.
func (a *Allocator) enforceMax(times *[LaneCount]float64, adjustable []int) (rounds int, saturated bool) {
	maxGreen := float64(a.config.MaxGreenTime)
	var capped [LaneCount]bool

	for {
		excess := 0.0
		under := make([]int, 0, len(adjustable))

		for _, lane := range adjustable {
			if capped[lane] {
				continue
			}
			if times[lane] > maxGreen {
				excess += times[lane] - maxGreen
				times[lane] = maxGreen
				capped[lane] = true
			} else {
				under = append(under, lane)
			}
		}

		if excess <= 0 {
			return rounds, false
		}
		if len(under) == 0 {
			return rounds, true
		}

		share := excess / float64(len(under))
		for _, lane := range under {
			times[lane] += share
		}
		rounds++
	}
}

// balance rounds every lane and spreads the rounding difference one second at
// a time over the adjustable lanes in index order. It returns the difference
// left over when there is no adjustable lane to absorb it.
func balance(r *Result, times [LaneCount]float64, adjustable []int) int {
	sum := 0
	for lane, t := range times {
		r.GreenTimes[lane] = int(math.RoundToEven(t))
		sum += r.GreenTimes[lane]
	}

	diff := r.GreenCycleTime - sum
	if diff == 0 {
		return 0
	}
	if len(adjustable) == 0 {
		return diff
	}

	step := 1
	if diff < 0 {
		step = -1
		diff = -diff
	}
	for i := 0; i < diff; i++ {
		r.GreenTimes[adjustable[i%len(adjustable)]] += step
	}
	return 0
}
