package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/greentime/pkg/core"
)

// ValidationObserver checks every allocation against the allocator invariants
// and records the ones that do not hold.
type ValidationObserver struct {
	core.BaseObserver

	config     core.Config
	checked    int
	violations []string
	mutex      sync.RWMutex
}

// NewValidationObserver creates a validation observer for allocations made with config
func NewValidationObserver(config core.Config) *ValidationObserver {
	return &ValidationObserver{
		config:     config,
		violations: make([]string, 0),
	}
}

// OnAllocation validates a finished allocation
func (o *ValidationObserver) OnAllocation(r *core.Result) {
	found := o.check(r)

	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.checked++
	o.violations = append(o.violations, found...)
}

func (o *ValidationObserver) check(r *core.Result) []string {
	var found []string
	add := func(format string, args ...interface{}) {
		found = append(found, fmt.Sprintf("allocation %s: ", r.ID)+fmt.Sprintf(format, args...))
	}

	if want := r.GreenCycleTime + core.LaneCount*core.YellowLightTime; r.TotalCycleTime != want {
		add("total cycle %ds, expected %ds", r.TotalCycleTime, want)
	}

	if sum := r.Sum(); sum+r.Unbalanced != r.GreenCycleTime {
		add("green times sum to %ds (unbalanced %ds), cycle is %ds", sum, r.Unbalanced, r.GreenCycleTime)
	}
	if r.AdjustableCount() > 0 && r.Unbalanced != 0 {
		add("unbalanced by %ds with adjustable lanes present", r.Unbalanced)
	}

	if r.ClampRounds > core.LaneCount-1 {
		add("%d clamp rounds, at most %d expected", r.ClampRounds, core.LaneCount-1)
	}

	for lane, green := range r.GreenTimes {
		if green < o.config.MinGreenTime {
			add("lane %d green %ds below min %ds", lane, green, o.config.MinGreenTime)
		}
		// Rounding may push a lane one second past the cap; a saturated
		// allocation puts the undistributed excess back on its lanes.
		if !r.Saturated && green > o.config.MaxGreenTime+1 {
			add("lane %d green %ds above max %ds", lane, green, o.config.MaxGreenTime)
		}
	}

	return found
}

// OnError records observer errors as violations
func (o *ValidationObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.violations = append(o.violations, fmt.Sprintf("Error occurred: %v", err))
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// GetCheckedCount returns the number of allocations validated
func (o *ValidationObserver) GetCheckedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.checked
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.checked = 0
	o.violations = make([]string, 0)
}
