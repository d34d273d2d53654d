package greentime

import (
	"sync"
	"testing"
	"time"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex       sync.RWMutex
	Allocations []*Result
	Rejections  []RejectionEvent
	Errors      []error
}

type RejectionEvent struct {
	JunctionID string
	Counts     []int
	Err        error
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		Allocations: make([]*Result, 0),
		Rejections:  make([]RejectionEvent, 0),
		Errors:      make([]error, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnAllocation(result *Result) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Allocations = append(o.Allocations, result)
}

func (o *TestObserver) OnRejected(junctionID string, counts []int, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Rejections = append(o.Rejections, RejectionEvent{JunctionID: junctionID, Counts: counts, Err: err})
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Allocations = nil
	o.Rejections = nil
	o.Errors = nil
}

func (o *TestObserver) AllocationCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Allocations)
}

func (o *TestObserver) RejectionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Rejections)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

func (o *TestObserver) LastAllocation() *Result {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Allocations) == 0 {
		return nil
	}
	return o.Allocations[len(o.Allocations)-1]
}

func (o *TestObserver) LastRejection() *RejectionEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Rejections) == 0 {
		return nil
	}
	return &o.Rejections[len(o.Rejections)-1]
}

// PanickingObserver panics on every allocation
type PanickingObserver struct {
	TestObserver
}

func (o *PanickingObserver) OnAllocation(result *Result) {
	panic("observer failure")
}

// AssertGreenTimes checks the per-lane green times of a result
func AssertGreenTimes(t *testing.T, result *Result, expected [LaneCount]int) {
	t.Helper()
	if result == nil {
		t.Fatal("Expected a result, got nil")
	}
	if result.GreenTimes != expected {
		t.Errorf("Expected green times %v, got %v", expected, result.GreenTimes)
	}
}

// AssertBalanced checks that green times fill the green cycle exactly
func AssertBalanced(t *testing.T, result *Result) {
	t.Helper()
	if result.Sum() != result.GreenCycleTime {
		t.Errorf("Expected green times %v to sum to %d, got %d", result.GreenTimes, result.GreenCycleTime, result.Sum())
	}
	if result.TotalCycleTime != result.GreenCycleTime+LaneCount*YellowLightTime {
		t.Errorf("Expected total cycle %d, got %d", result.GreenCycleTime+LaneCount*YellowLightTime, result.TotalCycleTime)
	}
}

// SteppingClock returns a clock that advances by step on every call
func SteppingClock(step time.Duration) func() time.Time {
	var mutex sync.Mutex
	current := time.Unix(0, 0)
	return func() time.Time {
		mutex.Lock()
		defer mutex.Unlock()
		now := current
		current = current.Add(step)
		return now
	}
}
