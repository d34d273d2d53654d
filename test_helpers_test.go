package greentime

import (
	"errors"
	"testing"
	"time"
)

func TestTestHelpers_Functions(t *testing.T) {
	t.Run("TestObserver Basic Functionality", func(t *testing.T) {
		observer := NewTestObserver()

		if observer.AllocationCount() != 0 {
			t.Errorf("Expected 0 allocations initially, got %d", observer.AllocationCount())
		}

		if observer.LastAllocation() != nil || observer.LastRejection() != nil {
			t.Error("Expected no recorded events initially")
		}

		result := &Result{ID: "r1"}
		observer.OnAllocation(result)
		observer.OnRejected("J-1", []int{1}, errors.New("bad"))
		observer.OnError(errors.New("oops"))

		if observer.LastAllocation() != result {
			t.Error("Expected last allocation to be recorded")
		}

		if rejection := observer.LastRejection(); rejection == nil || rejection.JunctionID != "J-1" {
			t.Error("Expected last rejection to be recorded")
		}

		if observer.ErrorCount() != 1 {
			t.Errorf("Expected 1 error, got %d", observer.ErrorCount())
		}

		observer.Reset()

		if observer.AllocationCount() != 0 || observer.RejectionCount() != 0 || observer.ErrorCount() != 0 {
			t.Error("Expected observer to be empty after reset")
		}
	})

	t.Run("TestObserver Interfaces", func(t *testing.T) {
		var _ ExtendedObserver = NewTestObserver()
		var _ ExtendedObserver = &PanickingObserver{}
	})

	t.Run("SteppingClock", func(t *testing.T) {
		clock := SteppingClock(time.Second)

		first := clock()
		second := clock()

		if second.Sub(first) != time.Second {
			t.Errorf("Expected clock to advance by 1s, got %v", second.Sub(first))
		}
	})

	t.Run("Assertions", func(t *testing.T) {
		result := &Result{
			GreenTimes:     [LaneCount]int{30, 30, 30, 30},
			GreenCycleTime: 120,
			TotalCycleTime: 140,
		}

		AssertGreenTimes(t, result, [LaneCount]int{30, 30, 30, 30})
		AssertBalanced(t, result)
	})
}
