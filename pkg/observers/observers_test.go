package observers_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anggasct/greentime/pkg/core"
	"github.com/anggasct/greentime/pkg/observers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *core.Result {
	return &core.Result{
		ID:             "a1b2",
		JunctionID:     "J-9",
		Counts:         [core.LaneCount]int{25, 25, 25, 25},
		GreenTimes:     [core.LaneCount]int{30, 30, 30, 30},
		Lanes:          [core.LaneCount]core.LaneKind{core.AdjustableLane, core.AdjustableLane, core.AdjustableLane, core.AdjustableLane},
		GreenCycleTime: 120,
		TotalCycleTime: 140,
		Elapsed:        1500 * time.Microsecond,
	}
}

func TestLoggingObserver(t *testing.T) {
	t.Run("allocation line", func(t *testing.T) {
		var buf bytes.Buffer
		observer := observers.NewLoggingObserver(observers.LogInfo, "GreenTime")
		observer.SetOutput(&buf)

		observer.OnAllocation(sampleResult())

		line := buf.String()
		assert.Equal(t, 1, strings.Count(line, "\n"))
		assert.Contains(t, line, "[GreenTime] [INFO]")
		assert.Contains(t, line, "junction=J-9")
		assert.Contains(t, line, "id=a1b2")
		assert.Contains(t, line, "counts=[25 25 25 25]")
		assert.Contains(t, line, "green=[30 30 30 30]")
		assert.Contains(t, line, "green_cycle=120s")
		assert.Contains(t, line, "total_cycle=140s")
		assert.Contains(t, line, "exec=1.50ms")
	})

	t.Run("warnings for saturated and unbalanced results", func(t *testing.T) {
		var buf bytes.Buffer
		observer := observers.NewLoggingObserver(observers.LogWarning, "")
		observer.SetOutput(&buf)

		r := sampleResult()
		r.JunctionID = ""
		r.Saturated = true
		r.Unbalanced = 60
		observer.OnAllocation(r)

		out := buf.String()
		assert.NotContains(t, out, "[INFO]")
		assert.Contains(t, out, "[WARN] junction=- id=a1b2 saturated")
		assert.Contains(t, out, "unbalanced: green times miss cycle by 60s")
	})

	t.Run("debug includes lane kinds", func(t *testing.T) {
		var buf bytes.Buffer
		observer := observers.NewLoggingObserver(observers.LogDebug, "")
		observer.SetOutput(&buf)

		observer.OnAllocation(sampleResult())
		assert.Contains(t, buf.String(), "[DEBUG]")
		assert.Contains(t, buf.String(), "lanes=[adjustable adjustable adjustable adjustable] clamp_rounds=0")
	})

	t.Run("rejections log at error level", func(t *testing.T) {
		var buf bytes.Buffer
		observer := observers.NewLoggingObserver(observers.LogError, "")
		observer.SetOutput(&buf)

		observer.OnAllocation(sampleResult())
		observer.OnRejected("J-3", []int{5, 5, 5}, core.NewInvalidLaneCountError(3))

		out := buf.String()
		assert.NotContains(t, out, "green_cycle")
		assert.Contains(t, out, "[ERROR] junction=J-3 counts=[5 5 5] rejected: input error [InvalidLaneCount]")
	})

	t.Run("custom formatter", func(t *testing.T) {
		var buf bytes.Buffer
		observer := observers.NewLoggingObserver(observers.LogInfo, "")
		observer.SetOutput(&buf)
		observer.SetFormatter(func(level observers.LogLevel, format string, args ...interface{}) string {
			return "custom: " + fmt.Sprintf(format, args...)
		})

		observer.OnError(errors.New("disk full"))
		assert.Equal(t, "custom: Error: disk full\n", buf.String())
	})

	t.Run("default observer", func(t *testing.T) {
		var buf bytes.Buffer
		observer := observers.NewDefaultLoggingObserver()
		observer.SetOutput(&buf)

		observer.OnAllocation(sampleResult())
		assert.True(t, strings.HasPrefix(buf.String(), "[GreenTime] [INFO]"))
	})
}

func TestDefaultLogFormatter(t *testing.T) {
	assert.Equal(t, "[ERROR] x=1", observers.DefaultLogFormatter(observers.LogError, "x=%d", 1))
	assert.Equal(t, "[WARN] x", observers.DefaultLogFormatter(observers.LogWarning, "x"))
	assert.Equal(t, "[INFO] x", observers.DefaultLogFormatter(observers.LogInfo, "x"))
	assert.Equal(t, "[DEBUG] x", observers.DefaultLogFormatter(observers.LogDebug, "x"))
}

func TestMetricsObserver(t *testing.T) {
	metrics := observers.NewMetricsObserver()

	first := sampleResult()
	second := sampleResult()
	second.GreenCycleTime = 180
	second.ClampRounds = 2
	second.Saturated = true
	second.Elapsed = 500 * time.Microsecond
	third := sampleResult()
	third.Unbalanced = 60

	metrics.OnAllocation(first)
	metrics.OnAllocation(second)
	metrics.OnAllocation(third)
	metrics.OnRejected("", []int{1}, core.NewInvalidLaneCountError(1))
	metrics.OnRejected("", []int{1, -1, 1, 1}, core.NewNegativeCountError(1, -1))
	metrics.OnRejected("", []int{1, -1, 1, 1}, core.NewNegativeCountError(1, -1))
	metrics.OnError(errors.New("observer panic"))

	assert.Equal(t, 3, metrics.GetAllocationCount())
	assert.Equal(t, map[int]int{120: 2, 180: 1}, metrics.GetCycleLengthCounts())
	assert.Equal(t, map[core.ErrorCode]int{
		core.ErrCodeInvalidLaneCount: 1,
		core.ErrCodeNegativeCount:    2,
	}, metrics.GetRejectionCounts())
	assert.Equal(t, 2, metrics.GetClampRounds())
	assert.Equal(t, 1, metrics.GetSaturatedCount())
	assert.Equal(t, 1, metrics.GetUnbalancedCount())
	assert.Equal(t, 1, metrics.GetObserverErrorCount())
	assert.Equal(t, 1166666*time.Nanosecond, metrics.GetAverageElapsed())

	counts := metrics.GetCycleLengthCounts()
	counts[120] = 99
	assert.Equal(t, 2, metrics.GetCycleLengthCounts()[120])

	metrics.Reset()
	assert.Equal(t, 0, metrics.GetAllocationCount())
	assert.Empty(t, metrics.GetRejectionCounts())
	assert.Equal(t, time.Duration(0), metrics.GetAverageElapsed())
}

func TestValidationObserver(t *testing.T) {
	config := core.DefaultConfig()

	t.Run("valid result", func(t *testing.T) {
		validator := observers.NewValidationObserver(config)
		validator.OnAllocation(sampleResult())

		assert.Equal(t, 1, validator.GetCheckedCount())
		assert.False(t, validator.HasViolations())
	})

	t.Run("all-fixed result with unapplied difference", func(t *testing.T) {
		validator := observers.NewValidationObserver(config)
		r := sampleResult()
		r.GreenTimes = [core.LaneCount]int{15, 15, 15, 15}
		r.Lanes = [core.LaneCount]core.LaneKind{}
		r.Unbalanced = 60
		validator.OnAllocation(r)

		assert.False(t, validator.HasViolations(), validator.GetViolations())
	})

	t.Run("broken result", func(t *testing.T) {
		validator := observers.NewValidationObserver(config)
		r := sampleResult()
		r.GreenTimes = [core.LaneCount]int{10, 96, 4, 30}
		r.TotalCycleTime = 150
		r.ClampRounds = 4
		validator.OnAllocation(r)

		violations := validator.GetViolations()
		require.Len(t, violations, 6)
		assert.Contains(t, violations[0], "total cycle 150s, expected 140s")
		assert.Contains(t, violations[1], "sum to 140s")
		assert.Contains(t, violations[2], "4 clamp rounds")
		assert.Contains(t, violations[3], "lane 0 green 10s below min 15s")
		assert.Contains(t, violations[4], "lane 1 green 96s above max 90s")
		assert.Contains(t, violations[5], "lane 2 green 4s below min 15s")

		validator.Reset()
		assert.False(t, validator.HasViolations())
		assert.Equal(t, 0, validator.GetCheckedCount())
	})

	t.Run("saturated result may exceed max", func(t *testing.T) {
		validator := observers.NewValidationObserver(config)
		r := sampleResult()
		r.GreenTimes = [core.LaneCount]int{135, 15, 15, 15}
		r.Lanes = [core.LaneCount]core.LaneKind{core.AdjustableLane}
		r.GreenCycleTime = 180
		r.TotalCycleTime = 200
		r.Saturated = true
		validator.OnAllocation(r)

		assert.False(t, validator.HasViolations(), validator.GetViolations())
	})

	t.Run("observer errors are violations", func(t *testing.T) {
		validator := observers.NewValidationObserver(config)
		validator.OnError(errors.New("observer panic"))
		assert.Equal(t, []string{"Error occurred: observer panic"}, validator.GetViolations())
	})
}
