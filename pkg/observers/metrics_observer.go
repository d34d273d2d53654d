package observers

import (
	"sync"
	"time"

	"github.com/anggasct/greentime/pkg/core"
)

// MetricsObserver collects metrics about allocations
type MetricsObserver struct {
	allocations     int
	rejections      map[core.ErrorCode]int
	cycleLengths    map[int]int
	clampRounds     int
	saturatedCount  int
	unbalancedCount int
	totalElapsed    time.Duration
	observerErrors  int
	mutex           sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		rejections:   make(map[core.ErrorCode]int),
		cycleLengths: make(map[int]int),
	}
}

// OnAllocation records allocation metrics
func (o *MetricsObserver) OnAllocation(r *core.Result) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.allocations++
	o.cycleLengths[r.GreenCycleTime]++
	o.clampRounds += r.ClampRounds
	o.totalElapsed += r.Elapsed
	if r.Saturated {
		o.saturatedCount++
	}
	if r.Unbalanced != 0 {
		o.unbalancedCount++
	}
}

// OnRejected records rejections by error code
func (o *MetricsObserver) OnRejected(junctionID string, counts []int, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.rejections[core.GetErrorCode(err)]++
}

// OnError records observer errors
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.observerErrors++
}

// GetAllocationCount returns the number of successful allocations
func (o *MetricsObserver) GetAllocationCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.allocations
}

// GetRejectionCounts returns rejections keyed by error code
func (o *MetricsObserver) GetRejectionCounts() map[core.ErrorCode]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[core.ErrorCode]int)
	for code, count := range o.rejections {
		result[code] = count
	}
	return result
}

// GetCycleLengthCounts returns how often each green-cycle length was chosen
func (o *MetricsObserver) GetCycleLengthCounts() map[int]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[int]int)
	for cycle, count := range o.cycleLengths {
		result[cycle] = count
	}
	return result
}

// GetClampRounds returns the total number of max-time redistributions
func (o *MetricsObserver) GetClampRounds() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.clampRounds
}

// GetSaturatedCount returns how many allocations ended saturated
func (o *MetricsObserver) GetSaturatedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.saturatedCount
}

// GetUnbalancedCount returns how many allocations missed the cycle length
func (o *MetricsObserver) GetUnbalancedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.unbalancedCount
}

// GetObserverErrorCount returns the number of observer errors reported
func (o *MetricsObserver) GetObserverErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.observerErrors
}

// GetAverageElapsed returns the mean allocation time
func (o *MetricsObserver) GetAverageElapsed() time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if o.allocations == 0 {
		return 0
	}
	return o.totalElapsed / time.Duration(o.allocations)
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.allocations = 0
	o.rejections = make(map[core.ErrorCode]int)
	o.cycleLengths = make(map[int]int)
	o.clampRounds = 0
	o.saturatedCount = 0
	o.unbalancedCount = 0
	o.totalElapsed = 0
	o.observerErrors = 0
}
