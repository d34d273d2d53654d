package core

import (
	"fmt"
	"sync"
)

// Observer represents an entity that observes allocations
type Observer interface {
	// OnAllocation is called once for every successful allocation
	OnAllocation(result *Result)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnRejected is called when lane counts fail validation
	OnRejected(junctionID string, counts []int, err error)

	// OnError is called when an observer misbehaves during notification
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnAllocation implements the required Observer method
func (o *BaseObserver) OnAllocation(result *Result) {}

// OnRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnRejected(junctionID string, counts []int, err error) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
	mutex     sync.RWMutex
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	if observer == nil {
		return
	}
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	return len(om.observers)
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// NotifyAllocation notifies all observers of a finished allocation
func (om *ObserverManager) NotifyAllocation(result *Result) {
	for _, observer := range om.snapshot() {
		func() {
			defer om.recoverObserver(observer, "OnAllocation")
			observer.OnAllocation(result)
		}()
	}
}

// NotifyRejected notifies all observers of rejected lane counts
func (om *ObserverManager) NotifyRejected(junctionID string, counts []int, err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer om.recoverObserver(observer, "OnRejected")
				extObs.OnRejected(junctionID, counts, err)
			}()
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err)
			}()
		}
	}
}

// recoverObserver keeps a panicking observer from failing the allocation and
// reports the panic to the observer itself when it can take errors.
func (om *ObserverManager) recoverObserver(observer Observer, method string) {
	r := recover()
	if r == nil {
		return
	}
	if extObs, ok := observer.(ExtendedObserver); ok {
		func() {
			defer func() { recover() }()
			extObs.OnError(fmt.Errorf("observer panic in %s: %v", method, r))
		}()
	}
}
