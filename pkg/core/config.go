// Package core provides the central types and interfaces for the greentime allocator.
package core

import (
	"fmt"

	"github.com/anggasct/greentime/pkg/utils"
)

const (
	// LaneCount is the number of lanes at a junction
	LaneCount = 4

	// YellowLightTime is the yellow phase length in seconds, one per lane per cycle
	YellowLightTime = 5

	// MaxCycleTime caps the green-cycle time under congestion
	MaxCycleTime = 180

	// CongestionThreshold is the total vehicle count above which the cycle grows
	CongestionThreshold = 100

	// CongestionStep is both the vehicle bucket size and the seconds added per bucket
	CongestionStep = 10
)

// Config holds the tunable allocation parameters, in seconds
type Config struct {
	MinGreenTime  int
	MaxGreenTime  int
	BaseCycleTime int
}

// DefaultConfig returns the stock allocation parameters
func DefaultConfig() Config {
	return Config{
		MinGreenTime:  15,
		MaxGreenTime:  90,
		BaseCycleTime: 120,
	}
}

// WithMinGreenTime returns a copy with the per-lane floor set.
func (c Config) WithMinGreenTime(seconds int) Config {
	c.MinGreenTime = seconds
	return c
}

// WithMaxGreenTime returns a copy with the per-lane ceiling set.
func (c Config) WithMaxGreenTime(seconds int) Config {
	c.MaxGreenTime = seconds
	return c
}

// WithBaseCycleTime returns a copy with the uncongested green-cycle time set.
func (c Config) WithBaseCycleTime(seconds int) Config {
	c.BaseCycleTime = seconds
	return c
}

// Validate reports every issue with the configuration at once
func (c Config) Validate() error {
	collector := utils.NewErrorCollector()

	if c.MinGreenTime < 0 {
		collector.Add(fmt.Errorf("min green time %ds is negative", c.MinGreenTime))
	}
	if c.MaxGreenTime < c.MinGreenTime {
		collector.Add(fmt.Errorf("max green time %ds is below min green time %ds", c.MaxGreenTime, c.MinGreenTime))
	}
	if c.BaseCycleTime <= 0 {
		collector.Add(fmt.Errorf("base cycle time %ds must be positive", c.BaseCycleTime))
	}
	if c.MinGreenTime*LaneCount > c.BaseCycleTime {
		collector.Add(fmt.Errorf("min green time %ds for %d lanes exceeds base cycle time %ds",
			c.MinGreenTime, LaneCount, c.BaseCycleTime))
	}
	if c.BaseCycleTime > MaxCycleTime {
		collector.Add(fmt.Errorf("base cycle time %ds exceeds cycle ceiling %ds", c.BaseCycleTime, MaxCycleTime))
	}

	if !collector.HasErrors() {
		return nil
	}
	return NewConfigurationError("config", collector.Errors())
}
