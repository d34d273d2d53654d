// Package greentime computes adaptive green-light durations for a four-way
// junction. Given one vehicle count per lane it sizes the signal cycle,
// shares the green time proportionally above a per-lane minimum, caps lanes
// at a per-lane maximum and rounds the result to whole seconds that add up to
// the cycle.
package greentime

import (
	"github.com/anggasct/greentime/pkg/core"
	"github.com/anggasct/greentime/pkg/observers"
)

// Core types
type (
	// Config holds the tunable allocation parameters
	Config = core.Config

	// Result is the outcome of one allocation
	Result = core.Result

	// LaneKind tells whether a lane was fixed or adjustable
	LaneKind = core.LaneKind

	// Phase is one green or yellow interval of a cycle plan
	Phase = core.Phase

	// Signal is the light shown during a phase
	Signal = core.Signal

	// Observer receives every allocation
	Observer = core.Observer

	// ExtendedObserver also receives rejections and observer errors
	ExtendedObserver = core.ExtendedObserver

	// BaseObserver provides no-op observer methods for embedding
	BaseObserver = core.BaseObserver

	// ErrorCode identifies the kind of a failure
	ErrorCode = core.ErrorCode

	// InputError reports rejected lane counts
	InputError = core.InputError

	// ConfigurationError reports an invalid Config
	ConfigurationError = core.ConfigurationError
)

// Re-export observer types
type (
	// LoggingObserver logs one line per allocation
	LoggingObserver = observers.LoggingObserver

	// LogLevel represents the logging level
	LogLevel = observers.LogLevel

	// LogFormatter formats log messages
	LogFormatter = observers.LogFormatter

	// MetricsObserver aggregates allocation metrics
	MetricsObserver = observers.MetricsObserver

	// ValidationObserver checks allocation invariants
	ValidationObserver = observers.ValidationObserver
)

// Re-export constants
const (
	LaneCount           = core.LaneCount
	YellowLightTime     = core.YellowLightTime
	MaxCycleTime        = core.MaxCycleTime
	CongestionThreshold = core.CongestionThreshold
	CongestionStep      = core.CongestionStep

	FixedLane      = core.FixedLane
	AdjustableLane = core.AdjustableLane

	Green  = core.Green
	Yellow = core.Yellow

	ErrCodeNone                 = core.ErrCodeNone
	ErrCodeInvalidLaneCount     = core.ErrCodeInvalidLaneCount
	ErrCodeNegativeCount        = core.ErrCodeNegativeCount
	ErrCodeInvalidConfiguration = core.ErrCodeInvalidConfiguration

	// LogError logs only errors
	LogError = observers.LogError

	// LogWarning logs errors and warnings
	LogWarning = observers.LogWarning

	// LogInfo logs errors, warnings, and info
	LogInfo = observers.LogInfo

	// LogDebug logs errors, warnings, info, and debug
	LogDebug = observers.LogDebug
)

// Re-export core functions and errors
var (
	// DefaultConfig returns the stock allocation parameters
	DefaultConfig = core.DefaultConfig

	// ErrInvalidLaneCount matches input of the wrong length
	ErrInvalidLaneCount = core.ErrInvalidLaneCount

	// ErrNegativeCount matches input with a negative count
	ErrNegativeCount = core.ErrNegativeCount

	// ErrInvalidConfiguration matches any configuration error
	ErrInvalidConfiguration = core.ErrInvalidConfiguration

	IsInputError         = core.IsInputError
	IsConfigurationError = core.IsConfigurationError
	GetErrorCode         = core.GetErrorCode
)

// Re-export observer constructors
var (
	// NewLoggingObserver creates a new logging observer with default settings
	NewLoggingObserver = observers.NewDefaultLoggingObserver

	// NewCustomLoggingObserver creates a new logging observer with custom settings
	NewCustomLoggingObserver = observers.NewLoggingObserver

	// DefaultLogFormatter provides default log formatting
	DefaultLogFormatter = observers.DefaultLogFormatter

	// NewMetricsObserver creates a new metrics observer
	NewMetricsObserver = observers.NewMetricsObserver

	// NewValidationObserver creates a new validation observer
	NewValidationObserver = observers.NewValidationObserver
)
