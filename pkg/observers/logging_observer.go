// Package observers provides observers for monitoring allocations
package observers

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/anggasct/greentime/pkg/core"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

// LoggingObserver logs one structured line per allocation
type LoggingObserver struct {
	level     LogLevel
	prefix    string
	mutex     sync.RWMutex
	formatter LogFormatter
	out       io.Writer
}

// LogFormatter formats log messages
type LogFormatter func(level LogLevel, format string, args ...interface{}) string

// DefaultLogFormatter provides default log formatting
func DefaultLogFormatter(level LogLevel, format string, args ...interface{}) string {
	levelStr := "INFO"
	switch level {
	case LogError:
		levelStr = "ERROR"
	case LogWarning:
		levelStr = "WARN"
	case LogInfo:
		levelStr = "INFO"
	case LogDebug:
		levelStr = "DEBUG"
	}

	return fmt.Sprintf("[%s] %s", levelStr, fmt.Sprintf(format, args...))
}

// NewLoggingObserver creates a new logging observer writing to stdout
func NewLoggingObserver(level LogLevel, prefix string) *LoggingObserver {
	return &LoggingObserver{
		level:     level,
		prefix:    prefix,
		formatter: DefaultLogFormatter,
		out:       os.Stdout,
	}
}

// SetFormatter sets the log formatter
func (o *LoggingObserver) SetFormatter(formatter LogFormatter) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.formatter = formatter
}

// SetOutput redirects log lines to w
func (o *LoggingObserver) SetOutput(w io.Writer) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.out = w
}

// log logs a message at the specified level
func (o *LoggingObserver) log(level LogLevel, format string, args ...interface{}) {
	// Full lock: the writer is shared between concurrent allocations.
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if level > o.level || o.out == nil {
		return
	}

	prefix := ""
	if o.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", o.prefix)
	}

	message := ""
	if o.formatter != nil {
		message = o.formatter(level, format, args...)
	} else {
		message = fmt.Sprintf(format, args...)
	}

	fmt.Fprintf(o.out, "%s%s\n", prefix, message)
}

// OnAllocation logs the inputs, outputs and timing of an allocation
func (o *LoggingObserver) OnAllocation(r *core.Result) {
	junction := r.JunctionID
	if junction == "" {
		junction = "-"
	}

	o.log(LogInfo, "junction=%s id=%s counts=%v green=%v green_cycle=%ds total_cycle=%ds exec=%.2fms",
		junction, r.ID, r.Counts, r.GreenTimes, r.GreenCycleTime, r.TotalCycleTime,
		float64(r.Elapsed.Microseconds())/1000)

	if r.Saturated {
		o.log(LogWarning, "junction=%s id=%s saturated: every adjustable lane reached max green time", junction, r.ID)
	}
	if r.Unbalanced != 0 {
		o.log(LogWarning, "junction=%s id=%s unbalanced: green times miss cycle by %ds", junction, r.ID, r.Unbalanced)
	}
	o.log(LogDebug, "junction=%s id=%s lanes=%v clamp_rounds=%d", junction, r.ID, r.Lanes, r.ClampRounds)
}

// OnRejected logs rejected lane counts
func (o *LoggingObserver) OnRejected(junctionID string, counts []int, err error) {
	if junctionID == "" {
		junctionID = "-"
	}
	o.log(LogError, "junction=%s counts=%v rejected: %v", junctionID, counts, err)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log(LogError, "Error: %v", err)
}
