package logger

import (
	"github.com/go-logr/logr"
)

// Sink implements logr.LogSink over a Logger, so that a host application
// that speaks logr can hand the engine a logr.Logger backed by our
// structured output:
//
//	log := logr.New(logger.NewSink(logger.New(logger.LevelInfo, logger.FormatText, os.Stderr)))
type Sink struct {
	logger *Logger
	name   string
}

// NewSink creates a logr.LogSink that routes through the given Logger.
func NewSink(logger *Logger) logr.LogSink {
	return &Sink{logger: logger}
}

// Init implements logr.LogSink. Runtime info is not used.
func (s *Sink) Init(info logr.RuntimeInfo) {}

// Enabled maps logr V-levels onto our levels: V(0) is Info, V(1+) is Debug.
func (s *Sink) Enabled(level int) bool {
	if level == 0 {
		return s.logger.level <= LevelInfo
	}
	return s.logger.level <= LevelDebug
}

// Info logs a non-error message with the given key/value pairs.
func (s *Sink) Info(level int, msg string, keysAndValues ...interface{}) {
	fields := s.kvToMap(keysAndValues)

	if level == 0 {
		s.logger.Info(msg, fields)
	} else {
		s.logger.Debug(msg, fields)
	}
}

// Error logs an error message with the given key/value pairs.
func (s *Sink) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := s.kvToMap(keysAndValues)
	if err != nil {
		fields["error"] = err.Error()
	}

	s.logger.Error(msg, fields)
}

// WithValues returns a new LogSink with additional key/value pairs.
// Value accumulation is not implemented; each call carries its own pairs.
func (s *Sink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return s
}

// WithName returns a new LogSink with the specified name appended.
func (s *Sink) WithName(name string) logr.LogSink {
	clone := *s
	if s.name == "" {
		clone.name = name
	} else {
		clone.name = s.name + "." + name
	}
	return &clone
}

// kvToMap converts a slice of alternating keys and values to a map.
func (s *Sink) kvToMap(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{})
	if s.name != "" {
		fields["logger"] = s.name
	}

	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			if key, ok := keysAndValues[i].(string); ok {
				fields[key] = keysAndValues[i+1]
			}
		}
	}

	return fields
}
