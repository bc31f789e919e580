// Package report carries user-visible diagnostics out of library code.
//
// Operations surface raw tool output and soft failures through a Reporter
// rather than printing directly, so the CLI can render them with its own
// printers and tests can capture them.
package report

import (
	"sync"

	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/rs/zerolog"
)

// Reporter receives messages meant for the person running plugboot
type Reporter interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// LogReporter writes messages through zerolog
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a reporter logging under the given component
func NewLogReporter(component string) *LogReporter {
	return &LogReporter{logger: logging.GetLogger(component)}
}

func (r *LogReporter) Info(msg string)  { r.logger.Info().Msg(msg) }
func (r *LogReporter) Warn(msg string)  { r.logger.Warn().Msg(msg) }
func (r *LogReporter) Error(msg string) { r.logger.Error().Msg(msg) }

// Level of a recorded message
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one recorded message
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every message in memory
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

func (r *Recorder) Info(msg string)  { r.add(LevelInfo, msg) }
func (r *Recorder) Warn(msg string)  { r.add(LevelWarn, msg) }
func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

// Entries returns a copy of the recorded messages
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages at one level
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Verify interface compliance
var (
	_ Reporter = (*LogReporter)(nil)
	_ Reporter = (*Recorder)(nil)
)
