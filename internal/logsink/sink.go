package logsink

import (
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"fpvsettling/ai-gateway/internal/domain"
)

// Option configures a Sink.
type Option func(*Sink)

// WithConsole redirects console output. Default: color.Output (stdout).
func WithConsole(w io.Writer) Option {
	return func(s *Sink) { s.console = w }
}

// WithClock replaces the wall clock used for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) { s.now = now }
}

// Sink records game log events to the operator console and the log file.
// Both renderings of one event are written under the same lock.
type Sink struct {
	mu      sync.Mutex
	file    *FileWriter
	console io.Writer
	now     func() time.Time
}

func New(file *FileWriter, opts ...Option) *Sink {
	s := &Sink{
		file:    file,
		console: color.Output,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write prints the event and appends it to the log file. A console failure
// is ignored; a file failure is returned.
func (s *Sink) Write(event domain.LogEvent) error {
	event = event.WithDefaults()
	ts := s.now().Local()

	s.mu.Lock()
	defer s.mu.Unlock()

	_ = writeString(s.console, ConsoleLine(ts, event))
	return s.file.Append(FileLine(ts, event))
}

// System prints a gateway-originated line to the console only.
func (s *Sink) System(level domain.LogLevel, source, message string) {
	src := source
	event := domain.LogEvent{
		Level:    level,
		Source:   &src,
		Message:  message,
		IsServer: true,
	}
	ts := s.now().Local()

	s.mu.Lock()
	defer s.mu.Unlock()

	_ = writeString(s.console, ConsoleLine(ts, event))
}

func (s *Sink) File() *FileWriter {
	return s.file
}
