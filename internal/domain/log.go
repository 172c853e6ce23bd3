package domain

import "strings"

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

const (
	DefaultLogLevel  = LogLevelInfo
	DefaultLogSource = "Unknown"
	ServerOrigin     = "SERVER"
)

// Known reports whether the level belongs to the closed set the game emits.
func (l LogLevel) Known() bool {
	switch LogLevel(strings.ToUpper(string(l))) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	}
	return false
}

// LogEvent is one record posted by the game server to /log.
type LogEvent struct {
	Level    LogLevel `json:"level"`
	Source   *string  `json:"source"`
	Message  string   `json:"message"`
	Player   string   `json:"player"`
	IsServer bool     `json:"isServer"`
	// Timestamp is the game-side epoch seconds; the rendered line uses the gateway clock.
	Timestamp int64 `json:"timestamp,omitempty"`
}

// WithDefaults fills the fields the game may omit.
func (e LogEvent) WithDefaults() LogEvent {
	if strings.TrimSpace(string(e.Level)) == "" {
		e.Level = DefaultLogLevel
	}
	if e.Source == nil {
		src := DefaultLogSource
		e.Source = &src
	}
	return e
}

// SourceName returns the emitting subsystem, or DefaultLogSource when absent.
func (e LogEvent) SourceName() string {
	if e.Source == nil {
		return DefaultLogSource
	}
	return *e.Source
}

// Origin is "SERVER" for server-side events, otherwise the player name (possibly empty).
func (e LogEvent) Origin() string {
	if e.IsServer {
		return ServerOrigin
	}
	return e.Player
}
