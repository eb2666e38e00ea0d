// Package metrics provides lightweight counters for tracking runtime
// statistics of a shelld process.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics across all shell sessions.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	sessionsActive  atomic.Int64
	sessionsTotal   atomic.Int64
	linesSubmitted  atomic.Int64
	commandsRun     atomic.Int64
	unknownCommands atomic.Int64
	scriptsRun      atomic.Int64
	errorsTotal     atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active session counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// ActiveSessions returns the current number of live sessions.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// ── Dispatch metrics ─────────────────────────────────────────────────

// LineSubmitted records one submitted input line.
func (c *Collector) LineSubmitted() {
	if c == nil {
		return
	}
	c.linesSubmitted.Add(1)
}

// CommandRun records a successfully resolved and dispatched command.
func (c *Collector) CommandRun() {
	if c == nil {
		return
	}
	c.commandsRun.Add(1)
}

// UnknownCommand records a line whose first token resolved to nothing.
func (c *Collector) UnknownCommand() {
	if c == nil {
		return
	}
	c.unknownCommands.Add(1)
}

// ScriptRun records one script-file redirection.
func (c *Collector) ScriptRun() {
	if c == nil {
		return
	}
	c.scriptsRun.Add(1)
}

// LinesSubmitted returns the lifetime submitted-line count.
func (c *Collector) LinesSubmitted() int64 {
	if c == nil {
		return 0
	}
	return c.linesSubmitted.Load()
}

// CommandsRun returns the lifetime dispatched-command count.
func (c *Collector) CommandsRun() int64 {
	if c == nil {
		return 0
	}
	return c.commandsRun.Load()
}

// UnknownCommands returns the lifetime unresolved-command count.
func (c *Collector) UnknownCommands() int64 {
	if c == nil {
		return 0
	}
	return c.unknownCommands.Load()
}

// ScriptsRun returns the lifetime script-redirection count.
func (c *Collector) ScriptsRun() int64 {
	if c == nil {
		return 0
	}
	return c.scriptsRun.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	SessionsActive   int64  `json:"sessions_active"`
	SessionsTotal    int64  `json:"sessions_total"`
	LinesSubmitted   int64  `json:"lines_submitted"`
	CommandsRun      int64  `json:"commands_run"`
	UnknownCommands  int64  `json:"unknown_commands"`
	ScriptsRun       int64  `json:"scripts_run"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:          time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive:  c.sessionsActive.Load(),
		SessionsTotal:   c.sessionsTotal.Load(),
		LinesSubmitted:  c.linesSubmitted.Load(),
		CommandsRun:     c.commandsRun.Load(),
		UnknownCommands: c.unknownCommands.Load(),
		ScriptsRun:      c.scriptsRun.Load(),
		ErrorsTotal:     c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}
