// Package errors provides domain-specific error types for shelld.
//
// These types carry structured context (operation, address, fatality)
// that lets callers distinguish session-ending stream failures from
// locally recoverable conditions, and provides better diagnostics than
// plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrTooManyClients = errors.New("connection limit reached")
	ErrScriptActive   = errors.New("a script is already running")
	ErrHostKeyMissing = errors.New("host key required for ssh transport")
)

// ── Structured error types ───────────────────────────────────────────

// StreamError represents a failure on a session's byte stream.  Stream
// failures are always fatal to the session that observed them.
type StreamError struct {
	Op   string // operation: "read", "write", "accept"
	Addr string // remote address, if known
	Err  error  // underlying error
}

func (e *StreamError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("stream %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("stream %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// ScriptError represents a failure while redirecting input from a
// script file.  Script errors are recoverable: the session reports the
// line as an unmatched command and carries on.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// WrapStream creates a StreamError.
func WrapStream(op, addr string, err error) *StreamError {
	return &StreamError{Op: op, Addr: addr, Err: err}
}

// WrapScript creates a ScriptError.
func WrapScript(path string, err error) *ScriptError {
	return &ScriptError{Path: path, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsDisconnect reports whether err is an ordinary end-of-stream: the
// peer hung up or the listener was torn down.  Disconnects end a
// session but are not worth an error-level log line.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}

// IsTemporary reports whether err represents a transient accept-loop
// condition that is worth retrying.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use shelld/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
