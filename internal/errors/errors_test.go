package errors

import (
	"fmt"
	"io"
	"net"
	"os"
	"testing"
)

func TestStreamError(t *testing.T) {
	inner := New("connection reset")

	e := WrapStream("read", "10.0.0.2:41000", inner)
	if got := e.Error(); got != "stream read 10.0.0.2:41000: connection reset" {
		t.Errorf("Error() = %q", got)
	}
	if Unwrap(e) != inner {
		t.Error("Unwrap lost the inner error")
	}

	noAddr := WrapStream("accept", "", inner)
	if got := noAddr.Error(); got != "stream accept: connection reset" {
		t.Errorf("Error() = %q", got)
	}
}

func TestScriptError(t *testing.T) {
	e := WrapScript("/tmp/startup", os.ErrPermission)
	if got := e.Error(); got != "script /tmp/startup: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(e, os.ErrPermission) {
		t.Error("Is should see through the wrapper")
	}
}

func TestConfigError(t *testing.T) {
	e := &ConfigError{Field: "port", Value: 99999, Message: "port must be in 1-65535"}
	if got := e.Error(); got != "config: --port=99999: port must be in 1-65535" {
		t.Errorf("Error() = %q", got)
	}

	withHint := &ConfigError{
		Field:   "host-key",
		Message: "ssh transport requires a host key file",
		Hint:    "generate one with ssh-keygen",
	}
	want := "config: --host-key: ssh transport requires a host key file\n  hint: generate one with ssh-keygen"
	if got := withHint.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsDisconnect(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"eof", io.EOF, true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"closed listener", net.ErrClosed, true},
		{"closed pipe", io.ErrClosedPipe, true},
		{"deadline", os.ErrDeadlineExceeded, true},
		{"wrapped eof", fmt.Errorf("reading: %w", io.EOF), true},
		{"op error on closed conn", &net.OpError{Op: "read", Err: net.ErrClosed}, true},
		{"ordinary error", New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDisconnect(tt.err); got != tt.want {
				t.Errorf("IsDisconnect(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type tempErr struct{}

func (tempErr) Error() string   { return "temporarily unavailable" }
func (tempErr) Timeout() bool   { return false }
func (tempErr) Temporary() bool { return true }

func TestIsTemporary(t *testing.T) {
	if IsTemporary(nil) {
		t.Error("nil should not be temporary")
	}
	if IsTemporary(New("boom")) {
		t.Error("plain error should not be temporary")
	}
	op := &net.OpError{Op: "accept", Err: tempErr{}}
	if !IsTemporary(op) {
		t.Error("temporary OpError not recognised")
	}
	fatal := &net.OpError{Op: "accept", Err: New("fatal")}
	if IsTemporary(fatal) {
		t.Error("non-temporary OpError misclassified")
	}
}
