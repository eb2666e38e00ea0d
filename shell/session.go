// Package shell implements an interactive line-editing command shell
// over an arbitrary byte stream.
//
// A Session pulls bytes from its connection (or from a redirected
// script file), decodes them into key events, applies them to the line
// editor, and on submit tokenizes the line and dispatches the first
// token through the command registry.  One Session serves one
// connection for its whole lifetime and runs strictly sequentially;
// concurrency only exists between sessions.
package shell

import (
	"bufio"
	"io"

	sherr "shelld/internal/errors"
	"shelld/internal/metrics"
	"shelld/util"
)

// More rendered-protocol literals (the rest are in editor.go).
const (
	newline       = "\n"
	noSuchCommand = "no such command: "
	helpBanner    = "available commands:"
)

// Default session geometry.  BufferSize bounds the usable line at one
// byte less; MaxArgs bounds the token count per line.
const (
	DefaultBufferSize  = 128
	DefaultHistorySize = 8
	DefaultMaxArgs     = 16
)

// Options configures a Session.  Zero values fall back to defaults; a
// nil Workdir gets a private one.
type Options struct {
	BufferSize  int
	HistorySize int
	MaxArgs     int
	Workdir     *Workdir
	Logger      *util.Logger
	Metrics     *metrics.Collector
}

func (o *Options) normalize() {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.HistorySize <= 0 {
		o.HistorySize = DefaultHistorySize
	}
	if o.MaxArgs <= 0 {
		o.MaxArgs = DefaultMaxArgs
	}
	if o.Workdir == nil {
		o.Workdir = NewWorkdir()
	}
	if o.Logger == nil {
		o.Logger = util.NewLogger(0)
	}
}

// Session is the full editing and dispatch state for one connection.
type Session struct {
	out      io.Writer
	editor   *Editor
	history  *History
	registry *Registry
	redirect *Redirector
	decoder  *Decoder
	workdir  *Workdir
	logger   *util.Logger
	metrics  *metrics.Collector
	maxArgs  int
	exit     bool
}

// NewSession binds a session to a connection and a populated registry.
func NewSession(conn io.ReadWriter, registry *Registry, opts Options) *Session {
	opts.normalize()

	redirect := NewRedirector(bufio.NewReader(conn))
	return &Session{
		out:      conn,
		editor:   NewEditor(conn, opts.BufferSize, opts.Workdir.Path),
		history:  NewHistory(opts.HistorySize),
		registry: registry,
		redirect: redirect,
		decoder:  NewDecoder(redirect),
		workdir:  opts.Workdir,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		maxArgs:  opts.MaxArgs,
	}
}

// Run drives the session until the stream fails, the peer disconnects,
// or a handler returns Exit.  A plain disconnect returns nil.
func (s *Session) Run() error {
	defer s.redirect.Close()

	s.editor.Prompt(false)

	for !s.exit {
		key, err := s.decoder.ReadKey()
		if err != nil {
			if sherr.IsDisconnect(err) {
				return nil
			}
			return sherr.WrapStream("read", "", err)
		}

		switch key.Type {
		case KeyPrintable:
			s.editor.Insert(key.Ch)
		case KeyBackspace:
			s.editor.Backspace()
		case KeyDelete:
			s.editor.Delete()
		case KeyLeft:
			s.editor.MoveLeft()
		case KeyRight:
			s.editor.MoveRight()
		case KeyHome:
			s.editor.Home()
		case KeyEnd:
			s.editor.End()
		case KeyUp:
			if line, ok := s.history.Up(); ok {
				s.editor.SetLine(line)
			}
		case KeyDown:
			s.history.Down()
			s.editor.ClearLine()
		case KeySubmit:
			s.submit()
		}
	}
	return nil
}

// submit runs the dispatch pipeline on the current line: record
// history, tokenize, resolve, and either invoke the handler, divert
// input to a script file, or report an unknown command.  The buffer is
// then reset and a fresh prompt drawn on a new terminal line.
func (s *Session) submit() {
	line := s.editor.Line()
	s.metrics.LineSubmitted()

	if len(line) > 0 {
		s.history.Record(string(line))
	}

	tokens := Tokenize(line, s.maxArgs)

	if cmd := s.registry.Resolve(tokens, s.editor.Cap()-1); cmd != nil {
		io.WriteString(s.out, newline) //nolint:errcheck

		args := make([]string, len(tokens)-1)
		for i, t := range tokens[1:] {
			args[i] = string(t)
		}

		code := cmd.Handler(s.out, args)
		s.metrics.CommandRun()
		s.control(code, cmd)
	} else if engaged, err := s.redirect.Start(string(line)); engaged {
		s.metrics.ScriptRun()
		s.logger.Debug("running script %q", string(line))
	} else if len(tokens) > 0 {
		if err != nil {
			s.logger.Debug("script open failed: %v", err)
		}
		s.metrics.UnknownCommand()
		io.WriteString(s.out, newline+noSuchCommand) //nolint:errcheck
		s.out.Write(tokens[0])                       //nolint:errcheck
	}

	s.editor.Reset()
	s.editor.Prompt(true)
}

// control reacts to the code a handler returned.
func (s *Session) control(code ControlCode, cmd *Command) {
	switch code {
	case Exit:
		s.exit = true
	case DirChanged:
		s.workdir.Refresh()
	case PrintCommandList:
		io.WriteString(s.out, helpBanner) //nolint:errcheck
		for _, c := range s.registry.Commands() {
			io.WriteString(s.out, newline) //nolint:errcheck
			io.WriteString(s.out, c.Name)  //nolint:errcheck
		}
	case PrintUsage:
		io.WriteString(s.out, cmd.Usage) //nolint:errcheck
	}
}
