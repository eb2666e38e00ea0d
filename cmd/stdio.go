package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"shelld/config"
	"shelld/internal/metrics"
	"shelld/shell"
	"shelld/util"
)

// runStdio runs exactly one session over stdin/stdout.  When stdin is
// a terminal it is switched to raw mode so keystrokes arrive one byte
// at a time, the way a remote connection delivers them.
func runStdio(ctx context.Context, cfg *config.Config, registry *shell.Registry,
	logger *util.Logger, mc *metrics.Collector) error {

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, state) //nolint:errcheck
	}

	mc.SessionOpened()
	defer mc.SessionClosed()

	sess := shell.NewSession(&stdioStream{
		in:  util.NormalizeEnter(os.Stdin),
		out: os.Stdout,
	}, registry, shell.Options{
		BufferSize:  cfg.BufferSize,
		HistorySize: cfg.HistorySize,
		MaxArgs:     cfg.MaxArgs,
		Logger:      logger,
		Metrics:     mc,
	})

	done := make(chan error, 1)
	go func() { done <- sess.Run() }()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		return err
	}
}

// stdioStream glues stdin and stdout into the single read/write stream
// a session expects.
type stdioStream struct {
	in  io.Reader
	out io.Writer
}

func (s *stdioStream) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s *stdioStream) Write(p []byte) (int, error) { return s.out.Write(p) }
