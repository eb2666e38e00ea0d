// Package cmd wires up the CLI flags and starts the shell server.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"shelld/commands"
	"shelld/config"
	"shelld/internal/metrics"
	"shelld/server"
	"shelld/shell"
	"shelld/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X shelld/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs shelld in the requested mode.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	fs := flag.NewFlagSet("shelld", flag.ContinueOnError)

	// Flags land in locals first; file and env settings are applied
	// in between so explicit flags keep the highest precedence.
	var (
		configFile string
		address    string
		port       int
		conns      int
		timeoutSec int
		useSSH     bool
		hostKey    string
		askPass    bool
		bufSize    int
		histSize   int
		maxArgs    int
		name       string
		stdio      bool
		verbose    int
	)

	// ── listener ─────────────────────────────────────────────────
	fs.StringVarP(&configFile, "config", "C", "", "Read settings from a config file")
	fs.StringVarP(&address, "address", "a", "", "Bind address (default: all interfaces)")
	fs.IntVarP(&port, "port", "p", cfg.Port, "Listen port")
	fs.IntVarP(&conns, "conns", "c", cfg.MaxConns, "Maximum concurrent sessions")
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Absolute session timeout in seconds")

	// ── ssh transport ────────────────────────────────────────────
	fs.BoolVar(&useSSH, "ssh", false, "Serve sessions over SSH instead of plain TCP")
	fs.StringVar(&hostKey, "host-key", "", "SSH host private key file")
	fs.BoolVar(&askPass, "ssh-password", false, "Prompt for an SSH session password at startup")

	// ── session geometry ─────────────────────────────────────────
	fs.IntVarP(&bufSize, "buffer", "b", cfg.BufferSize, "Input buffer capacity per session")
	fs.IntVarP(&histSize, "history", "H", cfg.HistorySize, "History ring slots per session")
	fs.IntVar(&maxArgs, "max-args", cfg.MaxArgs, "Maximum tokens per line")

	// ── identity / output ────────────────────────────────────────
	fs.StringVarP(&name, "name", "n", cfg.Name, "Server name reported by uname")
	fs.BoolVarP(&stdio, "stdio", "i", false, "Run a single session on stdin/stdout")
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("shelld %s\n", version)
		return nil
	}

	// ── layer the sources: file, env, then explicit flags ────────
	if configFile != "" {
		if err := config.LoadFromFile(cfg, configFile); err != nil {
			return err
		}
	}
	config.LoadFromEnv(cfg)

	if fs.Changed("address") {
		cfg.BindAddress = address
	}
	if fs.Changed("port") {
		cfg.Port = port
	}
	if fs.Changed("conns") {
		cfg.MaxConns = conns
	}
	if fs.Changed("timeout") {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}
	if fs.Changed("ssh") {
		cfg.SSH = useSSH
	}
	if fs.Changed("host-key") {
		cfg.HostKeyPath = hostKey
	}
	if fs.Changed("buffer") {
		cfg.BufferSize = bufSize
	}
	if fs.Changed("history") {
		cfg.HistorySize = histSize
	}
	if fs.Changed("max-args") {
		cfg.MaxArgs = maxArgs
	}
	if fs.Changed("name") {
		cfg.Name = name
	}
	if fs.Changed("verbose") {
		cfg.Verbose = verbose
	}
	cfg.Stdio = stdio

	if askPass && cfg.SSH {
		pass, err := promptPassword()
		if err != nil {
			return err
		}
		cfg.SSHPassword = pass
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	mc := metrics.New()

	registry := shell.NewRegistry()
	commands.InstallCore(registry, cfg.Name, version, mc)
	commands.InstallFS(registry)

	if cfg.Stdio {
		return runStdio(ctx, cfg, registry, logger, mc)
	}

	srv := server.New(cfg, registry, logger, mc)
	return srv.Run(ctx)
}

// promptPassword reads the session password from the controlling
// terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "session password: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pass), nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `shelld – network text shell v%s

Serves an interactive line-editing command shell, one session per
connection, over plain TCP or SSH.

Usage:
  shelld [options]                            Serve TCP sessions
  shelld --ssh --host-key key [options]       Serve SSH sessions
  shelld -i                                   Single session on stdio

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  shelld -p 2323                              Listen on 2323
  shelld -C shelld.conf -vv                   Config file, verbose logs
  shelld --ssh --host-key hostkey -p 2222     Shell over SSH
  shelld -i                                   Try it locally
`)
}
