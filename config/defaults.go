package config

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultPort is the TCP port shell sessions are served on.
	DefaultPort = 2323

	// DefaultMaxConns limits concurrent sessions.
	DefaultMaxConns = 5

	// DefaultBufferSize is the input buffer capacity per session.
	// The usable line length is one byte less.
	DefaultBufferSize = 128

	// DefaultHistorySize is the number of history ring slots.
	DefaultHistorySize = 8

	// DefaultMaxArgs bounds the tokens produced from one line.
	DefaultMaxArgs = 16

	// DefaultName is the server name reported by uname and used in
	// log output.
	DefaultName = "shelld"
)
