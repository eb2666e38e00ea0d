// Package transport provides the listeners that deliver shell-ready
// connections to the server.  A transport handles the "how" of byte
// movement — plain TCP or an SSH session channel — independent of what
// happens over the connection (the shell package's job).
package transport

import "net"

// Listener binds a local endpoint and yields connections that carry
// raw shell I/O.
type Listener interface {
	// Accept blocks until the next shell-ready connection is
	// available.
	Accept() (net.Conn, error)

	// Close tears the listener down, unblocking any pending Accept.
	Close() error

	// Addr returns the bound local address.
	Addr() net.Addr
}
