package transport

import (
	"fmt"
	"net"
)

// TCP is the plain TCP transport: every accepted connection is already
// shell-ready.
type TCP struct {
	ln net.Listener
}

// ListenTCP binds addr ("host:port" or ":port").
func ListenTCP(addr string) (*TCP, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return &TCP{ln: ln}, nil
}

func (t *TCP) Accept() (net.Conn, error) { return t.ln.Accept() }
func (t *TCP) Close() error              { return t.ln.Close() }
func (t *TCP) Addr() net.Addr            { return t.ln.Addr() }
