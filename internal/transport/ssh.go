package transport

import (
	"crypto/subtle"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	sherr "shelld/internal/errors"
	"shelld/util"
)

// SSHConfig holds everything needed to serve shell sessions over SSH.
type SSHConfig struct {
	HostKeyPath string
	// Password enables password authentication when non-empty;
	// otherwise clients connect unauthenticated.
	Password string
}

// SSH serves one shell connection per SSH session channel.  The
// handshake runs in a background goroutine per TCP connection so a
// stalled client cannot block Accept for everyone else.
type SSH struct {
	ln      net.Listener
	cfg     *ssh.ServerConfig
	logger  *util.Logger
	results chan sshResult
	done    chan struct{}
}

type sshResult struct {
	conn net.Conn
	err  error
}

// ListenSSH binds addr and prepares the SSH server configuration.
func ListenSSH(addr string, conf *SSHConfig, logger *util.Logger) (*SSH, error) {
	if conf.HostKeyPath == "" {
		return nil, sherr.ErrHostKeyMissing
	}
	keyBytes, err := os.ReadFile(conf.HostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("host key %s: %w", conf.HostKeyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("host key %s: %w", conf.HostKeyPath, err)
	}

	cfg := &ssh.ServerConfig{}
	if conf.Password == "" {
		cfg.NoClientAuth = true
	} else {
		want := []byte(conf.Password)
		cfg.PasswordCallback = func(meta ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if subtle.ConstantTimeCompare(pass, want) == 1 {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %s", meta.User())
		}
	}
	cfg.AddHostKey(signer)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	l := &SSH{
		ln:      ln,
		cfg:     cfg,
		logger:  logger,
		results: make(chan sshResult),
		done:    make(chan struct{}),
	}
	go l.acceptLoop()
	return l, nil
}

// Accept returns the next connection whose SSH handshake completed and
// whose client opened a session channel.
func (l *SSH) Accept() (net.Conn, error) {
	select {
	case r := <-l.results:
		return r.conn, r.err
	case <-l.done:
		return nil, net.ErrClosed
	}
}

// Close stops the listener.
func (l *SSH) Close() error {
	select {
	case <-l.done:
		return nil
	default:
	}
	close(l.done)
	return l.ln.Close()
}

// Addr returns the bound TCP address.
func (l *SSH) Addr() net.Addr { return l.ln.Addr() }

func (l *SSH) acceptLoop() {
	for {
		tc, err := l.ln.Accept()
		if err != nil {
			select {
			case <-l.done:
			case l.results <- sshResult{err: err}:
			}
			return
		}
		go l.handshake(tc)
	}
}

// handshake upgrades a raw TCP connection to an SSH session channel
// and delivers it to Accept.  Failures close the connection and are
// logged at verbose level only; a broken client is not a server error.
func (l *SSH) handshake(tc net.Conn) {
	tc.SetDeadline(time.Now().Add(30 * time.Second)) //nolint:errcheck

	sconn, chans, reqs, err := ssh.NewServerConn(tc, l.cfg)
	if err != nil {
		l.logger.Verbose("ssh handshake with %s: %v", tc.RemoteAddr(), err)
		tc.Close()
		return
	}
	tc.SetDeadline(time.Time{}) //nolint:errcheck
	go ssh.DiscardRequests(reqs)

	for newch := range chans {
		if newch.ChannelType() != "session" {
			newch.Reject(ssh.UnknownChannelType, "only session channels are supported") //nolint:errcheck
			continue
		}
		ch, requests, err := newch.Accept()
		if err != nil {
			l.logger.Verbose("ssh channel from %s: %v", tc.RemoteAddr(), err)
			sconn.Close()
			return
		}
		go answerSessionRequests(requests)

		conn := &channelConn{
			Channel: ch,
			sconn:   sconn,
			reader:  util.NormalizeEnter(ch),
		}
		select {
		case l.results <- sshResult{conn: conn}:
		case <-l.done:
			sconn.Close()
		}
		return
	}
	sconn.Close()
}

// answerSessionRequests grants the requests an interactive client
// needs (pty, shell, env, window changes) and declines the rest.
func answerSessionRequests(in <-chan *ssh.Request) {
	for req := range in {
		switch req.Type {
		case "shell", "pty-req", "env", "window-change":
			if req.WantReply {
				req.Reply(true, nil) //nolint:errcheck
			}
		default:
			if req.WantReply {
				req.Reply(false, nil) //nolint:errcheck
			}
		}
	}
}

// channelConn adapts an SSH session channel to net.Conn.  Reads pass
// through Enter normalization because pty clients transmit CR for the
// Enter key.
type channelConn struct {
	ssh.Channel
	sconn  *ssh.ServerConn
	reader io.Reader
}

func (c *channelConn) Read(p []byte) (int, error) { return c.reader.Read(p) }

func (c *channelConn) Close() error {
	c.Channel.Close() //nolint:errcheck
	return c.sconn.Close()
}

func (c *channelConn) LocalAddr() net.Addr  { return c.sconn.LocalAddr() }
func (c *channelConn) RemoteAddr() net.Addr { return c.sconn.RemoteAddr() }

// Deadlines are not supported on SSH channels; the calls succeed so
// the server's absolute-timeout path degrades gracefully.
func (c *channelConn) SetDeadline(time.Time) error      { return nil }
func (c *channelConn) SetReadDeadline(time.Time) error  { return nil }
func (c *channelConn) SetWriteDeadline(time.Time) error { return nil }
