// ABOUTME: TCP transport for the line protocol, one connection per logical call
// ABOUTME: Provides buffered line reads and write-and-flush line writes

package lineproto

import (
	"bufio"
	"context"
	"net"
	"strings"
)

// Conn owns one TCP socket and serves exactly one logical call. Commands are
// never multiplexed over a shared socket.
type Conn struct {
	addr string
	sock net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// Dial opens a TCP connection to addr. The context bounds the dial only;
// it does not apply to subsequent reads or writes.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	sock, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, NewConnError("dial", addr, err)
	}
	return newConn(sock, addr), nil
}

func newConn(sock net.Conn, addr string) *Conn {
	return &Conn{
		addr: addr,
		sock: sock,
		r:    bufio.NewReader(sock),
		w:    bufio.NewWriter(sock),
	}
}

// WriteLine writes one line and flushes. The line must already carry its
// trailing newline; a write without a flush never reaches the server.
func (c *Conn) WriteLine(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return NewConnError("write", c.addr, err)
	}
	if err := c.w.Flush(); err != nil {
		return NewConnError("write", c.addr, err)
	}
	return nil
}

// ReadLine blocks until a full newline-terminated line arrives, then returns
// it without the trailing newline. Reading past a closed socket yields a
// ConnError whose Closed method reports true.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", NewConnError("read", c.addr, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close severs the connection. A concurrent blocked ReadLine fails with a
// ConnError once the socket is gone.
func (c *Conn) Close() error {
	return c.sock.Close()
}
