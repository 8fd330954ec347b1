// ABOUTME: Typed errors for the line protocol engine
// ABOUTME: Separates transport, handshake, and payload-decoding failures

package lineproto

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// ConnError reports a socket open/write/read failure or an unexpected close.
// It is fatal to the in-flight call and never retried by the engine.
type ConnError struct {
	Op   string // "dial", "write", "read"
	Addr string
	Err  error
}

func NewConnError(op, addr string, err error) *ConnError {
	return &ConnError{Op: op, Addr: addr, Err: err}
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connection %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// Closed reports whether the error was caused by the peer closing the socket.
func (e *ConnError) Closed() bool {
	return errors.Is(e.Err, io.EOF) || errors.Is(e.Err, net.ErrClosed)
}

// AuthError reports a handshake that did not return an OK-prefixed line.
// The connection must not be used after this.
type AuthError struct {
	Line string // the offending first line, empty if the read itself failed
	Err  error  // transport-level cause, if any
}

func NewAuthError(line string, err error) *AuthError {
	return &AuthError{Line: line, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("authentication failed: server replied %q", e.Line)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a classified payload that failed to decode into its
// expected type. It carries the raw text for diagnosis.
type ProtocolError struct {
	Text string
	Err  error
}

func NewProtocolError(text string, err error) *ProtocolError {
	return &ProtocolError{Text: text, Err: err}
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("malformed payload %q: %v", e.Text, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
