// ABOUTME: Dispatch engine for the Isabelle server line protocol
// ABOUTME: One fresh authenticated TCP connection per command, sync or async

package client

import (
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/harper/isaclient/internal/lineproto"
	"github.com/harper/isaclient/internal/logger"
)

// Client dispatches commands to an Isabelle server. Every command opens its
// own connection and performs the password handshake, so a Client is safe for
// concurrent use; the server decides how work across connections is
// serialized or parallelized.
type Client struct {
	addr     string
	password string
}

// NewClient returns a client for the server at address:port. An empty
// address defaults to 127.0.0.1.
func NewClient(address string, port int, password string) *Client {
	if address == "" {
		address = "127.0.0.1"
	}
	return &Client{
		addr:     net.JoinHostPort(address, strconv.Itoa(port)),
		password: password,
	}
}

// Addr returns the server address the client dials.
func (c *Client) Addr() string {
	return c.addr
}

// NoteFunc observes one progress notification of an asynchronous task. It is
// invoked inline from the dispatch loop, once per NOTE line, before the
// terminal outcome is returned.
type NoteFunc func(Message)

// CallOption customizes a single async dispatch.
type CallOption func(*callOptions)

type callOptions struct {
	notes NoteFunc
}

// WithNotes delivers each progress notification of this call to fn.
func WithNotes(fn NoteFunc) CallOption {
	return func(o *callOptions) { o.notes = fn }
}

// connect opens a connection and authenticates it. The context bounds the
// dial and, via the returned connection's watcher, the rest of the call.
func (c *Client) connect(ctx context.Context) (*lineproto.Conn, error) {
	conn, err := lineproto.Dial(ctx, c.addr)
	if err != nil {
		return nil, err
	}
	if err := c.handshake(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// handshake writes the password and reads exactly one line. Anything but an
// OK-prefixed reply, including a transport failure, means the connection is
// not authenticated and must not carry command traffic.
func (c *Client) handshake(conn *lineproto.Conn) error {
	if err := conn.WriteLine(c.password + "\n"); err != nil {
		return lineproto.NewAuthError("", err)
	}
	line, err := conn.ReadLine()
	if err != nil {
		return lineproto.NewAuthError("", err)
	}
	if !strings.HasPrefix(line, "OK") {
		return lineproto.NewAuthError(line, nil)
	}
	logger.Debug("handshake ok: %s", strings.TrimSpace(line))
	return nil
}

// watchContext closes conn once ctx is canceled, which unsticks a blocked
// line read. The engine enforces no deadline of its own; severing the
// connection is the only way to bound a call.
func watchContext(ctx context.Context, conn *lineproto.Conn) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}

// runSync writes cmd on an authenticated connection and reads until the one
// terminal OK or ERROR line, skipping stray non-terminal lines along the way.
// End-of-stream before a terminal line is a connection error, not an outcome.
func runSync[R, E any](conn *lineproto.Conn, cmd lineproto.Command) (SyncResult[R, E], error) {
	var zero SyncResult[R, E]

	line, err := cmd.Encode()
	if err != nil {
		return zero, err
	}
	logger.Wire(">>", line)
	if err := conn.WriteLine(line); err != nil {
		return zero, err
	}

	for {
		raw, err := conn.ReadLine()
		if err != nil {
			return zero, err
		}
		logger.Wire("<<", raw)

		switch classified := lineproto.Classify(raw); classified.Kind {
		case lineproto.KindOK:
			value, err := lineproto.Decode[R](classified.Rest)
			if err != nil {
				return zero, err
			}
			return syncOK[R, E](value), nil
		case lineproto.KindError:
			reason, err := lineproto.Decode[E](classified.Rest)
			if err != nil {
				return zero, err
			}
			return syncErr[R, E](reason), nil
		default:
			// Stray diagnostic lines carry no protocol meaning.
			logger.Debug("skipping %s line: %q", classified.Kind, raw)
		}
	}
}

// dispatchSync drives one synchronous command over a fresh connection.
func dispatchSync[R, E any](ctx context.Context, c *Client, cmd lineproto.Command) (SyncResult[R, E], error) {
	var zero SyncResult[R, E]

	conn, err := c.connect(ctx)
	if err != nil {
		return zero, err
	}
	defer conn.Close()
	defer watchContext(ctx, conn)()

	return runSync[R, E](conn, cmd)
}

// dispatchAsync drives one asynchronous command over a fresh connection.
// Acceptance reuses the sync contract with the success payload fixed to the
// task id; an ERROR there ends the call before any task exists. The
// completion phase then loops until the task's single FINISHED or FAILED
// line, delivering NOTE lines to the observer and skipping everything else.
func dispatchAsync[R, F any](ctx context.Context, c *Client, cmd lineproto.Command, opts []CallOption) (AsyncResult[R, F], error) {
	var zero AsyncResult[R, F]
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	conn, err := c.connect(ctx)
	if err != nil {
		return zero, err
	}
	defer conn.Close()
	defer watchContext(ctx, conn)()

	accepted, err := runSync[Task, Message](conn, cmd)
	if err != nil {
		return zero, err
	}
	if !accepted.OK {
		rejection := accepted.Err
		return AsyncResult[R, F]{State: AsyncRejected, Rejected: &rejection}, nil
	}
	logger.Debug("task %s accepted", accepted.Value.ID)

	return awaitCompletion[R, F](conn, options.notes)
}

// awaitCompletion reads classified lines until the terminal FINISHED or
// FAILED of an accepted task.
func awaitCompletion[R, F any](conn *lineproto.Conn, notes NoteFunc) (AsyncResult[R, F], error) {
	var zero AsyncResult[R, F]

	for {
		raw, err := conn.ReadLine()
		if err != nil {
			return zero, err
		}
		logger.Wire("<<", raw)

		switch classified := lineproto.Classify(raw); classified.Kind {
		case lineproto.KindFinished:
			value, err := lineproto.Decode[R](classified.Rest)
			if err != nil {
				return zero, err
			}
			return AsyncResult[R, F]{State: AsyncFinished, Value: value}, nil
		case lineproto.KindFailed:
			failure, err := lineproto.Decode[FailedResult[F]](classified.Rest)
			if err != nil {
				return zero, err
			}
			return AsyncResult[R, F]{State: AsyncFailed, Failure: &failure}, nil
		case lineproto.KindNote:
			note, err := lineproto.Decode[Message](classified.Rest)
			if err != nil {
				return zero, err
			}
			if notes != nil {
				notes(note)
			}
			logger.Debug("note: %s", note.Text)
		default:
			logger.Debug("skipping %s line: %q", classified.Kind, raw)
		}
	}
}

// Echo returns its argument as the result. Useful for probing a server.
func (c *Client) Echo(ctx context.Context, text string) (SyncResult[string, string], error) {
	return dispatchSync[string, string](ctx, c, lineproto.Command{Name: "echo", Args: text})
}

// Shutdown forces a shutdown of the connected server process, stopping all
// open sessions and closing the server socket. Pending commands on other
// connections may be disrupted.
func (c *Client) Shutdown(ctx context.Context) (SyncResult[Unit, string], error) {
	return dispatchSync[Unit, string](ctx, c, lineproto.Command{Name: "shutdown"})
}

// Cancel hints that the identified task should stop. The server may ignore
// it, and an in-flight dispatch loop for that task keeps blocking until the
// server emits its terminal line regardless.
func (c *Client) Cancel(ctx context.Context, taskID string) (SyncResult[Unit, Unit], error) {
	return dispatchSync[Unit, Unit](ctx, c, lineproto.Command{Name: "cancel", Args: CancelArgs{Task: taskID}})
}

// SessionBuild prepares a session image for interactive use of theories.
func (c *Client) SessionBuild(ctx context.Context, args SessionBuildArgs, opts ...CallOption) (AsyncResult[SessionBuildResults, SessionBuildResults], error) {
	return dispatchAsync[SessionBuildResults, SessionBuildResults](ctx, c, lineproto.Command{Name: "session_build", Args: args}, opts)
}

// SessionStart starts a new PIDE session based on a session image built on
// demand. The returned session id outlives this connection.
func (c *Client) SessionStart(ctx context.Context, args SessionBuildArgs, opts ...CallOption) (AsyncResult[SessionStartResult, Unit], error) {
	return dispatchAsync[SessionStartResult, Unit](ctx, c, lineproto.Command{Name: "session_start", Args: args}, opts)
}

// SessionStop forces a shutdown of the identified session.
func (c *Client) SessionStop(ctx context.Context, args SessionStopArgs, opts ...CallOption) (AsyncResult[SessionStopResult, SessionStopResult], error) {
	return dispatchAsync[SessionStopResult, SessionStopResult](ctx, c, lineproto.Command{Name: "session_stop", Args: args}, opts)
}

// UseTheories updates the identified session by loading theories into it.
func (c *Client) UseTheories(ctx context.Context, args UseTheoriesArgs, opts ...CallOption) (AsyncResult[UseTheoriesResults, Unit], error) {
	return dispatchAsync[UseTheoriesResults, Unit](ctx, c, lineproto.Command{Name: "use_theories", Args: args}, opts)
}

// PurgeTheories removes theories from the identified session.
func (c *Client) PurgeTheories(ctx context.Context, args PurgeTheoriesArgs) (SyncResult[PurgeTheoriesResults, Unit], error) {
	return dispatchSync[PurgeTheoriesResults, Unit](ctx, c, lineproto.Command{Name: "purge_theories", Args: args})
}
