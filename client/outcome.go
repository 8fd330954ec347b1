// ABOUTME: Typed outcomes for sync and async dispatch
// ABOUTME: Server-reported failures are valid outcomes, not engine errors

package client

// Unit is the payload of commands that succeed with no result value.
type Unit = struct{}

// SyncResult is the two-variant outcome of a synchronous command: the server
// either accepted it (OK) or rejected it (ERROR). Both variants are
// successfully decoded protocol outcomes; transport and decoding failures
// surface as ordinary errors instead.
type SyncResult[T, E any] struct {
	OK    bool
	Value T // set when OK
	Err   E // set when not OK
}

func syncOK[T, E any](v T) SyncResult[T, E] {
	return SyncResult[T, E]{OK: true, Value: v}
}

func syncErr[T, E any](e E) SyncResult[T, E] {
	return SyncResult[T, E]{Err: e}
}

// AsyncState is the terminal state of an asynchronous command.
type AsyncState int

const (
	// AsyncRejected means the command was not accepted; no task was created.
	AsyncRejected AsyncState = iota
	// AsyncFinished means the accepted task completed successfully.
	AsyncFinished
	// AsyncFailed means the accepted task terminated with a failure.
	AsyncFailed
)

func (s AsyncState) String() string {
	switch s {
	case AsyncFinished:
		return "finished"
	case AsyncFailed:
		return "failed"
	default:
		return "rejected"
	}
}

// AsyncResult is the three-variant outcome of an asynchronous command.
// Exactly one of the variant fields is populated, per State.
type AsyncResult[T, F any] struct {
	State    AsyncState
	Value    T                // set when Finished
	Failure  *FailedResult[F] // set when Failed
	Rejected *Message         // set when Rejected
}

// Finished reports whether the task completed successfully.
func (r AsyncResult[T, F]) Finished() bool {
	return r.State == AsyncFinished
}
