// ABOUTME: Result schemas for server responses and progress notifications
// ABOUTME: One canonical schema per shape, modeled on observed server behavior

package client

import "encoding/json"

// Position locates a message within source text, when applicable.
type Position struct {
	Line      int    `json:"line,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	EndOffset int    `json:"end_offset,omitempty"`
	File      string `json:"file,omitempty"`
	ID        int    `json:"id,omitempty"`
}

// Message is a server-reported diagnostic. The main kinds are "writeln" for
// regular output, "warning", and "error".
type Message struct {
	Kind string    `json:"kind"`
	Text string    `json:"message"`
	Pos  *Position `json:"pos,omitempty"`
}

// Task names an in-flight asynchronous operation on the server. It is opaque
// to the client: produced by the acknowledgement of an async command and
// consumed only by the cancel command.
type Task struct {
	ID string `json:"task"`
}

// Timing is the overall wall-clock/CPU/GC timing of a server-side job.
type Timing struct {
	Elapsed float64 `json:"elapsed"`
	CPU     float64 `json:"cpu"`
	GC      float64 `json:"gc"`
}

// Node identifies a theory within the session namespace.
type Node struct {
	NodeName   string `json:"node_name"`
	TheoryName string `json:"theory_name"`
}

// NodeStatus is the processing state of one theory node.
type NodeStatus struct {
	OK           bool `json:"ok"`
	Total        int  `json:"total"`
	Unprocessed  int  `json:"unprocessed"`
	Running      int  `json:"running"`
	Warned       int  `json:"warned"`
	Failed       int  `json:"failed"`
	Canceled     bool `json:"canceled"`
	Consolidated bool `json:"consolidated"`
	Percentage   int  `json:"percentage"`
}

// NodeStatusEntry pairs a node with its status in a nodes_status notification.
type NodeStatusEntry struct {
	Node
	NodeStatus
}

// NodesStatus is the payload of a nodes_status progress notification.
type NodesStatus struct {
	Status []NodeStatusEntry `json:"nodes_status"`
}

// TheoryProgress is the payload of a theory_progress notification.
type TheoryProgress struct {
	Kind       string `json:"kind"` // "writeln"
	Text       string `json:"message"`
	Session    string `json:"session"`
	Theory     string `json:"theory,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
}

// Export is one theory export produced by use_theories.
type Export struct {
	Name   string `json:"name"`
	Base64 bool   `json:"base64"`
	Body   string `json:"body"`
}

// SessionBuildResult is the per-session outcome of a session_build task.
type SessionBuildResult struct {
	Session    string `json:"session"`
	OK         bool   `json:"ok"`
	ReturnCode int    `json:"return_code"` // zero iff OK
	Timeout    bool   `json:"timeout"`     // true if the build ran too long and was aborted
	Timing     Timing `json:"timing"`
}

// SessionBuildResults is the terminal payload of a session_build task. It is
// also the failure context: a failed build reports the same structure.
type SessionBuildResults struct {
	OK         bool                 `json:"ok"`
	ReturnCode int                  `json:"return_code"`
	Sessions   []SessionBuildResult `json:"sessions"`
}

// SessionStartResult is the terminal payload of a session_start task.
type SessionStartResult struct {
	Task string `json:"task"`
	// SessionID identifies the session object within the server process.
	// Sessions outlive the connection that started them.
	SessionID string `json:"session_id"`
	// TmpDir is created for this session and deleted when it stops. It is
	// the default master_dir for use_theories and purge_theories.
	TmpDir string `json:"tmp_dir,omitempty"`
}

// SessionStopResult is the terminal payload of a session_stop task.
type SessionStopResult struct {
	Task       string `json:"task"`
	OK         bool   `json:"ok"`
	ReturnCode int    `json:"return_code"`
}

// NodeResults is the per-theory outcome of a use_theories task. The node
// identity fields are inlined with the result fields on the wire.
type NodeResults struct {
	Node
	Status   NodeStatus `json:"status"`
	Messages []Message  `json:"messages"`
	Exports  []Export   `json:"exports"`
}

// UseTheoriesResults is the terminal payload of a use_theories task.
type UseTheoriesResults struct {
	Task   string        `json:"task"`
	OK     bool          `json:"ok"`
	Errors []Message     `json:"errors"`
	Nodes  []NodeResults `json:"nodes"`
}

// PurgeTheoriesResults is the result of purge_theories. The system manual
// advertises a plain {"purged": [string]} shape, which is not what the server
// returns; this models the observed behavior.
type PurgeTheoriesResults struct {
	Purged   []Node `json:"purged"`
	Retained []Node `json:"retained"`
}

// FailedResult is the terminal payload of a failed task: the task id, the
// server's error message, and optional command-specific context, all flattened
// into a single JSON object on the wire.
type FailedResult[F any] struct {
	Task    Task
	Message Message
	Context F
}

func (f *FailedResult[F]) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &f.Task); err != nil {
		return err
	}
	if err := json.Unmarshal(b, &f.Message); err != nil {
		return err
	}
	return json.Unmarshal(b, &f.Context)
}
