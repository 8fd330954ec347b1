// ABOUTME: Argument schemas for the server command catalog
// ABOUTME: Optional fields are omitted from the wire when unset

package client

// CancelArgs asks the server to cancel the task with the given id.
// Cancellation is a hint the running task may ignore.
type CancelArgs struct {
	Task string `json:"task"`
}

// SessionBuildArgs configures session_build and session_start. The build
// produces all required ancestor images according to the session graph.
type SessionBuildArgs struct {
	// Session is the target session name.
	Session string `json:"session"`
	// Preferences overrides the environment of system options.
	Preferences string `json:"preferences,omitempty"`
	// Options are individual updates of the form "name=value" or "name".
	Options []string `json:"options,omitempty"`
	// Dirs adds directories for session ROOT and ROOTS files.
	Dirs []string `json:"dirs,omitempty"`
	// IncludeSessions names sessions whose theories join the overall
	// namespace of session-qualified theory names.
	IncludeSessions []string `json:"include_sessions,omitempty"`
}

// NewSessionBuildArgs returns arguments targeting the named session.
func NewSessionBuildArgs(session string) SessionBuildArgs {
	return SessionBuildArgs{Session: session}
}

// SessionStopArgs forces a shutdown of the identified session.
type SessionStopArgs struct {
	SessionID string `json:"session_id"`
}

// UseTheoriesArgs updates a session by adding the current version of theory
// files to it; dependencies are resolved implicitly.
type UseTheoriesArgs struct {
	SessionID        string   `json:"session_id"`
	Theories         []string `json:"theories"`
	MasterDir        string   `json:"master_dir,omitempty"`
	UnicodeSymbols   *bool    `json:"unicode_symbols,omitempty"`
	ExportPattern    string   `json:"export_pattern,omitempty"`
	CheckDelay       *float64 `json:"check_delay,omitempty"`
	CheckLimit       *int     `json:"check_limit,omitempty"`
	WatchdogTimeout  *float64 `json:"watchdog_timeout,omitempty"`
	NodesStatusDelay *float64 `json:"nodes_status_delay,omitempty"`
}

// NewUseTheoriesArgs returns arguments loading the given theories into the
// identified session.
func NewUseTheoriesArgs(sessionID string, theories ...string) UseTheoriesArgs {
	return UseTheoriesArgs{SessionID: sessionID, Theories: theories}
}

// PurgeTheoriesArgs removes theories from a session. Theories used by pending
// use_theories tasks or imported by other theories are retained.
type PurgeTheoriesArgs struct {
	SessionID string   `json:"session_id"`
	Theories  []string `json:"theories"`
	MasterDir string   `json:"master_dir,omitempty"`
	All       *bool    `json:"all,omitempty"`
}

// NewPurgeTheoriesArgs returns arguments purging the given theories from the
// identified session.
func NewPurgeTheoriesArgs(sessionID string, theories ...string) PurgeTheoriesArgs {
	return PurgeTheoriesArgs{SessionID: sessionID, Theories: theories}
}
