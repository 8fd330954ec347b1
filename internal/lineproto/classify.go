// ABOUTME: Response-line classifier for the line protocol
// ABOUTME: Maps recognized prefix tokens to response kinds via an ordered table

package lineproto

import "strings"

// Kind identifies a classified response line.
type Kind int

const (
	// KindUnrecognized marks a line matching no known prefix. The server
	// occasionally interleaves diagnostic lines (observed to be bare numeric
	// tokens); they carry no protocol meaning and are never an error.
	KindUnrecognized Kind = iota
	KindOK
	KindError
	KindFinished
	KindFailed
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindError:
		return "ERROR"
	case KindFinished:
		return "FINISHED"
	case KindFailed:
		return "FAILED"
	case KindNote:
		return "NOTE"
	default:
		return "UNRECOGNIZED"
	}
}

// Classified is one response line split into its kind and remaining payload.
type Classified struct {
	Kind Kind
	Rest string // payload after the prefix token, whitespace-trimmed
	Raw  string // the original line, kept for diagnostics
}

// prefixTable fixes the classification precedence. Matching is case-sensitive
// and prefix-based; the first matching entry wins.
var prefixTable = []struct {
	token string
	kind  Kind
}{
	{"OK", KindOK},
	{"ERROR", KindError},
	{"FINISHED", KindFinished},
	{"FAILED", KindFailed},
	{"NOTE", KindNote},
}

// Classify splits one response line by its prefix token. Lines matching no
// entry in the table come back as KindUnrecognized with the trimmed line as
// Rest; callers skip them, they are not a failure.
func Classify(line string) Classified {
	trimmed := strings.TrimSpace(line)
	for _, entry := range prefixTable {
		if rest, ok := strings.CutPrefix(trimmed, entry.token); ok {
			return Classified{Kind: entry.kind, Rest: strings.TrimSpace(rest), Raw: line}
		}
	}
	return Classified{Kind: KindUnrecognized, Rest: trimmed, Raw: line}
}
