// ABOUTME: Request-line encoder for the line protocol
// ABOUTME: Renders a command name plus optional JSON arguments as one line

package lineproto

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Command is one request: a command name and optional arguments that
// serialize to JSON. A command always encodes to exactly one line.
type Command struct {
	Name string
	Args any // nil means the command takes no arguments
}

// Encode renders the command as "<name> <json>\n". Absent arguments encode
// as an empty string, never as "null", so a no-argument command produces
// "<name> \n" with the trailing space intact. The server accepts both.
func (c Command) Encode() (string, error) {
	if c.Args == nil {
		return c.Name + " \n", nil
	}
	body, err := json.Marshal(c.Args)
	if err != nil {
		return "", fmt.Errorf("encode %s arguments: %w", c.Name, err)
	}
	return c.Name + " " + string(body) + "\n", nil
}

// String returns the encoded line without its newline, for logging.
func (c Command) String() string {
	line, err := c.Encode()
	if err != nil {
		return c.Name + " <unencodable>"
	}
	return strings.TrimSpace(line)
}
