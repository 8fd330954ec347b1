// ABOUTME: Tests for the request-line encoder
// ABOUTME: Verifies the one-line invariant and the empty-args rendering

package lineproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandEncodeWithArgs(t *testing.T) {
	cmd := Command{Name: "echo", Args: "hello"}
	line, err := cmd.Encode()
	require.NoError(t, err)
	assert.Equal(t, "echo \"hello\"\n", line)
}

func TestCommandEncodeStructArgs(t *testing.T) {
	cmd := Command{Name: "cancel", Args: map[string]string{"task": "t1"}}
	line, err := cmd.Encode()
	require.NoError(t, err)
	assert.Equal(t, "cancel {\"task\":\"t1\"}\n", line)
}

func TestCommandEncodeNoArgs(t *testing.T) {
	cmd := Command{Name: "shutdown"}
	line, err := cmd.Encode()
	require.NoError(t, err)

	// Absent args render as an empty string, not "null"; the trailing
	// space before the newline is part of the wire format.
	assert.Equal(t, "shutdown \n", line)
}

func TestCommandEncodeUnserializableArgs(t *testing.T) {
	cmd := Command{Name: "echo", Args: func() {}}
	_, err := cmd.Encode()
	assert.Error(t, err)
}

func TestCommandString(t *testing.T) {
	cmd := Command{Name: "echo", Args: "hi"}
	assert.Equal(t, "echo \"hi\"", cmd.String())

	assert.Equal(t, "shutdown", Command{Name: "shutdown"}.String())
}
