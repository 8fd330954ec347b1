// ABOUTME: Tests for the typed payload decoder
// ABOUTME: Covers the empty/null equivalence rule and parse-failure reporting

package lineproto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeString(t *testing.T) {
	got, err := Decode[string](`"hello"`)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestDecodeEmptyEqualsNull(t *testing.T) {
	// The server encodes unit payloads as an empty string. Decoding "" and
	// decoding the literal "null" must produce identical values.
	fromEmpty, err := Decode[struct{}]("")
	require.NoError(t, err)
	fromNull, err := Decode[struct{}]("null")
	require.NoError(t, err)
	assert.Equal(t, fromNull, fromEmpty)

	ptrEmpty, err := Decode[*int]("")
	require.NoError(t, err)
	ptrNull, err := Decode[*int]("null")
	require.NoError(t, err)
	assert.Equal(t, ptrNull, ptrEmpty)
	assert.Nil(t, ptrEmpty)
}

func TestDecodeObject(t *testing.T) {
	type task struct {
		Task string `json:"task"`
	}
	got, err := Decode[task](`{"task":"abc123"}`)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.Task)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode[int](`{"not an int`)
	require.Error(t, err)

	var perr *ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, `{"not an int`, perr.Text)
	assert.Error(t, perr.Err)
}

func TestDecodeTypeMismatch(t *testing.T) {
	// Valid JSON of the wrong shape is still a protocol error, never coerced.
	_, err := Decode[int](`"42"`)
	var perr *ProtocolError
	require.True(t, errors.As(err, &perr))
}
