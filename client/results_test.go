// ABOUTME: Tests for result schema decoding
// ABOUTME: Focuses on flattened and inlined wire shapes

package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedResultFlattened(t *testing.T) {
	// Task id, message, and context arrive flattened into one object.
	data := []byte(`{
		"task": "t42",
		"kind": "error",
		"message": "Failed to build session",
		"ok": false,
		"return_code": 2,
		"sessions": []
	}`)

	var failed FailedResult[SessionBuildResults]
	require.NoError(t, json.Unmarshal(data, &failed))

	assert.Equal(t, "t42", failed.Task.ID)
	assert.Equal(t, "error", failed.Message.Kind)
	assert.Equal(t, "Failed to build session", failed.Message.Text)
	assert.Equal(t, 2, failed.Context.ReturnCode)
	assert.False(t, failed.Context.OK)
}

func TestFailedResultUnitContext(t *testing.T) {
	data := []byte(`{"task":"t1","kind":"error","message":"boom"}`)

	var failed FailedResult[Unit]
	require.NoError(t, json.Unmarshal(data, &failed))
	assert.Equal(t, "t1", failed.Task.ID)
	assert.Equal(t, "boom", failed.Message.Text)
}

func TestNodeResultsInlinesNode(t *testing.T) {
	data := []byte(`{
		"node_name": "/tmp/sess/Drinker.thy",
		"theory_name": "HOL-Examples.Drinker",
		"status": {"ok": true, "total": 12, "unprocessed": 0, "running": 0,
			"warned": 0, "failed": 0, "canceled": false, "consolidated": true,
			"percentage": 100},
		"messages": [{"kind": "writeln", "message": "theorem drinker"}],
		"exports": []
	}`)

	var node NodeResults
	require.NoError(t, json.Unmarshal(data, &node))

	assert.Equal(t, "HOL-Examples.Drinker", node.TheoryName)
	assert.True(t, node.Status.OK)
	assert.Equal(t, 100, node.Status.Percentage)
	require.Len(t, node.Messages, 1)
	assert.Equal(t, "theorem drinker", node.Messages[0].Text)
}

func TestMessageWithPosition(t *testing.T) {
	data := []byte(`{
		"kind": "error",
		"message": "Undefined type name",
		"pos": {"line": 23, "offset": 501, "end_offset": 512, "file": "Scratch.thy"}
	}`)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	require.NotNil(t, msg.Pos)
	assert.Equal(t, 23, msg.Pos.Line)
	assert.Equal(t, "Scratch.thy", msg.Pos.File)
}

func TestUseTheoriesResultsDecode(t *testing.T) {
	data := []byte(`{
		"task": "t7",
		"ok": false,
		"errors": [{"kind": "error", "message": "Failed to finish proof"}],
		"nodes": []
	}`)

	var res UseTheoriesResults
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, "t7", res.Task)
	assert.False(t, res.OK)
	require.Len(t, res.Errors, 1)
}

func TestSessionBuildArgsOmitsUnset(t *testing.T) {
	data, err := json.Marshal(NewSessionBuildArgs("HOL"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"session":"HOL"}`, string(data))
}

func TestUseTheoriesArgsOmitsUnset(t *testing.T) {
	data, err := json.Marshal(NewUseTheoriesArgs("s1", "~~/src/HOL/Examples/Drinker"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"s1","theories":["~~/src/HOL/Examples/Drinker"]}`, string(data))
}
