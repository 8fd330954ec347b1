// ABOUTME: Typed payload decoder for classified response lines
// ABOUTME: Applies the empty-string-means-null wire compatibility rule

package lineproto

import "encoding/json"

// Decode parses the payload remainder of a classified line into T. The wire
// format represents an empty or unit payload as an empty string rather than
// valid JSON, so empty text is substituted with the literal null before
// parsing. This is a protocol compatibility rule, not a general JSON
// relaxation. Parse failures come back as a ProtocolError carrying the
// offending text; the decoder never guesses or coerces.
func Decode[T any](text string) (T, error) {
	var v T
	if text == "" {
		text = "null"
	}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return v, NewProtocolError(text, err)
	}
	return v, nil
}
