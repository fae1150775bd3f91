// Package extract pulls structured JSON out of free-form model replies.
//
// Models often wrap the JSON they were asked for in prose, markdown fences
// or a short preamble. The functions here locate the bracketed region first
// and only then parse it, so a stray character outside the array does not
// sink the whole reply.
package extract

import (
	"encoding/json"
	"regexp"
)

// arrayPattern spans from the first '[' to the last ']' across newlines.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// RawArray returns the bracketed region of text if it is valid JSON.
func RawArray(text string) (json.RawMessage, bool) {
	m := arrayPattern.FindString(text)
	if m == "" {
		return nil, false
	}
	if !json.Valid([]byte(m)) {
		return nil, false
	}
	return json.RawMessage(m), true
}

// JSONArray returns the first JSON array embedded in text, decoded into
// generic values. It returns nil when no bracketed region exists or the
// region does not parse. An empty array decodes to a non-nil empty slice.
func JSONArray(text string) []any {
	raw, ok := RawArray(text)
	if !ok {
		return nil
	}
	var out []any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	if out == nil {
		out = []any{}
	}
	return out
}

// Into decodes the embedded JSON array into a typed slice.
func Into[T any](text string) ([]T, bool) {
	raw, ok := RawArray(text)
	if !ok {
		return nil, false
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}
