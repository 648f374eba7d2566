package models

import (
	json "github.com/goccy/go-json"
)

// marshalStringSlice encodes a string slice for storage in a text column.
// A nil or empty slice is stored as an empty string.
func marshalStringSlice(values []string) string {
	if len(values) == 0 {
		return ""
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(raw)
}

// unmarshalStringSlice decodes a text column written by marshalStringSlice.
func unmarshalStringSlice(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
