package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a sequence of strings that also accepts a comma-delimited
// string on decode. Blank parts are dropped and the rest trimmed.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	switch data[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to decode string list: %w", err)
		}
		*l = items
	case '"':
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return fmt.Errorf("failed to decode string list: %w", err)
		}
		*l = SplitList(joined)
	default:
		return fmt.Errorf("string list must be an array or a string, got %s", data)
	}
	return nil
}

// MarshalJSON always encodes an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// SplitList splits a comma-delimited string into trimmed, non-empty parts.
func SplitList(s string) StringList {
	parts := strings.Split(s, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
