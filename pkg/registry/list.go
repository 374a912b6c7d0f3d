package registry

import (
	"bytes"
	"encoding/json"
)

// List decodes a registry array leniently. A payload that is not a JSON
// array leaves the list empty, and an element that fails to decode becomes a
// nil entry so callers can skip it without losing its siblings.
type List[T any] []*T

// UnmarshalJSON implements the lenient decoding described on List.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil
	}

	out := make(List[T], 0, len(elements))
	for _, element := range elements {
		element = bytes.TrimSpace(element)
		if len(element) == 0 || element[0] != '{' {
			out = append(out, nil)
			continue
		}
		item := new(T)
		if err := json.Unmarshal(element, item); err != nil {
			out = append(out, nil)
			continue
		}
		out = append(out, item)
	}
	*l = out
	return nil
}
