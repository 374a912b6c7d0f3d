package registry

import (
	"bytes"
	"encoding/json"

	"github.com/goliatone/go-zwavegen/internal/numeric"
)

// Value holds a loosely typed registry scalar. The registry publishes the
// same field as a number in one record and a string in the next, and omits
// fields freely, so Value keeps the decoded payload and remembers whether the
// key was present at all. A JSON null counts as present.
type Value struct {
	raw     any
	present bool
}

// NewValue wraps a Go value (string, number, bool, or nil) as a present Value.
// It is mainly useful when building records in code.
func NewValue(v any) Value {
	return Value{raw: v, present: true}
}

// UnmarshalJSON records the raw payload. Numbers are kept as json.Number so
// large identifiers survive decoding untouched.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.present = true
	v.raw = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return err
	}
	v.raw = decoded
	return nil
}

// MarshalJSON emits the original payload, or null when absent.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// Present reports whether the key appeared in the payload.
func (v Value) Present() bool {
	return v.present
}

// IsNull reports whether the value is absent or an explicit null.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// Int parses the value as an integer. ok is false when the value is absent,
// null, or not numeric.
func (v Value) Int() (n int64, ok bool) {
	return numeric.ParseInt(v.raw)
}

// IntBase parses the value as an integer in the supplied base.
func (v Value) IntBase(base int) (n int64, ok bool) {
	return numeric.ParseIntBase(v.raw, base)
}

// Text returns the textual form of the value; absent and null render as "".
func (v Value) Text() string {
	return numeric.Text(v.raw)
}
