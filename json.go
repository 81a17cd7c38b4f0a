package tempoch

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalJSON encodes t as a bare JSON number. The scale is implied by
// the Go type and is not written.
func (t Time[S]) MarshalJSON() ([]byte, error) {
	if !t.IsFinite() {
		return nil, &NonFiniteError{Scale: label[S](), Value: t.v}
	}
	return json.Marshal(t.v)
}

// UnmarshalJSON decodes a JSON number through New, so a decoded Time
// is always finite. A JSON null leaves t unchanged.
func (t *Time[S]) UnmarshalJSON(data []byte) error {
	// Ignore null, like in the main JSON package.
	if string(data) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding %s time: %w", label[S](), err)
	}
	u, err := New[S](v)
	if err != nil {
		return err
	}
	*t = u
	return nil
}

type intervalJSON[T any] struct {
	Start *T `json:"start"`
	End   *T `json:"end"`
}

// MarshalJSON encodes iv as {"start": ..., "end": ...}, each endpoint
// in its own JSON form.
func (iv Interval[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON[T]{&iv.start, &iv.end})
}

// UnmarshalJSON decodes {"start": ..., "end": ...} through NewInterval.
// Both fields are required and may not be null. A JSON null in place of
// the whole object leaves iv unchanged.
func (iv *Interval[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw intervalJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Start == nil || raw.End == nil {
		return errors.New("decoding interval: start and end are required")
	}
	v, err := NewInterval(*raw.Start, *raw.End)
	if err != nil {
		return err
	}
	*iv = v
	return nil
}
