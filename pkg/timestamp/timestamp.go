// Package timestamp normalizes the timestamp shapes that complaint records
// carry in the wild: native times, Firestore-style {seconds} objects,
// numeric epoch values and ISO-8601 strings.
package timestamp

import (
	"encoding/json"
	"errors"
	"time"
)

// Sentinel shown wherever a stored timestamp cannot be interpreted.
const Unavailable = "Date not available"

var ErrUnparseable = errors.New("timestamp: unparseable value")

// Convertible covers wrapper types that expose their own conversion,
// e.g. protobuf timestamps.
type Convertible interface {
	AsTime() time.Time
}

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize resolves any supported timestamp shape to a time.Time.
// Unsupported or malformed input returns ErrUnparseable, never a panic.
func Normalize(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, ErrUnparseable
	case time.Time:
		if t.IsZero() {
			return time.Time{}, ErrUnparseable
		}
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, ErrUnparseable
		}
		return Normalize(*t)
	case Convertible:
		return Normalize(t.AsTime())
	case map[string]interface{}:
		return fromSecondsObject(t)
	case int:
		return time.Unix(int64(t), 0), nil
	case int64:
		return time.Unix(t, 0), nil
	case float64:
		return fromEpochSeconds(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, ErrUnparseable
		}
		return fromEpochSeconds(f), nil
	case string:
		return fromString(t)
	default:
		return time.Time{}, ErrUnparseable
	}
}

// Display formats a timestamp for the UI, substituting the sentinel for
// anything Normalize rejects.
func Display(v interface{}) string {
	t, err := Normalize(v)
	if err != nil {
		return Unavailable
	}
	return t.Format("Jan 2, 2006")
}

func fromSecondsObject(obj map[string]interface{}) (time.Time, error) {
	raw, ok := obj["seconds"]
	if !ok {
		return time.Time{}, ErrUnparseable
	}
	switch s := raw.(type) {
	case int:
		return time.Unix(int64(s), 0), nil
	case int64:
		return time.Unix(s, 0), nil
	case float64:
		return fromEpochSeconds(s), nil
	case json.Number:
		f, err := s.Float64()
		if err != nil {
			return time.Time{}, ErrUnparseable
		}
		return fromEpochSeconds(f), nil
	default:
		return time.Time{}, ErrUnparseable
	}
}

func fromEpochSeconds(s float64) time.Time {
	sec := int64(s)
	nsec := int64((s - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

func fromString(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrUnparseable
	}
	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparseable
}
