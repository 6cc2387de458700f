package apiclient

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Coercion helpers for reading attribute values populated from the
// wire, where JSON decoding widens numbers to float64 and renders
// times, uuids, and bytes as strings. Generated typed getters are
// built on these; a value that cannot be coerced yields the zero
// value.

// AsString returns v as a string.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsInt returns v as an int64, accepting the integer widths Set
// receives and the float64 JSON numbers decode to.
func AsInt(v any) int64 {
	switch v := v.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// AsFloat returns v as a float64.
func AsFloat(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// AsBool returns v as a bool.
func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// AsTime returns v as a time.Time, parsing RFC 3339 strings.
func AsTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AsUUID returns v as a uuid.UUID, parsing its string form.
func AsUUID(v any) uuid.UUID {
	switch v := v.(type) {
	case uuid.UUID:
		return v
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// AsBytes returns v as a byte slice, decoding the base64 form JSON
// carries binary data in.
func AsBytes(v any) []byte {
	switch v := v.(type) {
	case []byte:
		return v
	case string:
		if b, err := base64.StdEncoding.DecodeString(v); err == nil {
			return b
		}
	}
	return nil
}
