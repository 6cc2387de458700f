package apiclient

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Body produces the plain, JSON-serializable mapping representation of
// the instance: list slots become []any of recursively serialized
// elements in container order, nested models and links serialize
// recursively, scalars pass through the wire normalizer. Nil slots are
// omitted. The result is the canonical JSON form and the request
// payload.
func (m *Model) Body() map[string]any {
	body := make(map[string]any, len(m.values))
	for _, a := range m.typ.attrs {
		if v := m.values[a.Name]; v != nil {
			body[a.Name] = bodyValue(v)
		}
	}
	for _, r := range m.typ.rels {
		if v := m.values[r.Name]; v != nil {
			body[r.Name] = bodyValue(v)
		}
	}
	return body
}

// ToArray is an alias for Body; both return identical structures for
// the same instance state.
func (m *Model) ToArray() map[string]any {
	return m.Body()
}

// MarshalJSON implements json.Marshaler in terms of Body.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Body())
}

// Body serializes the link: unresolved links carry their href,
// resolved links serialize the resolved value.
func (l *Link) Body() any {
	if !l.resolved {
		return map[string]any{"href": l.Href}
	}
	return bodyValue(l.value)
}

// bodyValue normalizes a slot value to its plain wire form.
func bodyValue(v any) any {
	switch v := v.(type) {
	case *Model:
		return v.Body()
	case *List:
		items := make([]any, v.Len())
		for i, item := range v.Values() {
			items[i] = bodyValue(item)
		}
		return items
	case *Link:
		return v.Body()
	case time.Time:
		return v.Format(time.RFC3339)
	case uuid.UUID:
		return v.String()
	case []byte:
		return base64.StdEncoding.EncodeToString(v)
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return string(v)
		}
		return decoded
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = bodyValue(item)
		}
		return items
	case map[string]any:
		mapped := make(map[string]any, len(v))
		for k, item := range v {
			mapped[k] = bodyValue(item)
		}
		return mapped
	default:
		return v
	}
}
