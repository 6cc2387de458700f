package rest

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Envelope wraps a raw JSON response body. Servers answer either with
// the bare resource or with a {"data": ...} wrapper; the extract
// methods accept both. The body is decoded once on first read and the
// result shared by all extract methods.
type Envelope struct {
	raw json.RawMessage

	once    sync.Once
	decoded any
	err     error
}

// NewEnvelope wraps a response body.
func NewEnvelope(raw []byte) *Envelope {
	return &Envelope{raw: raw}
}

// Raw returns the undecoded response body.
func (e *Envelope) Raw() json.RawMessage {
	return e.raw
}

// ExtractBody returns the resource mapping from the response,
// unwrapping a {"data": ...} envelope when present. It implements
// apiclient.BodyExtractor, so an Envelope can be passed straight to
// Model.SetAttributes.
func (e *Envelope) ExtractBody() (map[string]any, error) {
	v, err := e.decode()
	if err != nil {
		return nil, err
	}
	body, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rest: response body is not an object, got %T", v)
	}
	return unwrap(body), nil
}

// ExtractList returns the collection of resource mappings from the
// response, unwrapping a {"data": [...]} envelope when present.
func (e *Envelope) ExtractList() ([]map[string]any, error) {
	v, err := e.decode()
	if err != nil {
		return nil, err
	}
	if body, ok := v.(map[string]any); ok {
		if data, ok := body["data"]; ok {
			v = data
		}
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("rest: response body is not an array, got %T", v)
	}
	list := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rest: response element %d is not an object, got %T", i, item)
		}
		list = append(list, m)
	}
	return list, nil
}

// IsList reports whether the response carries a collection rather
// than a single resource.
func (e *Envelope) IsList() bool {
	v, err := e.decode()
	if err != nil {
		return false
	}
	if body, ok := v.(map[string]any); ok {
		if data, ok := body["data"]; ok {
			v = data
		}
	}
	_, ok := v.([]any)
	return ok
}

func (e *Envelope) decode() (any, error) {
	e.once.Do(func() {
		if err := json.Unmarshal(e.raw, &e.decoded); err != nil {
			e.err = fmt.Errorf("rest: decoding response body: %w", err)
		}
	})
	return e.decoded, e.err
}

// unwrap peels a {"data": {...}} envelope, ignoring sibling keys such
// as "meta". A data key holding anything but an object is treated as a
// regular attribute.
func unwrap(body map[string]any) map[string]any {
	if data, ok := body["data"].(map[string]any); ok {
		return data
	}
	return body
}
