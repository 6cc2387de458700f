package apiclient

// List is the ordered, resettable container backing "many" relation
// slots. A many relation always holds a List, never nil; writing to the
// relation resets the list before repopulating it.
type List struct {
	items []any
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Append adds values to the end of the list.
func (l *List) Append(v ...any) {
	l.items = append(l.items, v...)
}

// Reset removes all values from the list, keeping the container itself.
func (l *List) Reset() {
	l.items = l.items[:0]
}

// Len returns the number of values in the list.
func (l *List) Len() int {
	return len(l.items)
}

// Get returns the value at position i, or nil when out of range.
func (l *List) Get(i int) any {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Values returns the values in container order. The returned slice is
// the list's own backing storage.
func (l *List) Values() []any {
	return l.items
}

// Models returns the contained values that are model instances, in
// container order.
func (l *List) Models() []*Model {
	ms := make([]*Model, 0, len(l.items))
	for _, v := range l.items {
		if m, ok := v.(*Model); ok {
			ms = append(ms, m)
		}
	}
	return ms
}
