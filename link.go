package apiclient

import "context"

// Link is a deferred reference to a remote resource. It is an explicit
// two-state value: unresolved, holding only the target href, or
// resolved, holding the fetched *Model or *List. Resolve performs the
// state transition; the model read path caches the resolved value back
// into the attribute slot, so a second read never re-fetches.
type Link struct {
	// Href is the target of the link.
	Href string
	// Target optionally names the model type the link points at. When
	// empty, the resolver derives the type from the href path.
	Target string

	resolved bool
	value    any
}

// NewLink returns an unresolved link to the given href.
func NewLink(href string) *Link {
	return &Link{Href: href}
}

// NewTypedLink returns an unresolved link whose target type is known
// at construction.
func NewTypedLink(href, target string) *Link {
	return &Link{Href: href, Target: target}
}

// Resolved reports whether the link has been resolved.
func (l *Link) Resolved() bool {
	return l.resolved
}

// Value returns the resolved value, or nil for an unresolved link.
func (l *Link) Value() any {
	return l.value
}

// Resolve transitions the link to the resolved state, fetching the
// target through r on first call. Subsequent calls return the resolved
// value without consulting the resolver. A nil resolver on first call
// fails with *UnresolvedError.
func (l *Link) Resolve(ctx context.Context, r Resolver) (any, error) {
	if l.resolved {
		return l.value, nil
	}
	if r == nil {
		return nil, NewUnresolvedError(l.Href)
	}
	v, err := r.Resolve(ctx, l)
	if err != nil {
		return nil, err
	}
	l.value = v
	l.resolved = true
	return v, nil
}
