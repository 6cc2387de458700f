package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/internal/naming"
)

// DefaultCacheTTL bounds how long resolved link bodies stay cached.
const DefaultCacheTTL = 5 * time.Minute

// Resolver fetches link targets over the client and builds models
// from the response. It implements apiclient.Resolver, so a model
// handed a Resolver materializes its links transparently on read.
//
// With a cache configured, response bodies are stored msgpack-encoded
// under their href, and repeat resolutions of the same href across
// model instances skip the network round trip.
type Resolver struct {
	client *Client
	cache  apiclient.Cache
	ttl    time.Duration
}

// A ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache enables response caching for resolved links.
func WithCache(cache apiclient.Cache) ResolverOption {
	return func(r *Resolver) { r.cache = cache }
}

// WithCacheTTL sets the lifetime of cached link bodies.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) { r.ttl = ttl }
}

// NewResolver returns a resolver fetching through client.
func NewResolver(client *Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{client: client, ttl: DefaultCacheTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ apiclient.Resolver = (*Resolver)(nil)

// Resolve fetches the link target and returns a *apiclient.Model for
// object responses or a *apiclient.List for array responses.
func (r *Resolver) Resolve(ctx context.Context, l *apiclient.Link) (any, error) {
	target := l.Target
	if target == "" {
		var err error
		if target, err = targetFromHref(l.Href); err != nil {
			return nil, err
		}
	}
	typ, ok := r.client.catalog.Lookup(target)
	if !ok {
		return nil, apiclient.NewSchemaError(target, "", "type is not registered", nil)
	}

	key := apiclient.CacheKey{Resource: naming.Resource(target), Href: l.Href}.String()
	if body, ok := r.cached(ctx, key); ok {
		return r.build(typ, body)
	}

	env, err := r.client.Get(ctx, l.Href)
	if err != nil {
		return nil, err
	}
	var body any
	if env.IsList() {
		items, err := env.ExtractList()
		if err != nil {
			return nil, err
		}
		body = items
	} else {
		item, err := env.ExtractBody()
		if err != nil {
			return nil, err
		}
		body = item
	}
	r.store(ctx, key, body)
	return r.build(typ, body)
}

// build materializes the decoded body as a model or list of models,
// wiring this resolver in so nested links resolve too.
func (r *Resolver) build(typ *apiclient.Type, body any) (any, error) {
	switch body := body.(type) {
	case map[string]any:
		m := typ.New().WithResolver(r)
		if err := m.SetAttributes(body); err != nil {
			return nil, err
		}
		return m, nil
	case []map[string]any:
		list := apiclient.NewList()
		for _, item := range body {
			m := typ.New().WithResolver(r)
			if err := m.SetAttributes(item); err != nil {
				return nil, err
			}
			list.Append(m)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("rest: unexpected link body type %T", body)
	}
}

func (r *Resolver) cached(ctx context.Context, key string) (any, bool) {
	if r.cache == nil {
		return nil, false
	}
	buf, err := r.cache.Get(ctx, key)
	if err != nil || buf == nil {
		return nil, false
	}
	var body cachedBody
	if err := msgpack.Unmarshal(buf, &body); err != nil {
		return nil, false
	}
	if body.List != nil {
		return body.List, true
	}
	return body.Item, true
}

func (r *Resolver) store(ctx context.Context, key string, body any) {
	if r.cache == nil {
		return
	}
	var cached cachedBody
	switch body := body.(type) {
	case map[string]any:
		cached.Item = body
	case []map[string]any:
		cached.List = body
	default:
		return
	}
	buf, err := msgpack.Marshal(&cached)
	if err != nil {
		return
	}
	// Cache failures only cost the next resolution a round trip.
	_ = r.cache.Set(ctx, key, buf, r.ttl)
}

// cachedBody is the msgpack envelope for cached link bodies. Exactly
// one of the fields is set, preserving the object/array distinction
// across the cache round trip.
type cachedBody struct {
	Item map[string]any   `msgpack:"item,omitempty"`
	List []map[string]any `msgpack:"list,omitempty"`
}

// targetFromHref derives the model type from the href path: the last
// collection segment names the resource, so "/users/7" and "/users"
// both resolve to type "User".
func targetFromHref(href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("rest: parsing link href %q: %w", href, err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := segments[i]; seg != "" && !isIdentifier(seg) {
			return naming.TypeName(seg), nil
		}
	}
	return "", fmt.Errorf("rest: cannot derive target type from href %q", href)
}

// isIdentifier reports whether a path segment looks like a resource
// id rather than a collection name.
func isIdentifier(seg string) bool {
	if _, err := uuid.Parse(seg); err == nil {
		return true
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
