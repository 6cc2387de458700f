package rest

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	apiclient "github.com/TerraSkye/api-client"
)

// DefaultBatchWorkers bounds concurrent fetches in ResolveAll.
const DefaultBatchWorkers = 4

// BatchResolver resolves many links at once, fetching each distinct
// href exactly once and fanning the results back in input order.
// Useful when a page of models all link to the same handful of
// resources.
type BatchResolver struct {
	resolver apiclient.Resolver
	workers  int
}

// A BatchOption configures a BatchResolver.
type BatchOption func(*BatchResolver)

// WithWorkers caps the number of concurrent fetches.
func WithWorkers(n int) BatchOption {
	return func(b *BatchResolver) { b.workers = n }
}

// NewBatchResolver returns a batch resolver fetching through r.
func NewBatchResolver(r apiclient.Resolver, opts ...BatchOption) *BatchResolver {
	b := &BatchResolver{resolver: r, workers: DefaultBatchWorkers}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ResolveAll resolves every link, deduplicating by href. The returned
// slices are aligned with the input: result[i] and errs[i] belong to
// links[i], and duplicate hrefs share one fetch result.
func (b *BatchResolver) ResolveAll(ctx context.Context, links []*apiclient.Link) ([]any, []error) {
	results := make([]any, len(links))
	errs := make([]error, len(links))

	// One fetch per distinct href, keyed for the fan-in below.
	type fetched struct {
		value any
		err   error
	}
	distinct := make(map[string]*apiclient.Link, len(links))
	for _, l := range links {
		if l == nil {
			continue
		}
		if _, ok := distinct[l.Href]; !ok {
			distinct[l.Href] = l
		}
	}

	var mu sync.Mutex
	byHref := make(map[string]fetched, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for href, link := range distinct {
		g.Go(func() error {
			v, err := link.Resolve(gctx, b.resolver)
			mu.Lock()
			byHref[href] = fetched{value: v, err: err}
			mu.Unlock()
			return nil
		})
	}
	// Goroutines record their own errors, so Wait only synchronizes.
	_ = g.Wait()

	for i, l := range links {
		if l == nil {
			errs[i] = apiclient.NewUnresolvedError("")
			continue
		}
		f := byHref[l.Href]
		results[i] = f.value
		errs[i] = f.err
	}
	return results, errs
}
