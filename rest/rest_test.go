package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/rest"
	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

// Test schemas shared across the package tests.
type (
	User struct{ apiclient.Schema }
	Post struct{ apiclient.Schema }
)

func (User) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.Int("id"),
		attr.String("name").Required(),
		attr.String("email"),
	}
}

func (User) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToMany("posts", Post.Type),
	}
}

func (Post) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.Int("id"),
		attr.String("title").Required(),
	}
}

func (Post) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToOne("author", User.Type),
	}
}

func newCatalog(t *testing.T) *apiclient.Catalog {
	t.Helper()
	catalog := apiclient.NewCatalog()
	require.NoError(t, catalog.Register(User{}, Post{}))
	return catalog
}

// newClient wires a client against an httptest server and cleans both
// up with the test.
func newClient(t *testing.T, handler http.Handler) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := rest.NewClient(&rest.Config{
		BaseURL: srv.URL,
		Token:   "test-token",
	}, newCatalog(t))
	require.NoError(t, err)
	return client
}
