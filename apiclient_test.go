package apiclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

// Test schemas shared by the package tests.
type (
	User struct{ apiclient.Schema }
	Post struct{ apiclient.Schema }
)

func (User) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.String("name").
			Required().
			MaxLen(100),
		attr.String("email"),
		attr.Int("age").
			Positive(),
		attr.Time("created_at"),
	}
}

func (User) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToMany("posts", Post.Type),
		rel.ToOne("manager", User.Type),
	}
}

func (User) Aliases() map[string]string {
	return map[string]string{"full_name": "name"}
}

func (Post) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.String("title").
			Required(),
		attr.String("content"),
	}
}

func (Post) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToOne("author", User.Type),
	}
}

// newCatalog registers the test schemas and fails the test on any
// declaration error.
func newCatalog(t *testing.T) *apiclient.Catalog {
	t.Helper()
	c := apiclient.NewCatalog()
	require.NoError(t, c.Register(User{}, Post{}))
	return c
}

// TestSchemaDefaultMethods tests the default implementations of Schema methods.
func TestSchemaDefaultMethods(t *testing.T) {
	t.Parallel()

	type TestSchema struct {
		apiclient.Schema
	}

	s := TestSchema{}

	// All default implementations should return nil values
	assert.Nil(t, s.Attributes())
	assert.Nil(t, s.Relations())
	assert.Nil(t, s.Aliases())
	assert.Nil(t, s.Mixin())
}

// TestResolverFunc tests the ResolverFunc adapter.
func TestResolverFunc(t *testing.T) {
	t.Parallel()

	called := false
	f := apiclient.ResolverFunc(func(_ context.Context, l *apiclient.Link) (any, error) {
		called = true
		assert.Equal(t, "/users/1", l.Href)
		return "resolved", nil
	})

	v, err := f.Resolve(context.Background(), apiclient.NewLink("/users/1"))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "resolved", v)
}
