package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
)

func TestList(t *testing.T) {
	t.Parallel()

	l := apiclient.NewList()
	assert.Zero(t, l.Len())
	assert.Nil(t, l.Get(0))

	l.Append("a", "b")
	l.Append("c")
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "a", l.Get(0))
	assert.Equal(t, "c", l.Get(2))
	assert.Nil(t, l.Get(3))
	assert.Nil(t, l.Get(-1))
	assert.Equal(t, []any{"a", "b", "c"}, l.Values())

	l.Reset()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Values())
}

func TestListModels(t *testing.T) {
	t.Parallel()

	post := newCatalog(t).MustLookup("Post").New()

	l := apiclient.NewList()
	l.Append(post, "not a model", post)

	ms := l.Models()
	require.Len(t, ms, 2)
	assert.Same(t, post, ms[0])
}
