package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

func TestValidateRequired(t *testing.T) {
	t.Parallel()

	m := newCatalog(t).MustLookup("User").New()

	err := m.Validate()
	require.Error(t, err)
	assert.True(t, apiclient.IsValidationError(err))
	assert.Contains(t, err.Error(), "name", "error names the attribute")
	assert.Contains(t, err.Error(), "User", "error names the owning type")

	// Whitespace-only strings count as missing.
	require.NoError(t, m.Set("name", "   \t"))
	require.Error(t, m.Validate())

	// A non-blank value clears the failure.
	require.NoError(t, m.Set("name", "Ada"))
	require.NoError(t, m.Validate())
}

func TestValidateRunsDeclaredValidators(t *testing.T) {
	t.Parallel()

	m := newCatalog(t).MustLookup("User").New()
	require.NoError(t, m.Set("name", "Ada"))

	require.NoError(t, m.Set("age", -1))
	err := m.Validate()
	require.Error(t, err)
	var verr *apiclient.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.Attr)
	assert.Equal(t, "User", verr.Type)

	require.NoError(t, m.Set("age", 30))
	require.NoError(t, m.Validate())
}

func TestValidateNested(t *testing.T) {
	t.Parallel()

	newTeamCatalog := func(t *testing.T) *apiclient.Catalog {
		t.Helper()
		c := apiclient.NewCatalog()
		require.NoError(t, c.Register(team{}, User{}, Post{}))
		return c
	}

	t.Run("OneRelation", func(t *testing.T) {
		t.Parallel()

		m := newTeamCatalog(t).MustLookup("team").New()
		require.NoError(t, m.Set("members", []any{map[string]any{"name": "Grace"}}))
		// The nested lead misses its own required name.
		require.NoError(t, m.Set("lead", map[string]any{"email": "b@example.com"}))

		err := m.Validate()
		require.Error(t, err)
		var verr *apiclient.ValidationError
		require.ErrorAs(t, err, &verr)
		// Nested failures propagate unchanged: the error names the
		// nested model, not the parent.
		assert.Equal(t, "User", verr.Type)
		assert.Equal(t, "name", verr.Attr)
	})

	t.Run("ManyRelation", func(t *testing.T) {
		t.Parallel()

		m := newTeamCatalog(t).MustLookup("team").New()
		require.NoError(t, m.Set("lead", map[string]any{"name": "Ada"}))
		require.NoError(t, m.Set("members", []any{
			map[string]any{"name": "Grace"},
			map[string]any{"email": "missing name"},
		}))

		err := m.Validate()
		require.Error(t, err)
		var verr *apiclient.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "User", verr.Type)
		assert.Equal(t, "name", verr.Attr)
	})
}

func TestValidateSkipsOptionalRelations(t *testing.T) {
	t.Parallel()

	t.Run("OneRelation", func(t *testing.T) {
		t.Parallel()

		m := newCatalog(t).MustLookup("User").New()
		require.NoError(t, m.Set("name", "Ada"))
		// The optional manager is incomplete by its own rules; the
		// parent stays valid because only required relations are
		// walked into.
		require.NoError(t, m.Set("manager", map[string]any{"email": "b@example.com"}))

		require.NoError(t, m.Validate())
	})

	t.Run("ManyRelation", func(t *testing.T) {
		t.Parallel()

		m := newCatalog(t).MustLookup("User").New()
		require.NoError(t, m.Set("name", "Ada"))
		require.NoError(t, m.Set("posts", []any{
			map[string]any{"title": "ok"},
			map[string]any{"content": "missing title"},
		}))

		require.NoError(t, m.Validate())
	})
}

type team struct{ apiclient.Schema }

func (team) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{attr.String("name")}
}

func (team) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToOne("lead", User.Type).Required(),
		rel.ToMany("members", User.Type).Required(),
	}
}

func TestValidateRequiredRelations(t *testing.T) {
	t.Parallel()

	c := apiclient.NewCatalog()
	require.NoError(t, c.Register(team{}, User{}, Post{}))

	m := c.MustLookup("team").New()
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead")

	require.NoError(t, m.Set("lead", map[string]any{"name": "Ada"}))
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "members", "empty list fails a required many relation")

	require.NoError(t, m.Set("members", []any{map[string]any{"name": "Grace"}}))
	require.NoError(t, m.Validate())
}
