package load_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/compiler/load"
	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/mixin"
	"github.com/TerraSkye/api-client/schema/rel"
)

type (
	User struct{ apiclient.Schema }
	Post struct{ apiclient.Schema }
)

func (User) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.String("name").Required().MaxLen(100).Comment("display name"),
		attr.String("password").Sensitive(),
	}
}

func (User) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToMany("posts", Post.Type),
		rel.ToOne("manager", User.Type).Required(),
	}
}

func (User) Aliases() map[string]string {
	return map[string]string{"full_name": "name"}
}

func (User) Mixin() []apiclient.Mixin {
	return []apiclient.Mixin{mixin.Time{}}
}

func TestMarshalSchema(t *testing.T) {
	t.Parallel()

	buf, err := load.MarshalSchema(User{})
	require.NoError(t, err)

	s, err := load.UnmarshalSchema(buf)
	require.NoError(t, err)
	assert.Equal(t, "User", s.Name)
	assert.Equal(t, map[string]string{"full_name": "name"}, s.Aliases)

	// Mixed-in attributes precede the schema's own, in mixin order.
	require.Len(t, s.Attrs, 4)
	assert.Equal(t, "created_at", s.Attrs[0].Name)
	assert.True(t, s.Attrs[0].Position.MixedIn)
	assert.Equal(t, "updated_at", s.Attrs[1].Name)
	assert.Equal(t, "name", s.Attrs[2].Name)
	assert.False(t, s.Attrs[2].Position.MixedIn)
	assert.Equal(t, 0, s.Attrs[2].Position.Index)

	name := s.Attrs[2]
	assert.Equal(t, attr.TypeString, name.Type)
	assert.Contains(t, name.Rules, attr.RuleRequired)
	assert.Equal(t, 1, name.Validators, "MaxLen compiles to one validator")
	assert.Equal(t, "display name", name.Comment)

	assert.True(t, s.Attrs[3].Sensitive)

	require.Len(t, s.Rels, 2)
	assert.Equal(t, "posts", s.Rels[0].Name)
	assert.Equal(t, "Post", s.Rels[0].Type)
	assert.Equal(t, rel.Many, s.Rels[0].Cardinality)
	assert.Equal(t, rel.One, s.Rels[1].Cardinality)
	assert.True(t, s.Rels[1].Required)
}

type broken struct{ apiclient.Schema }

func (broken) Attributes() []apiclient.Attribute {
	panic("boom")
}

func TestMarshalSchemaPanics(t *testing.T) {
	t.Parallel()

	_, err := load.MarshalSchema(broken{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panics")
}

// brokenAttr carries a descriptor with a recorded builder error.
type brokenAttr struct{}

func (brokenAttr) Descriptor() *attr.Descriptor {
	return &attr.Descriptor{
		Name: "name",
		Type: attr.TypeString,
		Err:  errors.New("bad declaration"),
	}
}

type badAttr struct{ apiclient.Schema }

func (badAttr) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{brokenAttr{}}
}

func TestMarshalSchemaBuilderError(t *testing.T) {
	t.Parallel()

	_, err := load.MarshalSchema(badAttr{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
}

type badRel struct{ apiclient.Schema }

func (badRel) Relations() []apiclient.Relation {
	return []apiclient.Relation{
		rel.ToOne("owner", ""),
	}
}

func TestMarshalSchemaRelationError(t *testing.T) {
	t.Parallel()

	_, err := load.MarshalSchema(badRel{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"owner"`)
}

type panickingMixin struct{ apiclient.Schema }

func (panickingMixin) Mixin() []apiclient.Mixin {
	panic("mixin boom")
}

func TestMarshalSchemaMixinPanics(t *testing.T) {
	t.Parallel()

	_, err := load.MarshalSchema(panickingMixin{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mixin panics")
}

func TestUnmarshalSchemaInvalid(t *testing.T) {
	t.Parallel()

	_, err := load.UnmarshalSchema([]byte(`{"name":`))
	assert.Error(t, err)
}
