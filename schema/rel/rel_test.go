package rel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/schema/rel"
)

// Test schema types for relation declarations.
type (
	User struct{ apiclient.Schema }
	Post struct{ apiclient.Schema }
)

func TestToOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *rel.Descriptor
		validate func(t *testing.T, d *rel.Descriptor)
	}{
		{
			name: "method_expression_target",
			build: func() *rel.Descriptor {
				return rel.ToOne("author", User.Type).Descriptor()
			},
			validate: func(t *testing.T, d *rel.Descriptor) {
				assert.Equal(t, "author", d.Name)
				assert.Equal(t, "User", d.Type)
				assert.Equal(t, rel.One, d.Cardinality)
				assert.False(t, d.Required)
				require.NoError(t, d.Err)
			},
		},
		{
			name: "schema_value_target",
			build: func() *rel.Descriptor {
				return rel.ToOne("author", User{}).Descriptor()
			},
			validate: func(t *testing.T, d *rel.Descriptor) {
				assert.Equal(t, "User", d.Type)
				require.NoError(t, d.Err)
			},
		},
		{
			name: "string_target",
			build: func() *rel.Descriptor {
				return rel.ToOne("author", "User").Descriptor()
			},
			validate: func(t *testing.T, d *rel.Descriptor) {
				assert.Equal(t, "User", d.Type)
				require.NoError(t, d.Err)
			},
		},
		{
			name: "required",
			build: func() *rel.Descriptor {
				return rel.ToOne("author", User.Type).Required().Descriptor()
			},
			validate: func(t *testing.T, d *rel.Descriptor) {
				assert.True(t, d.Required)
			},
		},
		{
			name: "comment",
			build: func() *rel.Descriptor {
				return rel.ToOne("author", User.Type).Comment("the post author").Descriptor()
			},
			validate: func(t *testing.T, d *rel.Descriptor) {
				assert.Equal(t, "the post author", d.Comment)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.validate(t, tt.build())
		})
	}
}

func TestToMany(t *testing.T) {
	t.Parallel()

	d := rel.ToMany("posts", Post.Type).Descriptor()
	assert.Equal(t, "posts", d.Name)
	assert.Equal(t, "Post", d.Type)
	assert.Equal(t, rel.Many, d.Cardinality)
	require.NoError(t, d.Err)

	d = rel.ToMany("posts", &Post{}).Descriptor()
	assert.Equal(t, "Post", d.Type, "pointer targets are unwrapped")
	require.NoError(t, d.Err)
}

func TestTargetErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target any
	}{
		{"nil", nil},
		{"empty_string", ""},
		{"no_args_func", func() {}},
		{"unnamed", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := rel.ToOne("owner", tt.target).Descriptor()
			assert.Error(t, d.Err)
		})
	}
}

func TestCardinalityValid(t *testing.T) {
	t.Parallel()

	assert.True(t, rel.One.Valid())
	assert.True(t, rel.Many.Valid())
	assert.False(t, rel.Cardinality("").Valid())
	assert.False(t, rel.Cardinality("both").Valid())
}
