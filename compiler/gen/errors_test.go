package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewSchemaError("User", "name", "declared twice", cause)
	assert.Equal(t, "gen: schema error on type User attribute name: declared twice: boom", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidSchema))
	assert.Equal(t, cause, errors.Unwrap(err))

	minimal := NewSchemaError("", "", "bad snapshot", nil)
	assert.Equal(t, "gen: schema error: bad snapshot", minimal.Error())
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("Target", nil, "target directory cannot be empty")
	assert.Equal(t, `gen: config error for "Target": target directory cannot be empty`, err.Error())
	assert.True(t, errors.Is(err, ErrMissingConfig))

	withValue := NewConfigError("Workers", -1, "worker count cannot be negative")
	assert.Contains(t, withValue.Error(), "(value: -1)")
}

func TestRelationError(t *testing.T) {
	t.Parallel()

	err := NewRelationError("Post", "Author", "author", "target type is not part of the generation run")
	assert.Equal(t, "gen: relation error on relation author (Post -> Author): target type is not part of the generation run", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidRelation))
}

func TestGenerationError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := NewGenerationError("user.go", "writing output", cause)
	assert.Equal(t, "gen: generation error (file: user.go): writing output: disk full", err.Error())
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	require.Equal(t, cause, errors.Unwrap(err))
}
