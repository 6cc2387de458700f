package apiclient_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/TerraSkye/api-client"
)

func TestInvalidAttributesError(t *testing.T) {
	t.Parallel()

	err := apiclient.NewInvalidAttributesError("User", 42)
	assert.Equal(t, `apiclient: invalid attributes for User: expected mapping, got int`, err.Error())
	assert.Equal(t, "User", err.TypeName())
	assert.Equal(t, 42, err.Value())

	assert.True(t, errors.Is(err, apiclient.ErrInvalidAttributes))
	assert.True(t, apiclient.IsInvalidAttributes(err))
	assert.False(t, apiclient.IsInvalidAttributes(nil))
	assert.False(t, apiclient.IsInvalidAttributes(errors.New("other")))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("Required", func(t *testing.T) {
		t.Parallel()

		err := apiclient.NewRequiredError("User", "name")
		assert.Equal(t, `apiclient: validation failed for User.name: required attribute is missing or empty`, err.Error())
		assert.Equal(t, "User", err.Type)
		assert.Equal(t, "name", err.Attr)
		assert.True(t, errors.Is(err, apiclient.ErrValidation))
		assert.True(t, apiclient.IsValidationError(err))
	})

	t.Run("Wrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("value is greater than the max length 10")
		err := apiclient.NewValidationError("Post", "title", cause)
		assert.Equal(t, `apiclient: validation failed for Post.title: value is greater than the max length 10`, err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
		assert.True(t, apiclient.IsValidationError(err))
	})

	t.Run("Nil", func(t *testing.T) {
		t.Parallel()
		assert.False(t, apiclient.IsValidationError(nil))
	})
}

func TestUnknownNameError(t *testing.T) {
	t.Parallel()

	err := apiclient.NewUnknownNameError("User", "shoe_size")
	assert.Equal(t, `apiclient: unknown attribute "shoe_size" on User`, err.Error())
	assert.Equal(t, "User", err.TypeName())
	assert.Equal(t, "shoe_size", err.Name())

	assert.True(t, errors.Is(err, apiclient.ErrUnknownName))
	assert.True(t, apiclient.IsUnknownName(err))
	assert.False(t, apiclient.IsUnknownName(errors.New("other")))
}

func TestUnresolvedError(t *testing.T) {
	t.Parallel()

	err := apiclient.NewUnresolvedError("/users/7")
	assert.Equal(t, `apiclient: cannot resolve link "/users/7": no resolver configured`, err.Error())
	assert.Equal(t, "/users/7", err.Href())

	assert.True(t, errors.Is(err, apiclient.ErrUnresolved))
	assert.True(t, apiclient.IsUnresolved(err))
	assert.False(t, apiclient.IsUnresolved(nil))
}

func TestSchemaError(t *testing.T) {
	t.Parallel()

	t.Run("Full", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		err := apiclient.NewSchemaError("User", "posts", "duplicate relation name", cause)
		assert.Equal(t, `apiclient: schema error on type User (posts): duplicate relation name: boom`, err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("TypeOnly", func(t *testing.T) {
		t.Parallel()

		err := apiclient.NewSchemaError("User", "", "type already registered", nil)
		assert.Equal(t, `apiclient: schema error on type User: type already registered`, err.Error())
		require.NoError(t, errors.Unwrap(err))
	})

	t.Run("Sentinel", func(t *testing.T) {
		t.Parallel()

		err := apiclient.NewSchemaError("User", "", "bad", nil)
		assert.True(t, errors.Is(err, apiclient.ErrInvalidSchema))
		assert.True(t, apiclient.IsSchemaError(err))
		assert.False(t, apiclient.IsSchemaError(nil))
	})
}
