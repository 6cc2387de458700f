package apiclient_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apiclient "github.com/TerraSkye/api-client"
)

func TestAsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", apiclient.AsString("x"))
	assert.Empty(t, apiclient.AsString(42))
	assert.Empty(t, apiclient.AsString(nil))
}

func TestAsInt(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 7, apiclient.AsInt(7))
	assert.EqualValues(t, 7, apiclient.AsInt(int64(7)))
	assert.EqualValues(t, 7, apiclient.AsInt(float64(7)), "JSON numbers decode as float64")
	assert.Zero(t, apiclient.AsInt("7"))
}

func TestAsFloat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.5, apiclient.AsFloat(1.5))
	assert.Equal(t, 3.0, apiclient.AsFloat(3))
	assert.Zero(t, apiclient.AsFloat(nil))
}

func TestAsBool(t *testing.T) {
	t.Parallel()

	assert.True(t, apiclient.AsBool(true))
	assert.False(t, apiclient.AsBool("true"))
}

func TestAsTime(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	assert.Equal(t, now, apiclient.AsTime(now))
	assert.Equal(t, now, apiclient.AsTime(now.Format(time.RFC3339)))
	assert.True(t, apiclient.AsTime("not a time").IsZero())
	assert.True(t, apiclient.AsTime(nil).IsZero())
}

func TestAsUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	assert.Equal(t, id, apiclient.AsUUID(id))
	assert.Equal(t, id, apiclient.AsUUID(id.String()))
	assert.Equal(t, uuid.Nil, apiclient.AsUUID("nope"))
}

func TestAsBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("raw"), apiclient.AsBytes([]byte("raw")))
	assert.Equal(t, []byte("raw"), apiclient.AsBytes(base64.StdEncoding.EncodeToString([]byte("raw"))))
	assert.Nil(t, apiclient.AsBytes("!!not base64!!"))
	assert.Nil(t, apiclient.AsBytes(7))
}
