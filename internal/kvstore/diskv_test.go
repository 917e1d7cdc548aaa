package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskv_RoundTrip(t *testing.T) {
	s, err := NewDiskv(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get("outbox")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("outbox", `[{"queueId":"1"}]`))

	got, ok, err := s.Get("outbox")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"queueId":"1"}]`, got)

	require.NoError(t, s.Delete("outbox"))
	_, ok, err = s.Get("outbox")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskv_DeleteAbsentKey(t *testing.T) {
	s, err := NewDiskv(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Delete("missing"))
}

func TestDiskv_EmptyBasePath(t *testing.T) {
	_, err := NewDiskv("")
	assert.Error(t, err)
}
