package envnode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMem(t *testing.T) {
	ctx := context.Background()
	m := &Mem{}
	b, err := m.Read(ctx, "key")
	assert.NoError(t, err)
	assert.Nil(t, b)
	_, ok := m.Lookup("key")
	assert.False(t, ok)

	require.NoError(t, m.Set("key", ""))
	v, ok := m.Lookup("key")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	require.NoError(t, m.Set("key", "val"))
	b, err = m.Read(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("val"), b)
}
