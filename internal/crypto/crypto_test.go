package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("not-a-hash", "hunter22"))
}

func TestResetTokens(t *testing.T) {
	_, err := NewResetTokens(nil)
	require.Error(t, err)

	rt, err := NewResetTokens([]byte("key"))
	require.NoError(t, err)

	token, digest, err := rt.Generate()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, digest, rt.Digest(token))
	assert.NotEqual(t, token, digest)

	other, _, err := rt.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	rt2, _ := NewResetTokens([]byte("different"))
	assert.NotEqual(t, digest, rt2.Digest(token))
}
