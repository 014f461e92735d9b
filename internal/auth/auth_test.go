package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := MakeAccessToken("user-1", "secret")
	require.NoError(t, err)

	claims, err := ParseAccessToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := MakeAccessToken("user-1", "secret")
	require.NoError(t, err)

	_, err = ParseAccessToken(tok, "other")
	assert.Error(t, err)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("not.a.jwt", "secret")
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, hash, HashRefreshToken(raw))

	raw2, _, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}
