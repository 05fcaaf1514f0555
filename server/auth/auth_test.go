package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	expiration := time.Now().Add(time.Hour)

	token, err := GenerateAccessToken(42, "jdoe", "TEACHER", expiration, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, userID, err := VerifyAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int32(42), userID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "TEACHER", claims.Role)
}

func TestVerifyAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "ADMIN", time.Now().Add(time.Hour), []byte("right"))
	require.NoError(t, err)

	_, _, err = VerifyAccessToken(token, []byte("wrong"))
	require.Error(t, err)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "ADMIN", time.Now().Add(-time.Minute), []byte("secret"))
	require.NoError(t, err)

	_, _, err = VerifyAccessToken(token, []byte("secret"))
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("opensesame")
	require.NoError(t, err)
	assert.True(t, CheckPassword("opensesame", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
