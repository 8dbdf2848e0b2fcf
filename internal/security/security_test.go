package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$")

	ok, err := VerifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("same input")
	require.NoError(t, err)
	b, err := HashPassword("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not a hash",
		"$bcrypt$v=19$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=19$t=3,m=65536,p=2$c2FsdA==",
	} {
		_, err := VerifyPassword("anything", encoded)
		assert.ErrorIs(t, err, ErrMalformedHash, "hash %q", encoded)
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAdminToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAdminTokenWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "another-secret")
	assert.Error(t, err)
}

func TestAdminTokenExpired(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "test-secret")
	assert.Error(t, err)
}
