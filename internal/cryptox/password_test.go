package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword([]byte("Abc123!@"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))

	ok, err := VerifyPassword(hash, []byte("Abc123!@"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, []byte("Abc123!#"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPassword([]byte("Abc123!@"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("Abc123!@"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword(nil)
	assert.Error(t, err)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, enc := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$***$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	} {
		ok, err := VerifyPassword(enc, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidHash, enc)
		assert.False(t, ok)
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := DeriveKey([]byte("pw"), []byte("fixed-salt"), 1, 8*1024, 1, 32)
	k2 := DeriveKey([]byte("pw"), []byte("fixed-salt"), 1, 8*1024, 1, 32)
	k3 := DeriveKey([]byte("pw"), []byte("other-salt"), 1, 8*1024, 1, 32)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, 32)
}
