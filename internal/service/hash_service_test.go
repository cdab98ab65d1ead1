package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashService_HashAndVerify(t *testing.T) {
	svc := NewBcryptHashService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	ok, err := svc.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHashService_Verify_WrongPassword(t *testing.T) {
	svc := NewBcryptHashService()

	hash, err := svc.Hash("right password")
	require.NoError(t, err)

	ok, err := svc.Verify("wrong password", hash)
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestBcryptHashService_Verify_MalformedHash(t *testing.T) {
	svc := NewBcryptHashService()

	_, err := svc.Verify("password", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestBcryptHashService_UnequalHashes(t *testing.T) {
	svc := NewBcryptHashService()

	first, err := svc.Hash("same password")
	require.NoError(t, err)
	second, err := svc.Hash("same password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "salting must produce distinct hashes")
}
