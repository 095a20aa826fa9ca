package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesOriginal(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotEqual(t, "correct horse battery staple", digest)

	assert.True(t, CheckPassword(digest, "correct horse battery staple"))
}

func TestCheckPassword_RejectsOtherPlaintext(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("password-one")
	require.NoError(t, err)

	assert.False(t, CheckPassword(digest, "password-two"))
	assert.False(t, CheckPassword(digest, ""))
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "password-one"))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-plaintext")
	require.NoError(t, err)
	second, err := HashPassword("same-plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "same-plaintext"))
	assert.True(t, CheckPassword(second, "same-plaintext"))
}
