package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, b.ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, b.ComparePassword(hash, "wrong-pass"))
}

func TestNewFallsBackToDefaultCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	assert.Equal(t, bcrypt.DefaultCost, New().(*bcryptService).cost)

	t.Setenv("BCRYPT_COST", "5")
	assert.Equal(t, 5, New().(*bcryptService).cost)
}
