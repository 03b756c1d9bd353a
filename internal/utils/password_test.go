package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("senha-secreta", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "senha-secreta", hash)

	assert.True(t, VerifyPassword(hash, "senha-secreta"))
	assert.False(t, VerifyPassword(hash, "senha-errada"))
	assert.False(t, VerifyPassword("", "senha-secreta"))
}
