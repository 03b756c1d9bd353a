package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrordg/api-restaurantes/internal/model"
)

func TestNewAccessToken(t *testing.T) {
	u := model.User{ID: 42, Nome: "Leandro", Email: "leandro@example.com", Role: model.RoleAdministrador}

	access, err := NewAccessToken("segredo", u, 60)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)

	tok, err := jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("segredo"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "Leandro", claims["nome"])
	assert.Equal(t, "leandro@example.com", claims["email"])
	assert.Equal(t, model.RoleAdministrador, claims["role"])

	// expiry is one hour out, within test slack
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	assert.WithinDuration(t, access.Exp, exp, time.Second)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	access, err := NewAccessToken("segredo", model.User{ID: 1}, 60)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("outro"), nil
	})
	assert.Error(t, err)
}
