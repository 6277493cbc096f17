package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", "user-1", "Ana Recaudo", RoleStaff, "acueducto-api", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Ana Recaudo", claims.Name)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.Equal(t, "acueducto-api", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secret", "user-1", "", RoleAdmin, "acueducto-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secret", "user-1", "", RoleAdmin, "acueducto-api", -1)
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "user-1", "", RoleAdmin, "x", 5)
	assert.Error(t, err)
	_, err = Parse("", "token")
	assert.Error(t, err)
}
