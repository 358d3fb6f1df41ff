package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})

	token, err := tm.Generate(42, "alice", "editor", "127.0.0.1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "editor", claims.Role)
	assert.Equal(t, DefaultTokenIssuer, claims.Issuer)
}

func TestTokenManager_ParseWithWrongKey(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "key-one"})

	token, err := tm.Generate(1, "bob", "viewer", "")
	assert.NoError(t, err)

	other := NewTokenManager(TokenConfig{SecretKey: "key-two"})
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_Validate(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "test-secret"})

	token, err := tm.Generate(7, "carol", "admin", "")
	assert.NoError(t, err)
	assert.NoError(t, tm.Validate(token))
	assert.Error(t, tm.Validate("not-a-token"))
}
