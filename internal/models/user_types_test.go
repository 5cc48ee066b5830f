package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("hunter2hunter2"))
	assert.NotEmpty(t, p.Hash)
	assert.NotEqual(t, "hunter2hunter2", p.Hash)

	ok, err := p.Matches("hunter2hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordMatchesGarbageHash(t *testing.T) {
	p := Password{Hash: "not-a-bcrypt-hash"}
	_, err := p.Matches("anything")
	assert.Error(t, err)
}
