package httpHandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager(time.Minute)

	token := m.Create("user-1")
	require.NotEmpty(t, token)

	userID, err := m.Lookup(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, 1, m.Count())

	m.Revoke(token)
	_, err = m.Lookup(token)
	assert.ErrorIs(t, err, errSessionNotFound)
	assert.Equal(t, 0, m.Count())
}

func TestSessionExpiry(t *testing.T) {
	m := NewSessionManager(10 * time.Millisecond)

	token := m.Create("user-1")
	time.Sleep(25 * time.Millisecond)

	_, err := m.Lookup(token)
	assert.ErrorIs(t, err, errSessionNotFound)
	// Expired sessions are dropped on lookup.
	assert.Equal(t, 0, m.Count())
}

func TestLookupUnknownToken(t *testing.T) {
	m := NewSessionManager(time.Minute)
	_, err := m.Lookup("not-a-token")
	assert.ErrorIs(t, err, errSessionNotFound)
}
