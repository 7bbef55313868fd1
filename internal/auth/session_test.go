package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsUnauthenticated(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "credentials.json"))
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Empty(t, s.Token())
}

func TestLoginPersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s := Load(path)
	require.NoError(t, s.Login("alice", "jwt-1"))
	require.NoError(t, s.SetCSRF("X-CSRF-Token", "csrf-1"))
	assert.Equal(t, StateAuthenticated, s.State())

	reloaded := Load(path)
	assert.Equal(t, StateAuthenticated, reloaded.State())
	assert.Equal(t, "alice", reloaded.Username())
	assert.Equal(t, "jwt-1", reloaded.Token())
	header, value := reloaded.CSRF()
	assert.Equal(t, "X-CSRF-Token", header)
	assert.Equal(t, "csrf-1", value)
}

func TestLogoutClearsCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s := Load(path)
	require.NoError(t, s.Login("alice", "jwt-1"))
	require.NoError(t, s.Logout())
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Empty(t, s.Token())

	reloaded := Load(path)
	assert.Equal(t, StateUnauthenticated, reloaded.State())

	// Logging out twice is fine, the file is already gone.
	require.NoError(t, s.Logout())
}

func TestRedirectPathIsOneShot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s := Load(path)
	require.NoError(t, s.Login("alice", "jwt-1"))
	require.NoError(t, s.SetRedirectPath("/quizzes/7"))

	assert.Equal(t, "/quizzes/7", s.RedirectPath())
	assert.Empty(t, s.RedirectPath())
}
