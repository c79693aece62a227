package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeroclaw/internal/domain"
)

func TestLoadEstopMissingFile(t *testing.T) {
	st, err := LoadEstop(filepath.Join(t.TempDir(), "estop-state.json"))
	require.NoError(t, err)
	assert.False(t, st.Engaged())
	assert.Nil(t, st.UpdatedAt)
}

func TestLoadEstop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estop-state.json")
	body := `{"kill_all":false,"network_kill":true,"blocked_domains":["evil.example"],"frozen_tools":[],"updated_at":"2026-03-01T10:00:00Z"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	st, err := LoadEstop(path)
	require.NoError(t, err)
	assert.True(t, st.Engaged())
	assert.True(t, st.NetworkKill)
	assert.Equal(t, []string{"evil.example"}, st.BlockedDomains)
	require.NotNil(t, st.UpdatedAt)
	assert.Equal(t, 2026, st.UpdatedAt.Year())
}

func TestLoadEstopMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estop-state.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := LoadEstop(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigParse))
}

func TestEstopPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "estop-state.json"), EstopPath("/cfg", "estop-state.json"))
	assert.Equal(t, "/var/lib/estop.json", EstopPath("/cfg", "/var/lib/estop.json"))
}

func TestEngaged(t *testing.T) {
	assert.False(t, EstopState{}.Engaged())
	assert.True(t, EstopState{KillAll: true}.Engaged())
	assert.True(t, EstopState{FrozenTools: []string{"shell"}}.Engaged())
}
