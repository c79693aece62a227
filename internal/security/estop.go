package security

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zeroclaw/internal/domain"
)

// EstopState is the persisted emergency-stop state.
type EstopState struct {
	KillAll        bool       `json:"kill_all"`
	NetworkKill    bool       `json:"network_kill"`
	BlockedDomains []string   `json:"blocked_domains"`
	FrozenTools    []string   `json:"frozen_tools"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Engaged reports whether any stop is in effect.
func (s EstopState) Engaged() bool {
	return s.KillAll || s.NetworkKill || len(s.BlockedDomains) > 0 || len(s.FrozenTools) > 0
}

// EstopPath resolves stateFile against configDir unless it is absolute.
func EstopPath(configDir, stateFile string) string {
	if filepath.IsAbs(stateFile) {
		return stateFile
	}
	return filepath.Join(configDir, stateFile)
}

// LoadEstop reads the state file. A missing file means nothing is engaged.
func LoadEstop(path string) (EstopState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return EstopState{}, nil
	}
	if err != nil {
		return EstopState{}, domain.NewDomainError("security.LoadEstop", domain.ErrConfigRead, err.Error())
	}

	var st EstopState
	if err := json.Unmarshal(data, &st); err != nil {
		return EstopState{}, domain.NewDomainError("security.LoadEstop", domain.ErrConfigParse,
			fmt.Sprintf("%s: %v", path, err))
	}
	return st, nil
}
