// Package auth reads provider auth profiles stored next to the config document.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"zeroclaw/internal/domain"
)

// ProfilesFile is the store's file name inside the config dir.
const ProfilesFile = "auth-profiles.json"

// Profile is one stored credential set.
type Profile struct {
	Provider string `json:"provider"`
	Kind     string `json:"kind,omitempty"`
	Account  string `json:"account,omitempty"`
}

// Profiles is the on-disk document.
type Profiles struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfiles map[string]string  `json:"active_profiles"`
}

// Entry is a profile flattened for display.
type Entry struct {
	ID       string
	Provider string
	Active   bool
}

// Store reads auth profiles from a config directory.
type Store struct {
	path string
}

// NewStore creates a store rooted at configDir.
func NewStore(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, ProfilesFile)}
}

// Path returns the profiles file location.
func (s *Store) Path() string { return s.path }

// Load reads the document. A missing file is an empty store.
func (s *Store) Load() (*Profiles, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Profiles{}, nil
	}
	if err != nil {
		return nil, domain.NewDomainError("auth.Load", domain.ErrConfigRead, err.Error())
	}

	var p Profiles
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, domain.NewDomainError("auth.Load", domain.ErrConfigParse, fmt.Sprintf("%s: %v", s.path, err))
	}
	return &p, nil
}

// Entries returns the profiles sorted by id, marking the active one per provider.
func (p *Profiles) Entries() []Entry {
	out := make([]Entry, 0, len(p.Profiles))
	for id, prof := range p.Profiles {
		out = append(out, Entry{
			ID:       id,
			Provider: prof.Provider,
			Active:   p.ActiveProfiles[prof.Provider] == id,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
