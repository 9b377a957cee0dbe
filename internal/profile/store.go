package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoProfile is returned by Load when no profile has been created yet.
// Callers treat it as "not logged in" and redirect to profile creation.
var ErrNoProfile = errors.New("no profile found")

const storeFile = "profile.json"

// Store persists the single user profile.
type Store interface {
	Load() (*Profile, error)
	Save(p *Profile) error
	Clear() error
}

type fileStore struct {
	path string
}

// NewFileStore creates a Store backed by a JSON file inside dataDir.
func NewFileStore(dataDir string) Store {
	return &fileStore{path: filepath.Join(dataDir, storeFile)}
}

func (s *fileStore) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

func (s *fileStore) Save(p *Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *fileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
