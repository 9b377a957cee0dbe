package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no analysis exists for the requested job.
var ErrNotFound = errors.New("job is not tracked")

const storeFile = "analyses.json"

// Store persists tracked job analyses. At most one analysis exists per
// (profileID, jobID) pair; saving the same pair again replaces the prior
// snapshot.
type Store interface {
	List(profileID string) ([]*JobAnalysis, error)
	Get(profileID, jobID string) (*JobAnalysis, error)
	Save(a *JobAnalysis) error
	Delete(profileID, jobID string) error
	Clear() error
}

type fileStore struct {
	path string
}

// NewFileStore creates a Store backed by a JSON file inside dataDir.
func NewFileStore(dataDir string) Store {
	return &fileStore{path: filepath.Join(dataDir, storeFile)}
}

func (s *fileStore) readAll() ([]*JobAnalysis, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*JobAnalysis{}, nil
		}
		return nil, fmt.Errorf("reading analyses: %w", err)
	}
	if len(data) == 0 {
		return []*JobAnalysis{}, nil
	}

	var analyses []*JobAnalysis
	if err := json.Unmarshal(data, &analyses); err != nil {
		return nil, fmt.Errorf("parsing analyses: %w", err)
	}
	return analyses, nil
}

func (s *fileStore) writeAll(analyses []*JobAnalysis) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(analyses, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *fileStore) List(profileID string) ([]*JobAnalysis, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	mine := make([]*JobAnalysis, 0, len(all))
	for _, analysis := range all {
		if analysis.ProfileID == profileID {
			mine = append(mine, analysis)
		}
	}
	return mine, nil
}

func (s *fileStore) Get(profileID, jobID string) (*JobAnalysis, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	for _, analysis := range all {
		if analysis.ProfileID == profileID && analysis.JobID == jobID {
			return analysis, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileStore) Save(a *JobAnalysis) error {
	all, err := s.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for idx, existing := range all {
		if existing.ProfileID == a.ProfileID && existing.JobID == a.JobID {
			all[idx] = a
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, a)
	}

	return s.writeAll(all)
}

func (s *fileStore) Delete(profileID, jobID string) error {
	all, err := s.readAll()
	if err != nil {
		return err
	}

	kept := all[:0]
	found := false
	for _, analysis := range all {
		if analysis.ProfileID == profileID && analysis.JobID == jobID {
			found = true
			continue
		}
		kept = append(kept, analysis)
	}
	if !found {
		return ErrNotFound
	}

	return s.writeAll(kept)
}

func (s *fileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
