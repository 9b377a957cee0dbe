package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Events that award XP. Each is granted at most once per installation, so
// re-running the wizard does not farm points.
const (
	EventProfileCreated  = "profile_created"
	EventWizardComplete  = "wizard_complete"
	EventCVImported      = "cv_imported"
	EventFirstTrack      = "first_track"
	EventPipelineStarted = "pipeline_started"
)

var xpAwards = map[string]int{
	EventProfileCreated:  50,
	EventWizardComplete:  25,
	EventCVImported:      25,
	EventFirstTrack:      15,
	EventPipelineStarted: 35,
}

type badge struct {
	Name string
	XP   int
}

var badges = []badge{
	{Name: "getting-started", XP: 25},
	{Name: "profile-builder", XP: 75},
	{Name: "match-maker", XP: 100},
	{Name: "pipeline-pro", XP: 150},
}

// Progress tracks gamified XP and badges earned while building the profile
// and the application pipeline.
type Progress struct {
	XP        int                  `json:"xp"`
	Badges    []string             `json:"badges"`
	Completed map[string]time.Time `json:"completed"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func New() *Progress {
	return &Progress{
		Badges:    []string{},
		Completed: map[string]time.Time{},
	}
}

// Award grants the XP for the given event. Returns the earned XP, or 0 when
// the event was already awarded or is unknown.
func (p *Progress) Award(event string) int {
	xp, ok := xpAwards[event]
	if !ok {
		return 0
	}
	if _, done := p.Completed[event]; done {
		return 0
	}

	now := time.Now().UTC()
	p.Completed[event] = now
	p.XP += xp
	p.UpdatedAt = now
	p.refreshBadges()

	return xp
}

func (p *Progress) refreshBadges() {
	earned := map[string]bool{}
	for _, name := range p.Badges {
		earned[name] = true
	}
	for _, b := range badges {
		if p.XP >= b.XP && !earned[b.Name] {
			p.Badges = append(p.Badges, b.Name)
		}
	}
	sort.Strings(p.Badges)
}

const storeFile = "progress.json"

// Store persists gamification progress.
type Store interface {
	Load() (*Progress, error)
	Save(p *Progress) error
	Clear() error
}

type fileStore struct {
	path string
}

// NewFileStore creates a Store backed by a JSON file inside dataDir.
// Load returns zero progress when nothing has been earned yet.
func NewFileStore(dataDir string) Store {
	return &fileStore{path: filepath.Join(dataDir, storeFile)}
}

func (s *fileStore) Load() (*Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading progress: %w", err)
	}

	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing progress: %w", err)
	}
	if p.Completed == nil {
		p.Completed = map[string]time.Time{}
	}
	return p, nil
}

func (s *fileStore) Save(p *Progress) error {
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
