package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
)

// The built-in catalog ships with the binary, so the app works without any
// external files. A custom catalog file overrides it entirely.
//
//go:embed catalog.json
var defaultCatalog []byte

// Load returns the job catalog. When path is empty the embedded default
// catalog is used, otherwise the JSON file at path replaces it.
func Load(path string) (*Jobs, error) {
	raw := defaultCatalog
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
		raw = data
	}

	jobs, err := decodeJobs(raw)
	if err != nil {
		return nil, err
	}

	for _, job := range jobs.Items {
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog entry %q: %w", job.ID, err)
		}
	}

	return jobs, nil
}

func decodeJobs(raw []byte) (*Jobs, error) {
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	var jobs []*Job
	cfg := &mapstructure.DecoderConfig{
		Metadata:   nil,
		Result:     &jobs,
		TagName:    "json",
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return &Jobs{Items: jobs}, nil
}
