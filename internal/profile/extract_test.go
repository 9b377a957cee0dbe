package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{
			name:   "finds skills across punctuation",
			text:   "Built services in Go and React; comfortable with C++ and Node.js.",
			expect: []string{"React", "Node.js", "Go", "C++"},
		},
		{
			name:   "matching is case-insensitive",
			text:   "TYPESCRIPT, react, GraphQL",
			expect: []string{"React", "TypeScript", "GraphQL"},
		},
		{
			name:   "tokens do not fire inside longer words",
			text:   "Worked at Google on Javascripting tools",
			expect: nil,
		},
		{
			name:   "javascript does not imply java",
			text:   "Five years of JavaScript",
			expect: []string{"JavaScript"},
		},
		{
			name:   "multi-word skills",
			text:   "Led system design reviews and people management",
			expect: []string{"System design", "People management"},
		},
		{
			name:   "single skill at the end of a sentence",
			text:   "I know Go.",
			expect: []string{"Go"},
		},
		{
			name:   "empty input",
			text:   "   \n\t ",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, ExtractSkills(tt.text))
		})
	}
}

func TestImportCV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Senior engineer. React, Go, Docker and Kubernetes."), 0o644))

	p := New("Alex")
	p.Skills = []string{"React"}

	added, err := ImportCV(p, path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Kubernetes", "Docker"}, added)
	assert.Equal(t, []string{"React", "Go", "Kubernetes", "Docker"}, p.Skills)
}

func TestImportCVWithDuplicatedStoredSkills(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go and React projects."), 0o644))

	// A hand-edited profile may hold case variants of the same skill.
	p := New("Alex")
	p.Skills = []string{"Go", "go"}

	added, err := ImportCV(p, path)
	require.NoError(t, err)

	assert.Equal(t, []string{"React"}, added)
	assert.Equal(t, []string{"Go", "React"}, p.Skills)
}

func TestImportCVNoKnownSkills(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("I enjoy gardening."), 0o644))

	p := New("Alex")
	added, err := ImportCV(p, path)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, p.Skills)
}

func TestImportCVMissingFile(t *testing.T) {
	t.Parallel()

	p := New("Alex")
	_, err := ImportCV(p, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading cv file")
}
