package profile

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// knownSkills is the dictionary the CV importer recognises. Matching is
// case-insensitive and token-bounded, so "Go" does not fire on "Google".
var knownSkills = []string{
	"React", "TypeScript", "JavaScript", "CSS", "HTML", "Node.js", "Next.js",
	"Go", "Python", "Java", "Rust", "C++", "C#", "SQL", "PostgreSQL", "MySQL",
	"MongoDB", "Redis", "Kubernetes", "Docker", "Terraform", "AWS", "GCP",
	"Azure", "gRPC", "GraphQL", "REST", "Figma", "Accessibility",
	"System design", "People management",
}

// ExtractSkills scans free-form CV text and returns every known skill it
// mentions, in dictionary order.
func ExtractSkills(text string) []string {
	normalized := normalizeForMatch(text)
	if normalized == "" {
		return nil
	}

	var found []string
	for _, skill := range knownSkills {
		// normalizeForMatch frames the token with spaces, so containment
		// only fires on whole tokens.
		if strings.Contains(normalized, normalizeForMatch(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

// ImportCV reads a plain-text CV file and merges the extracted skills into
// the profile. Returns the skills that were newly added.
func ImportCV(p *Profile, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cv file: %w", err)
	}

	extracted := ExtractSkills(string(data))
	if len(extracted) == 0 {
		return nil, nil
	}

	// Diff against the pre-merge keys: merging may also collapse duplicate
	// entries already stored in the profile, so positions are not stable.
	before := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		before[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	p.Skills = MergeStrings(p.Skills, extracted)
	p.Touch()

	var added []string
	for _, skill := range extracted {
		if !before[strings.ToLower(skill)] {
			added = append(added, skill)
		}
	}
	return added, nil
}

// normalizeForMatch lowercases the text and collapses every separator run
// into a single space, keeping + and # so names like c++ and c# survive
// tokenization. Dots separate, which also lets "Node.js" match "node js".
func normalizeForMatch(text string) string {
	var b strings.Builder
	b.WriteRune(' ')
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	if !lastSpace {
		b.WriteRune(' ')
	}
	out := b.String()
	if strings.TrimSpace(out) == "" {
		return ""
	}
	return out
}
