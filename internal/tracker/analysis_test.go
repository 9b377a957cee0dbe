package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careermatch/internal/catalog"
	"careermatch/internal/matching"
)

func testJob() *catalog.Job {
	return &catalog.Job{
		ID:       "job-1",
		Title:    "Frontend Developer",
		Company:  "Acme",
		WorkMode: catalog.WorkModeRemote,
	}
}

func TestNewAnalysis(t *testing.T) {
	t.Parallel()

	score := matching.MatchScore{Overall: 84}
	analysis := NewAnalysis("profile-1", testJob(), score, matching.MatchExplanation{Summary: "good"})

	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, "profile-1", analysis.ProfileID)
	assert.Equal(t, "job-1", analysis.JobID)
	assert.Equal(t, "Acme", analysis.Job.Company)
	assert.Equal(t, score, analysis.Score)
	assert.Equal(t, StatusSaved, analysis.Status)
	require.Len(t, analysis.History, 1)
	assert.Equal(t, StatusSaved, analysis.History[0].Status)
}

func TestSetStatusRecordsHistory(t *testing.T) {
	t.Parallel()

	analysis := NewAnalysis("profile-1", testJob(), matching.MatchScore{}, matching.MatchExplanation{})

	analysis.SetStatus(StatusApplied)
	analysis.SetStatus(StatusInterviewing)
	// Backwards moves are allowed, only recorded.
	analysis.SetStatus(StatusSaved)

	assert.Equal(t, StatusSaved, analysis.Status)
	require.Len(t, analysis.History, 4)
	assert.Equal(t, StatusApplied, analysis.History[1].Status)
	assert.Equal(t, StatusInterviewing, analysis.History[2].Status)
	assert.Equal(t, StatusSaved, analysis.History[3].Status)
	assert.True(t, analysis.UpdatedAt.After(analysis.CreatedAt) || analysis.UpdatedAt.Equal(analysis.CreatedAt))
}

func TestAddNote(t *testing.T) {
	t.Parallel()

	analysis := NewAnalysis("profile-1", testJob(), matching.MatchScore{}, matching.MatchExplanation{})

	analysis.AddNote("Spoke with the recruiter")
	analysis.AddNote("  ")
	analysis.AddNote("Take-home due Friday")

	assert.Equal(t, "Spoke with the recruiter\nTake-home due Friday", analysis.Notes)
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		expect  ApplicationStatus
		wantErr bool
	}{
		{input: "saved", expect: StatusSaved},
		{input: "Applied", expect: StatusApplied},
		{input: " INTERVIEWING ", expect: StatusInterviewing},
		{input: "offer", expect: StatusOffer},
		{input: "rejected", expect: StatusRejected},
		{input: "ghosted", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		status, err := ParseStatus(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expect, status)
	}
}

func TestBoardGroupsByStatus(t *testing.T) {
	t.Parallel()

	a := NewAnalysis("profile-1", testJob(), matching.MatchScore{}, matching.MatchExplanation{})
	b := NewAnalysis("profile-1", &catalog.Job{ID: "job-2"}, matching.MatchScore{}, matching.MatchExplanation{})
	c := NewAnalysis("profile-1", &catalog.Job{ID: "job-3"}, matching.MatchScore{}, matching.MatchExplanation{})
	b.SetStatus(StatusApplied)

	board := Board([]*JobAnalysis{a, b, c})

	require.Len(t, board, len(Statuses()))
	assert.Equal(t, []*JobAnalysis{a, c}, board[StatusSaved])
	assert.Equal(t, []*JobAnalysis{b}, board[StatusApplied])
	assert.Empty(t, board[StatusOffer])
}
