package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careermatch/internal/catalog"
	"careermatch/internal/matching"
)

// ApplicationStatus is the kanban column of a tracked job. Transitions are
// user-driven and intentionally unvalidated: any status can follow any
// other, each change is just recorded with a timestamp.
type ApplicationStatus string

const (
	StatusSaved        ApplicationStatus = "saved"
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
)

// Statuses returns all statuses in board-column order.
func Statuses() []ApplicationStatus {
	return []ApplicationStatus{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}
}

func ParseStatus(s string) (ApplicationStatus, error) {
	normalized := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range Statuses() {
		if status == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (expected one of: saved, applied, interviewing, offer, rejected)", s)
}

type StatusChange struct {
	Status ApplicationStatus `json:"status"`
	At     time.Time         `json:"at"`
}

// JobAnalysis is one tracked job: a snapshot of the posting with the score
// and explanation computed at save time, plus the application status.
type JobAnalysis struct {
	ID          string                    `json:"id"`
	ProfileID   string                    `json:"profileId"`
	JobID       string                    `json:"jobId"`
	Job         catalog.Job               `json:"job"`
	Score       matching.MatchScore       `json:"score"`
	Explanation matching.MatchExplanation `json:"explanation"`
	Status      ApplicationStatus         `json:"status"`
	History     []StatusChange            `json:"history"`
	Notes       string                    `json:"notes"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// NewAnalysis snapshots a job together with its freshly computed score.
func NewAnalysis(profileID string, job *catalog.Job, score matching.MatchScore, explanation matching.MatchExplanation) *JobAnalysis {
	now := time.Now().UTC()
	return &JobAnalysis{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		JobID:       job.ID,
		Job:         *job,
		Score:       score,
		Explanation: explanation,
		Status:      StatusSaved,
		History:     []StatusChange{{Status: StatusSaved, At: now}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetStatus moves the analysis to the given status and records the change.
func (a *JobAnalysis) SetStatus(status ApplicationStatus) {
	now := time.Now().UTC()
	a.Status = status
	a.History = append(a.History, StatusChange{Status: status, At: now})
	a.UpdatedAt = now
}

// AddNote appends a note line.
func (a *JobAnalysis) AddNote(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if a.Notes != "" {
		a.Notes += "\n"
	}
	a.Notes += text
	a.UpdatedAt = time.Now().UTC()
}

// Board groups analyses into kanban columns keyed by status, preserving the
// input order inside each column.
func Board(analyses []*JobAnalysis) map[ApplicationStatus][]*JobAnalysis {
	board := make(map[ApplicationStatus][]*JobAnalysis, len(Statuses()))
	for _, status := range Statuses() {
		board[status] = []*JobAnalysis{}
	}
	for _, analysis := range analyses {
		board[analysis.Status] = append(board[analysis.Status], analysis)
	}
	return board
}
