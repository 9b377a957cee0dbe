package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careermatch/internal/catalog"
	"careermatch/internal/matching"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	return NewFileStore(t.TempDir())
}

func TestStoreSaveAndGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	analysis := NewAnalysis("profile-1", testJob(), matching.MatchScore{Overall: 77}, matching.MatchExplanation{})

	require.NoError(t, store.Save(analysis))

	got, err := store.Get("profile-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, analysis.ID, got.ID)
	assert.Equal(t, 77, got.Score.Overall)
}

func TestStoreGetUntracked(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Get("profile-1", "job-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSaveReplacesSameJob(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	first := NewAnalysis("profile-1", testJob(), matching.MatchScore{Overall: 60}, matching.MatchExplanation{})
	require.NoError(t, store.Save(first))

	second := NewAnalysis("profile-1", testJob(), matching.MatchScore{Overall: 85}, matching.MatchExplanation{})
	require.NoError(t, store.Save(second))

	all, err := store.List("profile-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, 85, all[0].Score.Overall)
}

func TestStoreListFiltersByProfile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(NewAnalysis("profile-1", testJob(), matching.MatchScore{}, matching.MatchExplanation{})))
	require.NoError(t, store.Save(NewAnalysis("profile-2", &catalog.Job{ID: "job-2"}, matching.MatchScore{}, matching.MatchExplanation{})))

	mine, err := store.List("profile-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "job-1", mine[0].JobID)

	none, err := store.List("profile-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(NewAnalysis("profile-1", testJob(), matching.MatchScore{}, matching.MatchExplanation{})))

	require.NoError(t, store.Delete("profile-1", "job-1"))
	_, err := store.Get("profile-1", "job-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete("profile-1", "job-1"), ErrNotFound)
}

func TestStoreClear(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(NewAnalysis("profile-1", testJob(), matching.MatchScore{}, matching.MatchExplanation{})))

	require.NoError(t, store.Clear())

	all, err := store.List("profile-1")
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.Clear())
}
