package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardGrantsEachEventOnce(t *testing.T) {
	t.Parallel()

	p := New()

	assert.Equal(t, 50, p.Award(EventProfileCreated))
	assert.Equal(t, 0, p.Award(EventProfileCreated))
	assert.Equal(t, 50, p.XP)
}

func TestAwardUnknownEvent(t *testing.T) {
	t.Parallel()

	p := New()

	assert.Equal(t, 0, p.Award("time_travel"))
	assert.Equal(t, 0, p.XP)
	assert.Empty(t, p.Badges)
}

func TestBadgeThresholds(t *testing.T) {
	t.Parallel()

	p := New()

	p.Award(EventWizardComplete)
	assert.Equal(t, []string{"getting-started"}, p.Badges)

	p.Award(EventProfileCreated)
	assert.Equal(t, []string{"getting-started", "profile-builder"}, p.Badges)

	p.Award(EventCVImported)
	assert.Contains(t, p.Badges, "match-maker")

	p.Award(EventFirstTrack)
	p.Award(EventPipelineStarted)
	assert.Equal(t, 150, p.XP)
	assert.Contains(t, p.Badges, "pipeline-pro")
	assert.Len(t, p.Badges, 4)
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())

	p := New()
	p.Award(EventProfileCreated)
	p.Award(EventFirstTrack)
	require.NoError(t, store.Save(p))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, p.XP, loaded.XP)
	assert.Equal(t, p.Badges, loaded.Badges)
	assert.Contains(t, loaded.Completed, EventProfileCreated)

	// A second award of a persisted event still yields nothing.
	assert.Equal(t, 0, loaded.Award(EventProfileCreated))
}

func TestStoreLoadWithoutFile(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, p.XP)
	assert.NotNil(t, p.Completed)
	assert.Empty(t, p.Badges)
}

func TestStoreClear(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())

	p := New()
	p.Award(EventProfileCreated)
	require.NoError(t, store.Save(p))

	require.NoError(t, store.Clear())

	fresh, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.XP)
}
