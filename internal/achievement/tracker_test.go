package achievement

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/progress"
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := NewTracker(progress.NewMemoryStore())
	require.NoError(t, err)
	return tr
}

func ids(as []Achievement) []ID {
	var out []ID
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func result(kind git.Kind, args ...string) *git.Result {
	return &git.Result{Kind: kind, Command: kind.String(), Args: append([]string{kind.String()}, args...)}
}

func TestObserveCommand(t *testing.T) {
	tests := []struct {
		name string
		res  *git.Result
		want []ID
	}{
		{"commit", result(git.KindCommit, "-m", "x"), []ID{FirstCommit}},
		{"branch listing", result(git.KindBranch), nil},
		{"branch create", result(git.KindBranch, "1955"), []ID{BranchMaster}},
		{"checkout -b", result(git.KindCheckout, "-b", "2015"), []ID{BranchMaster}},
		{"plain checkout", result(git.KindCheckout, "main"), nil},
		{"merge", result(git.KindMerge, "1955"), []ID{MergeBeginner}},
		{"rebase", result(git.KindRebase, "main"), []ID{HistoryRewriter}},
		{"cherry-pick", result(git.KindCherryPick, "1955"), []ID{CherryPicker}},
		{"stash push", result(git.KindStash), nil},
		{"stash pop", result(git.KindStash, "pop"), []ID{StashExpert}},
		{"mixed reset", result(git.KindReset), nil},
		{"soft reset", result(git.KindReset, "--soft", "head~1"), []ID{ResetWarrior}},
		{"revert", result(git.KindRevert), []ID{RevertSage}},
		{"status", result(git.KindStatus), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTracker(t)
			got, err := tr.ObserveCommand(tt.res)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFailedCommandsUnlockNothing(t *testing.T) {
	tr := newTracker(t)
	res := result(git.KindMerge, "1955")
	res.Err = errors.New("boom")

	got, err := tr.ObserveCommand(res)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, tr.IsUnlocked(MergeBeginner))
}

func TestUnlockOnlyOnce(t *testing.T) {
	tr := newTracker(t)
	var notified []ID
	tr.OnUnlock(func(a Achievement) { notified = append(notified, a.ID) })

	a, isNew, err := tr.Unlock(FirstCommit)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.True(t, a.Unlocked)

	_, isNew, err = tr.Unlock(FirstCommit)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, []ID{FirstCommit}, notified)

	_, _, err = tr.Unlock("flux_capacitor")
	assert.Error(t, err)
}

func TestObserveScreen(t *testing.T) {
	tr := newTracker(t)

	got, err := tr.ObserveScreen(1, 10*time.Minute, 3)
	require.NoError(t, err)
	assert.Equal(t, []ID{TimeTraveler}, ids(got))

	got, err = tr.ObserveScreen(2, time.Minute, 0)
	require.NoError(t, err)
	assert.Equal(t, []ID{FutureExplorer, Speedrunner, Perfectionist}, ids(got))

	_, err = tr.ObserveScreen(3, time.Hour, 1)
	require.NoError(t, err)
	assert.False(t, tr.IsUnlocked(GitMaster))

	got, err = tr.ObserveScreen(4, time.Hour, 1)
	require.NoError(t, err)
	assert.Equal(t, []ID{WildWestHero, GitMaster}, ids(got))
}

func TestPersistenceAndSummary(t *testing.T) {
	store := progress.NewFileStore(filepath.Join(t.TempDir(), "progress.json"))
	tr, err := NewTracker(store)
	require.NoError(t, err)
	_, _, err = tr.Unlock(CherryPicker)
	require.NoError(t, err)

	again, err := NewTracker(store)
	require.NoError(t, err)
	assert.True(t, again.IsUnlocked(CherryPicker))
	assert.Equal(t, Summary{Unlocked: 1, Total: 15, Percentage: 7}, again.Summary())

	screen3 := again.ByScreen(3)
	require.Len(t, screen3, 3)
	assert.True(t, screen3[1].Unlocked)

	require.NoError(t, again.ResetAll())
	assert.Equal(t, 0, again.Summary().Unlocked)
	third, err := NewTracker(store)
	require.NoError(t, err)
	assert.False(t, third.IsUnlocked(CherryPicker))
}
