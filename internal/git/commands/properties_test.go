package commands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func TestInitTwiceOnlyWarns(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")
	branches, commits := h.repo().Branches(), h.repo().Commits()

	res := h.run("git init")

	require.Len(t, res.Lines, 1)
	assert.Equal(t, git.SeverityWarning, res.Lines[0].Severity)
	assert.ErrorIs(t, res.Err, state.ErrAlreadyInitialized)
	assert.Equal(t, branches, h.repo().Branches())
	assert.Equal(t, commits, h.repo().Commits())
	assert.Equal(t, []string{"init"}, h.graph.calls, "the initial commit is drawn once")
}

func TestCommitClearsStaging(t *testing.T) {
	sequences := [][]string{
		{"git add ."},
		{"git add a.txt"},
		{"git add a.txt", "git add b.txt", "git add a.txt"},
		{"git add .", "git add extra.txt"},
	}
	for i, adds := range sequences {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			h := newHarness(t)
			h.runAll("git init")
			h.runAll(adds...)
			before := h.repo().Staged()
			count := h.repo().CommitCount()

			h.runAll(`git commit -m "snapshot"`)

			assert.Empty(t, h.repo().Staged())
			commits := h.repo().Commits()
			require.Len(t, commits, count+1)
			assert.Equal(t, before, commits[len(commits)-1].Files)
		})
	}
}

func TestCheckoutIsTotalOverKnownBranches(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git branch 1955", "git branch 1985-dystopia", "git branch 2015")

	for _, name := range h.repo().Branches() {
		res := h.run("git checkout " + name)
		require.NoError(t, res.Err, name)
		assert.Equal(t, name, h.repo().CurrentBranch())
	}

	for _, name := range []string{"1885", "ghost", "-b"} {
		current := h.repo().CurrentBranch()
		res := h.run("git checkout " + name)
		assert.Error(t, res.Err, name)
		assert.Equal(t, current, h.repo().CurrentBranch())
	}
}

func TestStashPopsInReverseOrder(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")
	for _, f := range []string{"e1.txt", "e2.txt", "e3.txt"} {
		h.runAll("git add "+f, "git stash")
	}

	for _, want := range []string{"e3.txt", "e2.txt", "e1.txt"} {
		h.runAll("git stash pop")
		assert.Equal(t, []string{want}, h.repo().Staged())
		h.runAll("git reset")
	}

	h.runAll("git add keep.txt")
	res := h.run("git stash pop")
	assert.ErrorIs(t, res.Err, state.ErrStashEmpty)
	assert.Equal(t, git.SeverityError, res.Lines[0].Severity)
	assert.Equal(t, []string{"keep.txt"}, h.repo().Staged())
}

func TestCommitIDsAreUnique(t *testing.T) {
	h := newHarness(t, git.WithRandom(state.NewSeededRandom(7)))
	h.runAll("git init")
	for i := 0; i < 200; i++ {
		h.runAll(fmt.Sprintf("git add f%d.txt", i), fmt.Sprintf("git commit -m c%d", i))
	}

	seen := map[string]bool{}
	for _, c := range h.repo().Commits() {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, 200)
}

func TestCreatingExistingBranchOnlyWarns(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git branch feature")
	branches := h.repo().Branches()

	for _, input := range []string{"git branch feature", "git branch main", "git checkout -b feature"} {
		res := h.run(input)
		assert.Equal(t, branches, h.repo().Branches(), input)

		var warned bool
		for _, l := range res.Lines {
			warned = warned || l.Severity == git.SeverityWarning
		}
		assert.True(t, warned, input)
	}
}
