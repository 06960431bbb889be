package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func TestMerge(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git branch 1955")
	commits := h.repo().CommitCount()

	res := h.run("git merge 1955")

	require.NoError(t, res.Err)
	assert.Contains(t, res.Texts(), "✅ Merge: '1955' → 'main'")
	assert.Equal(t, []git.Effect{git.MergeBranch("1955")}, res.Effects)
	assert.Equal(t, commits, h.repo().CommitCount(), "merge does not touch the commit list")
}

func TestMergeIntoItselfWarns(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")
	res := h.run("git merge main")

	require.Len(t, res.Lines, 1)
	assert.Equal(t, git.SeverityWarning, res.Lines[0].Severity)
	assert.Empty(t, res.Effects)
}

func TestMergeWithoutTarget(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")
	res := h.run("git merge")
	assert.ErrorIs(t, res.Err, state.ErrMissingArgument)
}

func TestRebase(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git checkout -b 2015")
	res := h.run("git rebase main")

	require.NoError(t, res.Err)
	assert.Equal(t, "First, rewinding head to replay your work on top of it...", res.Lines[0].Text)
	assert.Equal(t, "Successfully rebased and updated refs/heads/2015.", res.Lines[1].Text)
	assert.Equal(t, []git.Effect{git.MergeBranch("main")}, res.Effects)
}

func TestRebaseFailures(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")

	res := h.run("git rebase 1885")
	assert.ErrorIs(t, res.Err, state.ErrInvalidTarget)
	assert.Equal(t, "fatal: invalid upstream '1885'", res.Lines[0].Text)

	res = h.run("git rebase main")
	assert.Equal(t, "Current branch main is up to date.", res.Lines[0].Text)
	assert.Equal(t, git.SeverityWarning, res.Lines[0].Severity)
}

func TestCherryPick(t *testing.T) {
	h := newHarness(t)
	h.runAll(
		"git init",
		"git checkout -b 1885",
		"git add .",
		`git commit -m "doc conoce a clara"`,
		"git checkout main",
	)

	res := h.run("git cherry-pick 1885")
	require.NoError(t, res.Err)
	last, _ := h.repo().LastCommit()
	assert.Equal(t, "main", last.Branch)
	assert.Equal(t, "Cherry-pick de '1885': doc conoce a clara", last.Message)
	assert.Empty(t, last.Files)
	assert.Equal(t, "[main c000002] Cherry-pick de '1885': doc conoce a clara", res.Lines[0].Text)

	res = h.run("git cherry-pick c000001")
	require.NoError(t, res.Err)
	last, _ = h.repo().LastCommit()
	assert.Equal(t, "Cherry-pick c000001: doc conoce a clara", last.Message)
}

func TestCherryPickFailures(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")

	assert.ErrorIs(t, h.run("git cherry-pick").Err, state.ErrMissingArgument)
	assert.ErrorIs(t, h.run("git cherry-pick nowhere").Err, state.ErrInvalidTarget)
	assert.ErrorIs(t, h.run("git cherry-pick main").Err, state.ErrInvalidTarget)
	assert.Zero(t, h.repo().CommitCount())
}
