package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func TestPushTranscript(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git add a.txt", `git commit -m "uno"`, "git add b.txt", `git commit -m "dos"`)

	res := h.run("git push")

	require.NoError(t, res.Err)
	assert.Equal(t, []string{
		"Enumerating objects: 6, done.",
		"Counting objects: 100% (6/6), done.",
		"Writing objects: 100% (6/6), done.",
		"To origin",
		"   c000001..c000002  main -> main",
		"🚀 Cambios de 'main' enviados a 'origin'",
	}, res.Texts())
	assert.Empty(t, res.Effects)
	assert.Equal(t, 2, h.repo().CommitCount())
}

func TestPushUsesRemoteURL(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git remote add github https://github.com/doc/delorean.git",
		"git add a.txt", `git commit -m "uno"`)

	res := h.run("git push github main")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Texts(), "To https://github.com/doc/delorean.git")
	assert.Contains(t, res.Texts(), "   0000000..c000001  main -> main")
}

func TestPushWithoutCommits(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")

	res := h.run("git push")
	assert.ErrorIs(t, res.Err, state.ErrNoCommitsYet)
	assert.Equal(t, "error: src refspec main does not match any", res.Lines[0].Text)
}

func TestPushFromNewBranch(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git add .", `git commit -m "hola"`, "git checkout -b feature")

	res := h.run("git push")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Texts(), "   0000000..c000001  feature -> feature")
	assert.Contains(t, res.Texts(), "🚀 Cambios de 'feature' enviados a 'origin'")

	res = h.run("git push origin 1955")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Texts(), "   0000000..c000001  1955 -> 1955")
}

func TestUnconfiguredRemoteNames(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init", "git add .", `git commit -m "hola"`)

	res := h.run("git push upstream main")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Texts(), "To upstream")

	res = h.run("git pull upstream")
	require.NoError(t, res.Err)
	assert.Equal(t, "From upstream", res.Lines[0].Text)
}

func TestPullWithUpstreamChanges(t *testing.T) {
	h := newHarness(t)
	h.rnd.chance = true
	h.runAll("git init", "git add a.txt", `git commit -m "uno"`)

	res := h.run("git pull")

	require.NoError(t, res.Err)
	assert.Contains(t, res.Texts(), "Updating c000001..c000002")
	assert.Contains(t, res.Texts(), "Fast-forward")
	assert.Equal(t, 2, h.repo().CommitCount())
	assert.Equal(t, []git.Effect{git.CommitOnCurrent("Merge branch 'main' of origin")}, res.Effects)
}

func TestPullUpToDate(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")

	res := h.run("git pull origin main")

	require.NoError(t, res.Err)
	assert.Equal(t, "Already up to date.", res.Lines[len(res.Lines)-1].Text)
	assert.Zero(t, h.repo().CommitCount())
	assert.Empty(t, res.Effects)
}

func TestRemote(t *testing.T) {
	h := newHarness(t)
	h.runAll("git init")

	assert.Empty(t, h.run("git remote").Lines)

	h.runAll("git remote add origin https://example.com/hill-valley.git")
	assert.Equal(t, []string{"origin"}, h.run("git remote").Texts())
	assert.Equal(t, []string{
		"origin\thttps://example.com/hill-valley.git (fetch)",
		"origin\thttps://example.com/hill-valley.git (push)",
	}, h.run("git remote -v").Texts())

	res := h.run("git remote add origin https://other")
	assert.ErrorIs(t, res.Err, state.ErrRemoteExists)
	assert.Equal(t, "error: remote origin already exists.", res.Lines[0].Text)

	assert.ErrorIs(t, h.run("git remote add solo").Err, state.ErrMissingArgument)
	assert.ErrorIs(t, h.run("git remote rename a b").Err, state.ErrInvalidTarget)
}
