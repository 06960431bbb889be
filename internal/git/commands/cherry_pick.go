package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindCherryPick, func() git.Command { return &CherryPickCommand{} })
}

type CherryPickCommand struct{}

var _ git.Command = (*CherryPickCommand)(nil)

// Execute appends a narrative commit on the current branch. No file set is
// copied from the picked commit.
func (c *CherryPickCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	refs := positional(args[1:])
	if len(refs) == 0 {
		return nil, git.Fatal(state.ErrMissingArgument, "fatal: no commit specified").
			WithHint("💡 Ejemplo: git cherry-pick <rama>")
	}
	ref := refs[0]

	var msg string
	switch {
	case ref == repo.CurrentBranch():
		return nil, git.Warning(state.ErrInvalidTarget,
			fmt.Sprintf("⚠️ '%s' es la rama actual, no hay nada que traer", ref))
	case repo.HasBranch(ref):
		if picked, ok := repo.LastCommitOn(ref); ok {
			msg = fmt.Sprintf("Cherry-pick de '%s': %s", ref, picked.Message)
		} else {
			msg = fmt.Sprintf("Cherry-pick de '%s'", ref)
		}
	default:
		picked, ok := repo.FindCommit(ref)
		if !ok {
			return nil, git.Fatal(state.ErrInvalidTarget, fmt.Sprintf("fatal: bad revision '%s'", ref))
		}
		msg = fmt.Sprintf("Cherry-pick %s: %s", shortID(picked.ID), picked.Message)
	}

	commit := repo.AppendCommit(repo.NewID(env.Rand), msg, nil)

	res := git.NewResult()
	res.Success("[%s %s] %s", commit.Branch, commit.ID, commit.Message)
	res.Info("🍒 Cambio traído a '%s' sin fusionar toda la rama", commit.Branch)
	res.Info("📚 Explicación: git cherry-pick copia un commit concreto a la rama actual")
	res.Emit(git.CommitOnCurrent(commit.Message))
	return res, nil
}

func (c *CherryPickCommand) Help() string {
	return `📘 GIT-CHERRY-PICK (1)                                  Manual de Git

 💡 DESCRIPCIÓN
    ・Trae un commit concreto de otra rama a la rama actual
    ・Acepta un nombre de rama (su último commit) o un id de commit

 📋 SINOPSIS
    git cherry-pick <rama|commit>
`
}
