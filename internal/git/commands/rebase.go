package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindRebase, func() git.Command { return &RebaseCommand{} })
}

type RebaseCommand struct{}

var _ git.Command = (*RebaseCommand)(nil)

// Execute has the same state effect as merge: commit identities are never
// rewritten, only the graph gains an edge.
func (c *RebaseCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	targets := positional(args[1:])
	if len(targets) == 0 {
		return nil, git.Fatal(state.ErrMissingArgument, "❌ Especifica la rama base para el rebase").
			WithHint("💡 Ejemplo: git rebase main")
	}
	base := targets[0]
	current := repo.CurrentBranch()

	if !repo.HasBranch(base) {
		return nil, git.Fatal(state.ErrInvalidTarget, fmt.Sprintf("fatal: invalid upstream '%s'", base))
	}
	if base == current {
		return nil, git.Warning(state.ErrInvalidTarget, fmt.Sprintf("Current branch %s is up to date.", current))
	}

	res := git.NewResult()
	res.Plain("First, rewinding head to replay your work on top of it...")
	res.Success("Successfully rebased and updated refs/heads/%s.", current)
	res.Info("♻️ Historial de '%s' reorganizado sobre '%s'", current, base)
	res.Info("📚 Explicación: git rebase reaplica tus commits encima de otra rama")
	res.Emit(git.MergeBranch(base))
	return res, nil
}

func (c *RebaseCommand) Help() string {
	return `📘 GIT-REBASE (1)                                       Manual de Git

 💡 DESCRIPCIÓN
    ・Reaplica el trabajo de la rama actual sobre otra rama base
    ・Deja un historial más lineal que merge

 📋 SINOPSIS
    git rebase <rama-base>

 🛠  EJEMPLOS
    1. Poner 2015 al día con main
       $ git checkout 2015
       $ git rebase main
`
}
