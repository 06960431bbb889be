package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindRevert, func() git.Command { return &RevertCommand{} })
}

type RevertCommand struct{}

var _ git.Command = (*RevertCommand)(nil)

// Execute is always additive: the reverted commit stays in history.
func (c *RevertCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	if repo.CommitCount() == 0 {
		return nil, git.Warning(state.ErrNoCommitsYet, "⚠️ No hay commits que revertir").
			WithHint(`💡 Tip: Haz un commit primero con "git commit -m"`)
	}

	ref := "head"
	if refs := positional(args[1:]); len(refs) > 0 {
		ref = refs[0]
	}
	target, ok := resolveCommit(repo, ref)
	if !ok {
		return nil, git.Fatal(state.ErrInvalidTarget, fmt.Sprintf("fatal: bad revision '%s'", ref))
	}

	commit := repo.AppendCommit(repo.NewID(env.Rand), fmt.Sprintf("Revert %q", target.Message), nil)

	res := git.NewResult()
	res.Success("[%s %s] %s", commit.Branch, commit.ID, commit.Message)
	res.Info("↩️ Se creó un commit nuevo que deshace %s", shortID(target.ID))
	res.Info("📚 Explicación: git revert deshace cambios sin borrar la historia")
	res.Emit(git.CommitOnCurrent(commit.Message))
	return res, nil
}

func (c *RevertCommand) Help() string {
	return `📘 GIT-REVERT (1)                                       Manual de Git

 💡 DESCRIPCIÓN
    ・Crea un commit nuevo que deshace otro commit
    ・Nunca borra historia: es la forma segura de deshacer

 📋 SINOPSIS
    git revert [HEAD|HEAD~n|<commit>]
`
}
