package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindReset, func() git.Command { return &ResetCommand{} })
}

type ResetCommand struct{}

var _ git.Command = (*ResetCommand)(nil)

// Execute either unstages everything or, with --soft, pops commits back into
// the staging area. Only --soft rewrites the commit list.
func (c *ResetCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	if hasFlag(args[1:], "--soft") {
		return c.soft(env.Repo, positional(args[1:]))
	}

	repo := env.Repo
	staged := repo.Staged()
	repo.ClearStaged()

	res := git.NewResult()
	if len(staged) > 0 {
		res.Plain("Unstaged changes after reset:")
		for _, f := range staged {
			res.Plain("M\t%s", f)
		}
	}
	res.Success("✅ Área de preparación limpiada")
	res.Info("📚 Explicación: git reset deshace cambios en el área de preparación")
	return res, nil
}

func (c *ResetCommand) soft(repo *state.Repository, refs []string) (*git.Result, error) {
	if repo.CommitCount() == 0 {
		return nil, git.Warning(state.ErrNoCommitsYet, "⚠️ No hay commits que deshacer").
			WithHint(`💡 Tip: Haz un commit primero con "git commit -m"`)
	}

	n := 1
	if len(refs) > 0 {
		off, ok := headOffset(refs[0])
		if !ok {
			return nil, git.Fatal(state.ErrInvalidTarget,
				fmt.Sprintf("fatal: ambiguous argument '%s': unknown revision", refs[0]))
		}
		n = off
	}
	if n > repo.CommitCount() {
		return nil, git.Fatal(state.ErrInvalidTarget,
			fmt.Sprintf("fatal: solo hay %d commit(s) en el historial", repo.CommitCount()))
	}

	res := git.NewResult()
	for i := 0; i < n; i++ {
		popped, err := repo.PopCommit()
		if err != nil {
			return nil, fmt.Errorf("reset --soft: %w", err)
		}
		res.Success("⏪ Commit %s deshecho: %s", popped.ID, popped.Message)
	}
	res.Info("📂 Los archivos vuelven al área de preparación")
	res.Info("📚 Explicación: git reset --soft mueve HEAD atrás y conserva los cambios")
	res.Info("🎨 El gráfico conserva el commit deshecho como recuerdo de la línea temporal")
	return res, nil
}

func (c *ResetCommand) Help() string {
	return `📘 GIT-RESET (1)                                        Manual de Git

 💡 DESCRIPCIÓN
    ・Sin opciones: vacía el área de preparación, no toca los commits
    ・Con --soft HEAD~1: deshace el último commit y devuelve sus archivos al staging

 📋 SINOPSIS
    git reset
    git reset --soft HEAD~1
`
}
