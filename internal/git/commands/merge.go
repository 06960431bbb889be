package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindMerge, func() git.Command { return &MergeCommand{} })
}

type MergeCommand struct{}

var _ git.Command = (*MergeCommand)(nil)

// Execute records a merge only in the graph. The global commit list is not
// merged or deduplicated.
func (c *MergeCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	targets := positional(args[1:])
	if len(targets) == 0 {
		return nil, git.Fatal(state.ErrMissingArgument, "❌ Especifica una rama para fusionar").
			WithHint(`💡 Usa "git branch" para ver las ramas disponibles`)
	}
	source := targets[0]
	current := repo.CurrentBranch()

	if !repo.HasBranch(source) {
		return nil, git.Fatal(state.ErrInvalidTarget,
			fmt.Sprintf("merge: %s - not something we can merge", source)).
			WithHint(`💡 Usa "git branch" para ver las ramas disponibles`)
	}
	if source == current {
		return nil, git.Warning(state.ErrInvalidTarget,
			fmt.Sprintf("⚠️ Ya estás en la rama '%s', no se puede fusionar consigo misma", source))
	}

	res := git.NewResult()
	res.Plain("Merge made by the 'ort' strategy.")
	res.Success("✅ Merge: '%s' → '%s'", source, current)
	res.Info("🎨 ¡Mira el gráfico! Las ramas se han fusionado en '%s'", current)
	res.Info("💡 Los cambios de '%s' ahora están en '%s'", source, current)
	res.Info("📚 Explicación: git merge combina cambios de diferentes ramas")
	res.Emit(git.MergeBranch(source))
	return res, nil
}

func (c *MergeCommand) Help() string {
	return `📘 GIT-MERGE (1)                                        Manual de Git

 💡 DESCRIPCIÓN
    ・Une la historia de otra rama con la rama actual
    ・En este simulador la fusión se ve en el gráfico; no hay conflictos

 📋 SINOPSIS
    git merge <rama>

 🛠  EJEMPLOS
    1. Traer los cambios de 1955 a main
       $ git checkout main
       $ git merge 1955
`
}
