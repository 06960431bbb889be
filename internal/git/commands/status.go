package commands

import (
	"context"

	"github.com/kurobon/gitbttf/internal/git"
)

func init() {
	git.RegisterCommand(git.KindStatus, func() git.Command { return &StatusCommand{} })
}

type StatusCommand struct{}

var _ git.Command = (*StatusCommand)(nil)

func (c *StatusCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	res := git.NewResult()
	res.Info("En la rama %s", repo.CurrentBranch())
	if repo.CommitCount() == 0 {
		res.Info("No hay commits todavía")
	}

	staged := repo.Staged()
	if len(staged) == 0 {
		res.Success("Nada para hacer commit, árbol de trabajo limpio (working tree clean)")
	} else {
		res.Success("Cambios a ser confirmados:")
		for _, f := range staged {
			res.Success("  nuevo archivo: %s", f)
		}
	}

	if n := len(repo.Stash()); n > 0 {
		res.Info("Tienes %d entrada(s) guardadas en el stash", n)
	}
	res.Info("📚 Explicación: git status muestra el estado del directorio de trabajo")
	return res, nil
}

func (c *StatusCommand) Help() string {
	return `📘 GIT-STATUS (1)                                       Manual de Git

 💡 DESCRIPCIÓN
    ・Muestra en qué rama estás
    ・Muestra qué archivos están listos para el próximo commit
    Si te pierdes en el tiempo, empieza siempre por aquí.

 📋 SINOPSIS
    git status
`
}
