package commands

import (
	"context"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindAdd, func() git.Command { return &AddCommand{} })
}

type AddCommand struct{}

var _ git.Command = (*AddCommand)(nil)

func (c *AddCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	var paths []string
	for _, a := range args[1:] {
		switch a {
		case ".", "-a", "--all", "-A":
			paths = append(paths, placeholderFiles...)
		default:
			paths = append(paths, a)
		}
	}
	if len(paths) == 0 {
		return nil, git.Warning(state.ErrMissingArgument, "Nothing specified, nothing added.").
			WithHint(`💡 Tip: Usa "git add ." para agregar todos los archivos`)
	}

	added := env.Repo.Stage(paths...)
	res := git.NewResult()
	if len(added) == 0 {
		res.Info("Los archivos ya estaban en el área de preparación")
		return res, nil
	}

	res.Success("✅ Archivos agregados al área de preparación")
	for _, f := range added {
		res.Success("  %s", f)
	}
	res.Info("📚 Explicación: git add prepara los archivos para el próximo commit")
	return res, nil
}

func (c *AddCommand) Help() string {
	return `📘 GIT-ADD (1)                                          Manual de Git

 💡 DESCRIPCIÓN
    ・Prepara archivos para el próximo commit (staging)
    ・Agregar dos veces el mismo archivo no cambia nada

 📋 SINOPSIS
    git add <archivo>...
    git add .

 🛠  EJEMPLOS
    1. Preparar todo
       $ git add .
    2. Preparar un archivo concreto
       $ git add delorean.txt
`
}
