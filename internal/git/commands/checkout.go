package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindCheckout, func() git.Command { return &CheckoutCommand{} })
}

type CheckoutCommand struct{}

var _ git.Command = (*CheckoutCommand)(nil)

func (c *CheckoutCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	targets := positional(args[1:])
	if len(targets) == 0 {
		return nil, git.Fatal(state.ErrMissingArgument, "❌ Especifica una rama para cambiar").
			WithHint(`💡 Usa "git branch" para ver las ramas disponibles`)
	}
	name := targets[0]
	create := hasFlag(args[1:], "-b", "-c")
	previous := repo.CurrentBranch()
	res := git.NewResult()

	if create {
		if repo.HasBranch(name) {
			res.Warn("⚠️ La rama '%s' ya existe, cambiando a ella", name)
		} else {
			if err := validateBranchName(name); err != nil {
				return nil, err
			}
			if err := repo.CreateBranch(name); err != nil {
				return nil, err
			}
			res.Success("✅ Rama '%s' creada desde '%s'", name, previous)
			res.Emit(git.CreateBranch(name))
		}
	}

	if err := repo.Checkout(name); err != nil {
		return nil, git.Fatal(state.ErrBranchNotFound,
			fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", name)).
			WithHint(`💡 Usa "git branch" para ver las ramas disponibles, o "git checkout -b" para crearla`)
	}

	if name == previous {
		res.Info("Already on '%s'", name)
		return res, nil
	}

	if create && len(res.Effects) > 0 {
		res.Success("Switched to a new branch '%s'", name)
	} else {
		res.Success("Switched to branch '%s'", name)
	}
	res.Success("✅ Cambiado de '%s' a '%s'", previous, name)
	res.Info("📚 Explicación: git checkout cambia entre ramas o commits")
	res.Info("💡 Los próximos commits se añadirán a la rama '%s'", name)
	res.Emit(git.CheckoutBranch(name))
	return res, nil
}

func (c *CheckoutCommand) Help() string {
	return `📘 GIT-CHECKOUT (1)                                     Manual de Git

 💡 DESCRIPCIÓN
    ・Viaja a otra rama (línea temporal)
    ・Con -b crea la rama y viaja a ella en un solo paso

 📋 SINOPSIS
    git checkout <rama>
    git checkout -b <rama-nueva>

 🛠  EJEMPLOS
    1. Viajar a 1955
       $ git checkout 1955
    2. Crear y viajar a 2015
       $ git checkout -b 2015
`
}
