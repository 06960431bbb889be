package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindBranch, func() git.Command { return &BranchCommand{} })
}

type BranchCommand struct{}

var _ git.Command = (*BranchCommand)(nil)

func (c *BranchCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	for _, a := range args[1:] {
		if strings.HasPrefix(a, "-") {
			return nil, git.Warning(state.ErrInvalidTarget, fmt.Sprintf("⚠️ Opción no soportada: %s", a)).
				WithHint("💡 Uso: git branch [<nombre>]")
		}
	}
	names := positional(args[1:])
	if len(names) == 0 {
		return c.list(env.Repo), nil
	}
	return c.create(env.Repo, names[0])
}

func (c *BranchCommand) list(repo *state.Repository) *git.Result {
	res := git.NewResult()
	res.Info("Ramas disponibles:")
	for _, b := range repo.Branches() {
		if b == repo.CurrentBranch() {
			res.Success("* %s", b)
		} else {
			res.Plain("  %s", b)
		}
	}
	return res
}

func (c *BranchCommand) create(repo *state.Repository, name string) (*git.Result, error) {
	if err := validateBranchName(name); err != nil {
		return nil, err
	}
	from := repo.CurrentBranch()
	if err := repo.CreateBranch(name); err != nil {
		if errors.Is(err, state.ErrBranchAlreadyExists) {
			return nil, git.Warning(err, fmt.Sprintf("❌ La rama '%s' ya existe", name))
		}
		return nil, err
	}

	res := git.NewResult()
	res.Success("✅ Rama '%s' creada desde '%s'", name, from)
	res.Info("🎨 ¡Mira el gráfico! La rama '%s' se ha bifurcado desde '%s'", name, from)
	res.Info(`💡 Usa "git checkout %s" para cambiar a la nueva rama`, name)
	res.Emit(git.CreateBranch(name))
	return res, nil
}

// validateBranchName rejects names git itself would refuse.
func validateBranchName(name string) error {
	if name == "head" || strings.HasPrefix(name, "-") || strings.ContainsAny(name, " ~^:?*[\\") ||
		strings.Contains(name, "..") || strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".lock") {
		return git.Fatal(state.ErrInvalidTarget, fmt.Sprintf("fatal: '%s' is not a valid branch name", name))
	}
	return nil
}

func (c *BranchCommand) Help() string {
	return `📘 GIT-BRANCH (1)                                       Manual de Git

 💡 DESCRIPCIÓN
    ・Sin argumentos: lista las ramas (la actual lleva *)
    ・Con un nombre: crea una nueva línea temporal desde la rama actual

 📋 SINOPSIS
    git branch
    git branch <nombre>

 🛠  EJEMPLOS
    1. Crear la línea temporal de 1955
       $ git branch 1955
    2. Ver todas las líneas temporales
       $ git branch
`
}
