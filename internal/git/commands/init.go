package commands

import (
	"context"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindInit, func() git.Command { return &InitCommand{} })
}

type InitCommand struct{}

// Ensure InitCommand implements git.Command
var _ git.Command = (*InitCommand)(nil)

func (c *InitCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	if err := env.Repo.Init(); err != nil {
		return nil, git.Warning(state.ErrAlreadyInitialized, "⚠️ Ya existe un repositorio Git inicializado")
	}

	res := git.NewResult()
	res.Success("✅ Repositorio Git inicializado exitosamente")
	res.Plain("Initialized empty Git repository in .git/")
	res.Info("📚 Explicación: git init crea un nuevo repositorio Git vacío")
	res.Info("🎨 ¡Mira el gráfico! Se ha creado la rama %s con un commit inicial", env.Repo.CurrentBranch())
	res.Emit(git.InitGraph())
	return res, nil
}

func (c *InitCommand) Help() string {
	return `📘 GIT-INIT (1)                                         Manual de Git

 💡 DESCRIPCIÓN
    ・Crea un repositorio Git vacío en el directorio actual
    ・Es el punto de partida de toda línea temporal

 📋 SINOPSIS
    git init

 🛠  EJEMPLOS
    1. Empezar un proyecto nuevo
       $ git init
`
}
