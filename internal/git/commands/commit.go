package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindCommit, func() git.Command { return &CommitCommand{} })
}

type CommitCommand struct{}

var _ git.Command = (*CommitCommand)(nil)

func (c *CommitCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	if len(repo.Staged()) == 0 {
		return nil, git.Warning(state.ErrNothingStaged, "❌ No hay cambios preparados para commit").
			WithHint(`💡 Tip: Usa "git add ." primero`)
	}

	msg, ok := commitMessage(args[1:])
	if !ok {
		return nil, git.Fatal(state.ErrMissingCommitMessage, "error: switch `m' requires a value").
			WithHint(`💡 Tip: git commit -m "tu mensaje"`)
	}

	commit, err := repo.CommitStaged(repo.NewID(env.Rand), msg)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	res := git.NewResult()
	res.Success("✅ [%s %s] %s", commit.Branch, commit.ID, commit.Message)
	res.Info(" %d archivo(s) cambiados", len(commit.Files))
	res.Info("📚 Explicación: git commit guarda los cambios en el historial del repositorio")
	res.Emit(git.CommitOnCurrent(commit.Message))
	return res, nil
}

func (c *CommitCommand) Help() string {
	return `📘 GIT-COMMIT (1)                                       Manual de Git

 💡 DESCRIPCIÓN
    ・Guarda en el historial los cambios preparados con git add
    ・Cada commit lleva un mensaje que explica qué cambió

 📋 SINOPSIS
    git commit -m <mensaje>

 ⚙️  OPCIONES
    -m <mensaje>
        Mensaje del commit. Las comillas que lo rodean se eliminan.

 🛠  EJEMPLOS
    1. Guardar un momento de la historia
       $ git commit -m "Marty llega a 1955"
`
}
