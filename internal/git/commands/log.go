package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindLog, func() git.Command { return &LogCommand{} })
}

type LogCommand struct{}

var _ git.Command = (*LogCommand)(nil)

// Execute prints the global history, most recent first.
func (c *LogCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	commits := repo.Commits()
	if len(commits) == 0 {
		return nil, git.Warning(state.ErrNoCommitsYet,
			fmt.Sprintf("fatal: your current branch '%s' does not have any commits yet", repo.CurrentBranch())).
			WithHint(`💡 Tip: Usa "git add ." y "git commit -m" para crear el primero`)
	}

	oneline := hasFlag(args[1:], "--oneline")
	res := git.NewResult()
	for i := len(commits) - 1; i >= 0; i-- {
		cm := commits[i]
		if oneline {
			res.Plain("%s %s", shortID(cm.ID), cm.Message)
			continue
		}
		res.Success("commit %s", cm.ID)
		res.Plain("    %s", cm.Message)
	}
	return res, nil
}

func (c *LogCommand) Help() string {
	return `📘 GIT-LOG (1)                                          Manual de Git

 💡 DESCRIPCIÓN
    ・Muestra el historial de commits, el más reciente primero

 📋 SINOPSIS
    git log [--oneline]
`
}
