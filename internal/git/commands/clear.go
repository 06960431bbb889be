package commands

import (
	"context"

	"github.com/kurobon/gitbttf/internal/git"
)

func init() {
	git.RegisterCommand(git.KindClear, func() git.Command { return &ClearCommand{} })
}

type ClearCommand struct{}

var _ git.Command = (*ClearCommand)(nil)

// Execute clears the transcript only; the repository is untouched.
func (c *ClearCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	res := &git.Result{ClearTranscript: true}
	res.Info("💡 Comandos: init, add, commit, branch, checkout, merge, status, log")
	res.Info("🆘 Ayuda: hint (pista), help (comandos)")
	return res, nil
}

func (c *ClearCommand) Help() string {
	return "uso: clear\n\nLimpia la consola. El repositorio no cambia."
}
