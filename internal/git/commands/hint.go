package commands

import (
	"context"

	"github.com/kurobon/gitbttf/internal/git"
)

func init() {
	git.RegisterCommand(git.KindHint, func() git.Command { return &HintCommand{} })
}

type HintCommand struct{}

var _ git.Command = (*HintCommand)(nil)

func (c *HintCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	res := git.NewResult()
	var (
		hint git.Hint
		ok   bool
	)
	if env.Hints != nil {
		hint, ok = env.Hints.NextHint()
	}
	if !ok {
		res.Info("💡 Este modo no tiene ejercicios guiados")
		res.Info(`📚 Usa "help" para ver todos los comandos disponibles`)
		return res, nil
	}

	res.Warn("%s", hint.Text)
	if hint.Final && hint.Expected != "" {
		res.Info("📋 Puedes copiar y pegar: %s", hint.Expected)
	}
	return res, nil
}

func (c *HintCommand) Help() string {
	return "uso: hint | pista\n\nMuestra una pista del ejercicio actual. Cada vez que la pides es más concreta."
}
