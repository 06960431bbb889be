package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindRemote, func() git.Command { return &RemoteCommand{} })
}

type RemoteCommand struct{}

var _ git.Command = (*RemoteCommand)(nil)

func (c *RemoteCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	if len(args) < 2 {
		res := git.NewResult()
		for _, r := range repo.Remotes() {
			res.Plain("%s", r.Name)
		}
		return res, nil
	}

	switch args[1] {
	case "-v", "--verbose":
		res := git.NewResult()
		for _, r := range repo.Remotes() {
			res.Plain("%s\t%s (fetch)", r.Name, r.URL)
			res.Plain("%s\t%s (push)", r.Name, r.URL)
		}
		return res, nil
	case "add":
		if len(args) < 4 {
			return nil, git.Fatal(state.ErrMissingArgument, "usage: git remote add <name> <url>")
		}
		name, url := args[2], args[3]
		if err := repo.AddRemote(name, url); err != nil {
			if errors.Is(err, state.ErrRemoteExists) {
				return nil, git.Fatal(err, fmt.Sprintf("error: remote %s already exists.", name))
			}
			return nil, git.Fatal(err, "usage: git remote add <name> <url>")
		}
		res := git.NewResult()
		res.Success("✅ Remoto '%s' agregado: %s", name, url)
		res.Info(`💡 Ahora puedes usar "git push %s"`, name)
		return res, nil
	default:
		return nil, git.Fatal(state.ErrInvalidTarget, fmt.Sprintf("error: unknown subcommand: %s", args[1])).
			WithHint("💡 Uso: git remote [-v | add <nombre> <url>]")
	}
}

func (c *RemoteCommand) Help() string {
	return `📘 GIT-REMOTE (1)                                       Manual de Git

 💡 DESCRIPCIÓN
    ・Administra los repositorios remotos conocidos

 📋 SINOPSIS
    git remote
    git remote -v
    git remote add <nombre> <url>
`
}
