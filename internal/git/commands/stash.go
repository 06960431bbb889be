package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindStash, func() git.Command { return &StashCommand{} })
}

type StashCommand struct{}

var _ git.Command = (*StashCommand)(nil)

func (c *StashCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	sub := "push"
	rest := args[1:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		sub, rest = rest[0], rest[1:]
	}

	switch sub {
	case "push", "save":
		return c.push(env, rest)
	case "pop":
		return c.pop(env.Repo)
	case "list":
		return c.list(env.Repo), nil
	case "clear":
		return c.clear(env.Repo)
	default:
		return nil, git.Fatal(state.ErrInvalidTarget, fmt.Sprintf("error: unknown subcommand: %s", sub)).
			WithHint("💡 Subcomandos: push, pop, list, clear")
	}
}

func (c *StashCommand) push(env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	if len(repo.Staged()) == 0 {
		return nil, git.Warning(state.ErrNothingStaged, "No local changes to save").
			WithHint(`💡 Tip: Usa "git add ." para tener algo que guardar`)
	}

	msg := ""
	for i, a := range args {
		if a == "-m" || a == "--message" {
			msg = stripQuotes(strings.Join(args[i+1:], " "))
			break
		}
	}
	if msg == "" {
		last := "sin commits"
		if c, ok := repo.LastCommit(); ok {
			last = shortID(c.ID) + " " + c.Message
		}
		msg = fmt.Sprintf("WIP on %s: %s", repo.CurrentBranch(), last)
	}

	entry, err := repo.PushStash(repo.NewID(env.Rand), msg)
	if err != nil {
		return nil, fmt.Errorf("stash push: %w", err)
	}

	res := git.NewResult()
	res.Success("Saved working directory and index state %s", entry.Message)
	res.Info("📦 %d archivo(s) guardados en el stash", len(entry.Files))
	res.Info(`💡 Usa "git stash pop" para recuperarlos`)
	return res, nil
}

func (c *StashCommand) pop(repo *state.Repository) (*git.Result, error) {
	entry, err := repo.PopStash()
	if err != nil {
		return nil, git.Fatal(state.ErrStashEmpty, "error: No stash entries found.")
	}

	res := git.NewResult()
	res.Success("✅ Cambios recuperados del stash en la rama '%s'", repo.CurrentBranch())
	for _, f := range entry.Files {
		res.Success("  nuevo archivo: %s", f)
	}
	res.Info("Dropped refs/stash@{0} (%s)", entry.ID)
	return res, nil
}

func (c *StashCommand) list(repo *state.Repository) *git.Result {
	res := git.NewResult()
	entries := repo.Stash()
	if len(entries) == 0 {
		res.Info("No hay entradas en el stash")
		return res
	}
	for i := len(entries) - 1; i >= 0; i-- {
		res.Plain("stash@{%d}: %s", len(entries)-1-i, entries[i].Message)
	}
	return res
}

func (c *StashCommand) clear(repo *state.Repository) (*git.Result, error) {
	n, err := repo.ClearStash()
	if err != nil {
		return nil, git.Warning(state.ErrStashEmpty, "⚠️ El stash ya está vacío")
	}
	return git.NewResult().Success("🧹 %d entrada(s) eliminadas del stash", n), nil
}

func (c *StashCommand) Help() string {
	return `📘 GIT-STASH (1)                                        Manual de Git

 💡 DESCRIPCIÓN
    ・Guarda temporalmente los cambios preparados y deja el área limpia
    ・Las entradas forman una pila: pop recupera siempre la última

 📋 SINOPSIS
    git stash [push [-m <mensaje>]]
    git stash pop
    git stash list
    git stash clear
`
}
