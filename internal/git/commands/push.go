package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindPush, func() git.Command { return &PushCommand{} })
}

type PushCommand struct{}

var _ git.Command = (*PushCommand)(nil)

const defaultRemote = "origin"

// remoteAndBranch applies the origin/current-branch defaults shared by push
// and pull.
func remoteAndBranch(repo *state.Repository, args []string) (remote, branch string) {
	remote, branch = defaultRemote, repo.CurrentBranch()
	pos := positional(args)
	if len(pos) > 0 {
		remote = pos[0]
	}
	if len(pos) > 1 {
		branch = pos[1]
	}
	return remote, branch
}

// remoteURL resolves a configured remote. Unknown names are used as their
// own URL, like the implicit origin.
func remoteURL(repo *state.Repository, name string) string {
	if r, ok := repo.Remote(name); ok {
		return r.URL
	}
	return name
}

// Execute only prints a transcript; nothing leaves the simulator.
func (c *PushCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	remote, branch := remoteAndBranch(repo, args[1:])
	if repo.CommitCount() == 0 {
		return nil, git.Warning(state.ErrNoCommitsYet, fmt.Sprintf("error: src refspec %s does not match any", branch)).
			WithHint(`💡 Tip: Haz un commit antes de hacer push`)
	}
	url := remoteURL(repo, remote)

	// The commit list is global, so every branch pushes the same history.
	commits := repo.Commits()
	newID := commits[len(commits)-1].ID
	oldID := "0000000"
	if len(commits) > 1 {
		oldID = commits[len(commits)-2].ID
	}
	objects := len(commits) * 3

	res := git.NewResult()
	res.Plain("Enumerating objects: %d, done.", objects)
	res.Plain("Counting objects: 100%% (%d/%d), done.", objects, objects)
	res.Plain("Writing objects: 100%% (%d/%d), done.", objects, objects)
	res.Plain("To %s", url)
	res.Success("   %s..%s  %s -> %s", shortID(oldID), shortID(newID), branch, branch)
	res.Info("🚀 Cambios de '%s' enviados a '%s'", branch, remote)
	return res, nil
}

func (c *PushCommand) Help() string {
	return `📘 GIT-PUSH (1)                                         Manual de Git

 💡 DESCRIPCIÓN
    ・Envía los commits de una rama al repositorio remoto (simulado)

 📋 SINOPSIS
    git push [remoto] [rama]
    Por defecto: remoto origin, rama actual.
`
}
