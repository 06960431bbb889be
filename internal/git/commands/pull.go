package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitbttf/internal/git"
)

func init() {
	git.RegisterCommand(git.KindPull, func() git.Command { return &PullCommand{} })
}

type PullCommand struct{}

var _ git.Command = (*PullCommand)(nil)

// Execute decides with env.Rand whether the remote had news. The draw only
// changes what is shown.
func (c *PullCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	repo := env.Repo
	remote, branch := remoteAndBranch(repo, args[1:])
	url := remoteURL(repo, remote)

	res := git.NewResult()
	res.Plain("From %s", url)
	res.Plain(" * branch            %s       -> FETCH_HEAD", branch)

	if !env.Rand.Chance(env.PullChance) {
		res.Success("Already up to date.")
		return res, nil
	}

	old := "0000000"
	if last, ok := repo.LastCommit(); ok {
		old = shortID(last.ID)
	}
	msg := fmt.Sprintf("Merge branch '%s' of %s", branch, remote)
	commit := repo.AppendCommit(repo.NewID(env.Rand), msg, []string{"cambios-remotos.txt"})

	res.Plain("Updating %s..%s", old, shortID(commit.ID))
	res.Plain("Fast-forward")
	res.Plain(" cambios-remotos.txt | 1 +")
	res.Plain(" 1 file changed, 1 insertion(+)")
	res.Info("⬇️ Cambios de '%s/%s' integrados en '%s'", remote, branch, commit.Branch)
	res.Emit(git.CommitOnCurrent(commit.Message))
	return res, nil
}

func (c *PullCommand) Help() string {
	return `📘 GIT-PULL (1)                                         Manual de Git

 💡 DESCRIPCIÓN
    ・Trae e integra los cambios del repositorio remoto (simulado)
    ・A veces el remoto no tiene nada nuevo: "Already up to date."

 📋 SINOPSIS
    git pull [remoto] [rama]
`
}
