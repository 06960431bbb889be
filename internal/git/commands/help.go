package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

func init() {
	git.RegisterCommand(git.KindHelp, func() git.Command { return &HelpCommand{} })
}

type HelpCommand struct{}

// Ensure HelpCommand implements git.Command
var _ git.Command = (*HelpCommand)(nil)

// Command metadata for help display
type cmdMeta struct {
	Category string
	Usage    string
	Desc     string
}

// Categories
const (
	CatStart   = "Empezar una línea temporal"
	CatWork    = "Trabajar en el cambio actual"
	CatHistory = "Examinar la historia"
	CatGrow    = "Ramas y viajes en el tiempo"
	CatUndo    = "Deshacer"
	CatCollab  = "Colaborar"
	CatConsole = "Consola"
)

var commandMetadata = map[git.Kind]cmdMeta{
	git.KindInit: {CatStart, "init", "Inicializar repositorio"},

	git.KindAdd:    {CatWork, "add .", "Añadir archivos al staging"},
	git.KindCommit: {CatWork, `commit -m "msg"`, "Guardar cambios"},
	git.KindStash:  {CatWork, "stash [pop|list|clear]", "Guardar cambios temporalmente"},

	git.KindStatus: {CatHistory, "status", "Ver estado actual"},
	git.KindLog:    {CatHistory, "log", "Ver historial"},

	git.KindBranch:     {CatGrow, "branch <nombre>", "Crear o listar ramas"},
	git.KindCheckout:   {CatGrow, "checkout [-b] <rama>", "Cambiar de rama"},
	git.KindMerge:      {CatGrow, "merge <rama>", "Fusionar ramas"},
	git.KindRebase:     {CatGrow, "rebase <rama>", "Reorganizar historial"},
	git.KindCherryPick: {CatGrow, "cherry-pick <rama>", "Traer un commit concreto"},

	git.KindRevert: {CatUndo, "revert [HEAD]", "Deshacer con un commit nuevo"},
	git.KindReset:  {CatUndo, "reset [--soft HEAD~1]", "Deshacer staging o el último commit"},

	git.KindPush:   {CatCollab, "push [remoto] [rama]", "Enviar commits"},
	git.KindPull:   {CatCollab, "pull [remoto] [rama]", "Traer cambios"},
	git.KindRemote: {CatCollab, "remote [add <n> <url>|-v]", "Administrar remotos"},

	git.KindHint:  {CatConsole, "hint/pista", "Pista del ejercicio actual"},
	git.KindHelp:  {CatConsole, "help/ayuda [comando]", "Mostrar esta ayuda"},
	git.KindClear: {CatConsole, "clear", "Limpiar consola"},
}

// Order of categories for display
var categoryOrder = []string{
	CatStart,
	CatWork,
	CatHistory,
	CatGrow,
	CatUndo,
	CatCollab,
	CatConsole,
}

func (c *HelpCommand) Execute(ctx context.Context, env *git.Env, args []string) (*git.Result, error) {
	res := git.NewResult()
	if len(args) > 1 {
		subcmd := args[1]
		helpStr, err := git.GetCommandHelp(subcmd)
		if err != nil {
			return nil, git.Warning(state.ErrUnknownCommand, fmt.Sprintf("git help: comando desconocido '%s'", subcmd))
		}
		for _, line := range strings.Split(strings.TrimRight(helpStr, "\n"), "\n") {
			res.Plain("%s", line)
		}
		return res, nil
	}

	grouped := make(map[string][]git.Kind)
	maxLen := 0
	for _, k := range git.Kinds() {
		meta, ok := commandMetadata[k]
		if !ok {
			continue
		}
		grouped[meta.Category] = append(grouped[meta.Category], k)
		if len(meta.Usage) > maxLen {
			maxLen = len(meta.Usage)
		}
	}

	res.Info("📚 Comandos Git disponibles:")
	for _, cat := range categoryOrder {
		list := grouped[cat]
		if len(list) == 0 {
			continue
		}
		res.Info("%s:", cat)
		for _, k := range list {
			meta := commandMetadata[k]
			padding := strings.Repeat(" ", maxLen-len(meta.Usage)+3)
			res.Plain("   %s%s%s", meta.Usage, padding, meta.Desc)
		}
	}
	res.Info("Escribe 'help <comando>' para ver el manual de un comando.")
	return res, nil
}

func (c *HelpCommand) Help() string {
	return `📘 GIT-HELP (1)                                         Manual de Git

 💡 DESCRIPCIÓN
    Muestra los comandos disponibles en el simulador.
    Con un nombre de comando, muestra su manual.

 📋 SINOPSIS
    help [<comando>]
    ayuda [<comando>]
`
}
