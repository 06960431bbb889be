// Package achievement unlocks badges by watching command results and
// screen completions.
package achievement

type ID string

const (
	TimeTraveler    ID = "time_traveler"
	FirstCommit     ID = "first_commit"
	BranchMaster    ID = "branch_master"
	FutureExplorer  ID = "future_explorer"
	MergeBeginner   ID = "merge_beginner"
	RebaseMaster    ID = "rebase_master"
	CherryPicker    ID = "cherry_picker"
	HistoryRewriter ID = "history_rewriter"
	WildWestHero    ID = "wild_west_hero"
	StashExpert     ID = "stash_expert"
	ResetWarrior    ID = "reset_warrior"
	RevertSage      ID = "revert_sage"
	GitMaster       ID = "git_master"
	Speedrunner     ID = "speedrunner"
	Perfectionist   ID = "perfectionist"
)

type Achievement struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Level       int    `json:"level"`
	// Screen is 0 for achievements not tied to a screen.
	Screen   int  `json:"screen"`
	Unlocked bool `json:"unlocked"`
}

var catalog = []Achievement{
	{ID: TimeTraveler, Name: "⏰ Viajero del Tiempo", Description: "Completaste la Pantalla 1: Origin", Icon: "🚗", Level: 1, Screen: 1},
	{ID: FirstCommit, Name: "📝 Primer Commit", Description: "Hiciste tu primer commit", Icon: "✨", Level: 1, Screen: 1},
	{ID: BranchMaster, Name: "🌿 Maestro de Ramas", Description: "Creaste tu primera rama", Icon: "🌳", Level: 1, Screen: 1},

	{ID: FutureExplorer, Name: "🔮 Explorador del Futuro", Description: "Completaste la Pantalla 2: Time Travel", Icon: "⚡", Level: 2, Screen: 2},
	{ID: MergeBeginner, Name: "🔀 Fusionador Principiante", Description: "Completaste tu primer merge", Icon: "🎯", Level: 2, Screen: 2},

	{ID: RebaseMaster, Name: "🔥 Maestro del Rebase", Description: "Completaste la Pantalla 3 y dominaste rebase", Icon: "🔥", Level: 3, Screen: 3},
	{ID: CherryPicker, Name: "🍒 Recolector de Cerezas", Description: "Usaste cherry-pick exitosamente", Icon: "🍒", Level: 3, Screen: 3},
	{ID: HistoryRewriter, Name: "📜 Reescritor de Historia", Description: "Reorganizaste la línea temporal con rebase", Icon: "📚", Level: 3, Screen: 3},

	{ID: WildWestHero, Name: "🤠 Héroe del Oeste", Description: "Completaste la Pantalla 4: Wild West", Icon: "🏜️", Level: 4, Screen: 4},
	{ID: StashExpert, Name: "💾 Experto en Stash", Description: "Guardaste y recuperaste trabajo con stash", Icon: "📦", Level: 4, Screen: 4},
	{ID: ResetWarrior, Name: "⚠️ Guerrero del Reset", Description: "Deshiciste commits con reset --soft", Icon: "🔙", Level: 4, Screen: 4},
	{ID: RevertSage, Name: "🔄 Sabio del Revert", Description: "Deshiciste cambios de forma segura con revert", Icon: "♻️", Level: 4, Screen: 4},

	{ID: GitMaster, Name: "🎓 Maestro de Git", Description: "¡Completaste todas las pantallas!", Icon: "👑", Level: 5},
	{ID: Speedrunner, Name: "⚡ Corredor Veloz", Description: "Completaste una pantalla en menos de 5 minutos", Icon: "🏃", Level: 5},
	{ID: Perfectionist, Name: "💎 Perfeccionista", Description: "Completaste una pantalla sin usar hints", Icon: "🌟", Level: 5},
}

// screenBadges maps a completed screen to its badge.
var screenBadges = map[int]ID{
	1: TimeTraveler,
	2: FutureExplorer,
	3: RebaseMaster,
	4: WildWestHero,
}

func lookup(id ID) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
