package git

// Kind enumerates every command the console understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindInit
	KindStatus
	KindAdd
	KindCommit
	KindBranch
	KindCheckout
	KindMerge
	KindRebase
	KindStash
	KindCherryPick
	KindRevert
	KindReset
	KindPush
	KindPull
	KindRemote
	KindLog
	KindClear
	KindHelp
	KindHint

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:    "",
	KindInit:       "init",
	KindStatus:     "status",
	KindAdd:        "add",
	KindCommit:     "commit",
	KindBranch:     "branch",
	KindCheckout:   "checkout",
	KindMerge:      "merge",
	KindRebase:     "rebase",
	KindStash:      "stash",
	KindCherryPick: "cherry-pick",
	KindRevert:     "revert",
	KindReset:      "reset",
	KindPush:       "push",
	KindPull:       "pull",
	KindRemote:     "remote",
	KindLog:        "log",
	KindClear:      "clear",
	KindHelp:       "help",
	KindHint:       "hint",
}

// aliases maps alternative spellings onto a canonical kind.
var aliases = map[string]Kind{
	"ayuda": KindHelp,
	"pista": KindHint,
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return ""
	}
	return kindNames[k]
}

// RequiresRepo reports whether the command fails with "not a git repository"
// before init.
func (k Kind) RequiresRepo() bool {
	switch k {
	case KindInit, KindClear, KindHelp, KindHint:
		return false
	}
	return true
}

// LookupKind resolves a lowercased command name.
func LookupKind(name string) (Kind, bool) {
	if k, ok := aliases[name]; ok {
		return k, true
	}
	for k := KindInit; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInit; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
