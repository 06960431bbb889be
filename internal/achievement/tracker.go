package achievement

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/progress"
)

const (
	storeKey       = "bttf-achievements"
	speedrunWindow = 5 * time.Minute
)

// Tracker records unlocked achievements and persists them.
type Tracker struct {
	mu        sync.Mutex
	store     progress.Store
	unlocked  []ID
	listeners []func(Achievement)
}

func NewTracker(store progress.Store) (*Tracker, error) {
	t := &Tracker{store: store}
	if _, err := store.Load(storeKey, &t.unlocked); err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	return t, nil
}

// OnUnlock registers fn to run after each new unlock.
func (t *Tracker) OnUnlock(fn func(Achievement)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Unlock reports true only the first time id is unlocked.
func (t *Tracker) Unlock(id ID) (Achievement, bool, error) {
	a, ok := lookup(id)
	if !ok {
		return Achievement{}, false, fmt.Errorf("achievement %s not found", id)
	}

	t.mu.Lock()
	if slices.Contains(t.unlocked, id) {
		t.mu.Unlock()
		return a, false, nil
	}
	t.unlocked = append(t.unlocked, id)
	err := t.store.Save(storeKey, t.unlocked)
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	a.Unlocked = true
	for _, fn := range listeners {
		fn(a)
	}
	return a, true, err
}

func (t *Tracker) IsUnlocked(id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.unlocked, id)
}

// All lists every achievement with its unlock status.
func (t *Tracker) All() []Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Achievement, len(catalog))
	for i, a := range catalog {
		a.Unlocked = slices.Contains(t.unlocked, a.ID)
		out[i] = a
	}
	return out
}

func (t *Tracker) ByScreen(screen int) []Achievement {
	var out []Achievement
	for _, a := range t.All() {
		if a.Screen == screen {
			out = append(out, a)
		}
	}
	return out
}

type Summary struct {
	Unlocked   int `json:"unlocked"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Summary{Unlocked: len(t.unlocked), Total: len(catalog)}
	s.Percentage = (s.Unlocked*100 + s.Total/2) / s.Total
	return s
}

// ResetAll forgets every unlock.
func (t *Tracker) ResetAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unlocked = nil
	return t.store.Save(storeKey, []ID{})
}

// ObserveCommand unlocks command badges for a successful result and returns
// the ones unlocked now.
func (t *Tracker) ObserveCommand(res *git.Result) ([]Achievement, error) {
	if res == nil || res.Err != nil {
		return nil, nil
	}
	var ids []ID
	switch res.Kind {
	case git.KindCommit:
		ids = append(ids, FirstCommit)
	case git.KindBranch:
		if len(res.Args) > 1 {
			ids = append(ids, BranchMaster)
		}
	case git.KindCheckout:
		if slices.Contains(res.Args, "-b") || slices.Contains(res.Args, "-c") {
			ids = append(ids, BranchMaster)
		}
	case git.KindMerge:
		ids = append(ids, MergeBeginner)
	case git.KindRebase:
		ids = append(ids, HistoryRewriter)
	case git.KindCherryPick:
		ids = append(ids, CherryPicker)
	case git.KindStash:
		if slices.Contains(res.Args, "pop") {
			ids = append(ids, StashExpert)
		}
	case git.KindReset:
		if slices.Contains(res.Args, "--soft") {
			ids = append(ids, ResetWarrior)
		}
	case git.KindRevert:
		ids = append(ids, RevertSage)
	}
	return t.unlockAll(ids)
}

// ObserveScreen unlocks the badges earned by finishing a screen.
func (t *Tracker) ObserveScreen(screen int, elapsed time.Duration, hintsUsed int) ([]Achievement, error) {
	var ids []ID
	if id, ok := screenBadges[screen]; ok {
		ids = append(ids, id)
	}
	if elapsed > 0 && elapsed < speedrunWindow {
		ids = append(ids, Speedrunner)
	}
	if hintsUsed == 0 {
		ids = append(ids, Perfectionist)
	}

	fresh, err := t.unlockAll(ids)
	if err != nil {
		return fresh, err
	}

	for _, id := range screenBadges {
		if !t.IsUnlocked(id) {
			return fresh, nil
		}
	}
	more, err := t.unlockAll([]ID{GitMaster})
	return append(fresh, more...), err
}

func (t *Tracker) unlockAll(ids []ID) ([]Achievement, error) {
	var fresh []Achievement
	for _, id := range ids {
		a, isNew, err := t.Unlock(id)
		if err != nil {
			return fresh, err
		}
		if isNew {
			fresh = append(fresh, a)
		}
	}
	return fresh, nil
}
