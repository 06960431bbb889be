package progress

import (
	"fmt"
	"sync"
)

const storeKey = "git-bttf-progress"

// DemoLevel is always playable.
const DemoLevel = 5

type Level struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Locked    bool   `json:"locked"`
}

var defaultLevels = []Level{
	{ID: 1, Name: "Origin"},
	{ID: 2, Name: "Time Travel", Locked: true},
	{ID: 3, Name: "Dystopia", Locked: true},
	{ID: 4, Name: "Wild West", Locked: true},
	{ID: DemoLevel, Name: "Demo BTTF"},
}

// persisted is the stored shape of one level.
type persisted struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
	Locked    bool `json:"locked"`
}

// Tracker gates navigation between levels.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	levels []Level
}

// NewTracker loads saved progress; missing entries keep their defaults.
func NewTracker(store Store) (*Tracker, error) {
	t := &Tracker{store: store, levels: append([]Level(nil), defaultLevels...)}

	var saved []persisted
	if _, err := store.Load(storeKey, &saved); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	for _, s := range saved {
		if l := t.find(s.ID); l != nil {
			l.Completed, l.Locked = s.Completed, s.Locked
		}
	}
	// the demo stays open whatever an older save says
	t.find(DemoLevel).Locked = false
	return t, nil
}

func (t *Tracker) find(id int) *Level {
	for i := range t.levels {
		if t.levels[i].ID == id {
			return &t.levels[i]
		}
	}
	return nil
}

func (t *Tracker) saveLocked() error {
	out := make([]persisted, len(t.levels))
	for i, l := range t.levels {
		out[i] = persisted{ID: l.ID, Completed: l.Completed, Locked: l.Locked}
	}
	return t.store.Save(storeKey, out)
}

func (t *Tracker) Levels() []Level {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Level(nil), t.levels...)
}

func (t *Tracker) IsUnlocked(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.find(id)
	return l != nil && !l.Locked
}

// Complete marks a level done and unlocks the next one.
func (t *Tracker) Complete(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.find(id)
	if l == nil {
		return fmt.Errorf("unknown level %d", id)
	}
	l.Completed = true
	if next := t.find(id + 1); next != nil {
		next.Locked = false
	}
	return t.saveLocked()
}

// Percentage of completed levels, rounded.
func (t *Tracker) Percentage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	done := 0
	for _, l := range t.levels {
		if l.Completed {
			done++
		}
	}
	return (done*100 + len(t.levels)/2) / len(t.levels)
}

// Reset forgets every completion and locks all levels but the first and the demo.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.levels = append([]Level(nil), defaultLevels...)
	return t.saveLocked()
}
