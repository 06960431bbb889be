package state

import (
	"fmt"
	"slices"
	"time"
)

// Repository is the simulated repository of one console session.
//
// The commit list is global: every branch shares it and each commit only
// carries the name of the branch it was created on. There is no DAG, no
// parent pointer and no per-branch history.
type Repository struct {
	initialized   bool
	staged        []string
	branches      []string
	currentBranch string
	commits       []Commit
	stash         []StashEntry
	remotes       []Remote
	usedIDs       map[string]struct{}
	now           func() time.Time
}

// NewRepository returns an uninitialized repository positioned on main.
func NewRepository() *Repository {
	return &Repository{
		branches:      []string{DefaultBranch},
		currentBranch: DefaultBranch,
		usedIDs:       make(map[string]struct{}),
		now:           time.Now,
	}
}

// SetClock overrides the timestamp source.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Repository) Initialized() bool {
	return r.initialized
}

// Init marks the repository as initialized. It is monotonic.
func (r *Repository) Init() error {
	if r.initialized {
		return ErrAlreadyInitialized
	}
	r.initialized = true
	return nil
}

// NewID returns a short hash not used by any commit or stash entry of this
// repository.
func (r *Repository) NewID(rnd Random) string {
	for i := 0; i < 16; i++ {
		id := rnd.Hash()
		if _, taken := r.usedIDs[id]; !taken && id != "" {
			r.usedIDs[id] = struct{}{}
			return id
		}
	}
	// The random source keeps colliding (or is a fixed stub): derive one.
	base := rnd.Hash()
	for n := len(r.usedIDs); ; n++ {
		id := fmt.Sprintf("%s%d", base, n)
		if _, taken := r.usedIDs[id]; !taken {
			r.usedIDs[id] = struct{}{}
			return id
		}
	}
}

// -- staging --

func (r *Repository) Staged() []string {
	return slices.Clone(r.staged)
}

func (r *Repository) IsStaged(file string) bool {
	return slices.Contains(r.staged, file)
}

// Stage appends files that are not staged yet and returns the ones added.
// Staging an already staged file is a no-op.
func (r *Repository) Stage(files ...string) []string {
	var added []string
	for _, f := range files {
		if f == "" || slices.Contains(r.staged, f) {
			continue
		}
		r.staged = append(r.staged, f)
		added = append(added, f)
	}
	return added
}

// ClearStaged empties the staging area and returns how many files it held.
func (r *Repository) ClearStaged() int {
	n := len(r.staged)
	r.staged = nil
	return n
}

// -- branches --

func (r *Repository) Branches() []string {
	return slices.Clone(r.branches)
}

func (r *Repository) HasBranch(name string) bool {
	return slices.Contains(r.branches, name)
}

func (r *Repository) CurrentBranch() string {
	return r.currentBranch
}

// CreateBranch appends a new branch. Existing names are never modified.
func (r *Repository) CreateBranch(name string) error {
	if name == "" {
		return ErrMissingArgument
	}
	if r.HasBranch(name) {
		return ErrBranchAlreadyExists
	}
	r.branches = append(r.branches, name)
	return nil
}

// Checkout moves the current branch pointer to an existing branch.
func (r *Repository) Checkout(name string) error {
	if !r.HasBranch(name) {
		return ErrBranchNotFound
	}
	r.currentBranch = name
	return nil
}

// -- commits --

func (r *Repository) Commits() []Commit {
	out := make([]Commit, len(r.commits))
	for i, c := range r.commits {
		c.Files = slices.Clone(c.Files)
		out[i] = c
	}
	return out
}

func (r *Repository) CommitCount() int {
	return len(r.commits)
}

// CommitStaged records the staged files as a new commit on the current branch
// and clears the staging area.
func (r *Repository) CommitStaged(id, message string) (Commit, error) {
	if len(r.staged) == 0 {
		return Commit{}, ErrNothingStaged
	}
	c := r.AppendCommit(id, message, r.staged)
	r.staged = nil
	return c, nil
}

// AppendCommit records a commit on the current branch without touching the
// staging area. Used for synthetic commits (cherry-pick, revert, pull).
func (r *Repository) AppendCommit(id, message string, files []string) Commit {
	c := Commit{
		ID:        id,
		Message:   message,
		Files:     slices.Clone(files),
		Branch:    r.currentBranch,
		Timestamp: r.now(),
	}
	r.usedIDs[id] = struct{}{}
	r.commits = append(r.commits, c)
	return c
}

// LastCommit returns the most recently created commit.
func (r *Repository) LastCommit() (Commit, bool) {
	if len(r.commits) == 0 {
		return Commit{}, false
	}
	return r.commits[len(r.commits)-1], true
}

// LastCommitOn returns the most recent commit tagged with branch.
func (r *Repository) LastCommitOn(branch string) (Commit, bool) {
	for i := len(r.commits) - 1; i >= 0; i-- {
		if r.commits[i].Branch == branch {
			return r.commits[i], true
		}
	}
	return Commit{}, false
}

// FindCommit resolves a commit by id or id prefix (at least 4 characters).
func (r *Repository) FindCommit(ref string) (Commit, bool) {
	if len(ref) < 4 {
		return Commit{}, false
	}
	for i := len(r.commits) - 1; i >= 0; i-- {
		id := r.commits[i].ID
		if id == ref || (len(ref) <= len(id) && id[:len(ref)] == ref) {
			return r.commits[i], true
		}
	}
	return Commit{}, false
}

// PopCommit removes the most recent commit, whatever branch it belongs to,
// and stages its files again. This is the only operation that shortens the
// commit list.
func (r *Repository) PopCommit() (Commit, error) {
	last, ok := r.LastCommit()
	if !ok {
		return Commit{}, ErrNoCommitsYet
	}
	r.commits = r.commits[:len(r.commits)-1]
	r.Stage(last.Files...)
	return last, nil
}

// -- stash --

func (r *Repository) Stash() []StashEntry {
	out := make([]StashEntry, len(r.stash))
	for i, e := range r.stash {
		e.Files = slices.Clone(e.Files)
		out[i] = e
	}
	return out
}

// PushStash moves the staged files onto the stash stack.
func (r *Repository) PushStash(id, message string) (StashEntry, error) {
	if len(r.staged) == 0 {
		return StashEntry{}, ErrNothingStaged
	}
	e := StashEntry{
		ID:        id,
		Files:     slices.Clone(r.staged),
		Branch:    r.currentBranch,
		Message:   message,
		Timestamp: r.now(),
	}
	r.usedIDs[id] = struct{}{}
	r.stash = append(r.stash, e)
	r.staged = nil
	return e, nil
}

// PopStash removes the most recently pushed entry and stages its files.
func (r *Repository) PopStash() (StashEntry, error) {
	if len(r.stash) == 0 {
		return StashEntry{}, ErrStashEmpty
	}
	e := r.stash[len(r.stash)-1]
	r.stash = r.stash[:len(r.stash)-1]
	r.Stage(e.Files...)
	return e, nil
}

// ClearStash drops every stash entry and returns how many there were.
func (r *Repository) ClearStash() (int, error) {
	if len(r.stash) == 0 {
		return 0, ErrStashEmpty
	}
	n := len(r.stash)
	r.stash = nil
	return n, nil
}

// -- remotes --

func (r *Repository) Remotes() []Remote {
	return slices.Clone(r.remotes)
}

func (r *Repository) Remote(name string) (Remote, bool) {
	for _, rm := range r.remotes {
		if rm.Name == name {
			return rm, true
		}
	}
	return Remote{}, false
}

func (r *Repository) AddRemote(name, url string) error {
	if name == "" || url == "" {
		return ErrMissingArgument
	}
	if _, ok := r.Remote(name); ok {
		return ErrRemoteExists
	}
	r.remotes = append(r.remotes, Remote{Name: name, URL: url})
	return nil
}

// Snapshot returns a deep copy suitable for JSON encoding.
func (r *Repository) Snapshot() Snapshot {
	return Snapshot{
		Initialized:   r.initialized,
		Staged:        r.Staged(),
		Branches:      r.Branches(),
		CurrentBranch: r.currentBranch,
		Commits:       r.Commits(),
		Stash:         r.Stash(),
		Remotes:       r.Remotes(),
	}
}

// Preset builds an initialized repository with the given branches, used by
// the demo timeline.
func Preset(branches ...string) *Repository {
	r := NewRepository()
	r.initialized = true
	for _, b := range branches {
		_ = r.CreateBranch(b)
	}
	return r
}
