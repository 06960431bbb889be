// Package graph mirrors console activity into an in-memory go-git repository
// so the timeline can be rendered as a real commit graph.
package graph

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/kurobon/gitbttf/internal/git"
)

const mainBranch = "main"

var (
	ErrUnknownBranch = errors.New("branch not drawn")
	ErrBranchDrawn   = errors.New("branch already drawn")
)

// Graph is a git.GraphSink backed by go-git. Every drawn commit has an empty
// tree; only messages, parents and refs matter.
type Graph struct {
	mu sync.Mutex

	repo *gogit.Repository
	// owner records the branch each commit was drawn on.
	owner map[plumbing.Hash]string
	// order keeps branch creation order for stable output.
	order []string

	epoch time.Time
	tick  int
}

var _ git.GraphSink = (*Graph)(nil)
var _ git.DemoLoader = (*Graph)(nil)

// New returns an empty graph. Nothing can be drawn before Initialize.
func New() *Graph {
	return &Graph{
		owner: make(map[plumbing.Hash]string),
		epoch: time.Date(1985, time.October, 26, 1, 21, 0, 0, time.UTC),
	}
}

// signature hands out strictly increasing timestamps so commit order in the
// view never depends on the wall clock.
func (g *Graph) signature() *object.Signature {
	g.tick++
	return &object.Signature{
		Name:  "Doc Brown",
		Email: "doc@hillvalley.example",
		When:  g.epoch.Add(time.Duration(g.tick) * time.Minute),
	}
}

// Initialize starts a fresh repository with an initial commit on main.
func (g *Graph) Initialize() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initLocked()
}

func (g *Graph) initLocked() error {
	repo, err := gogit.InitWithOptions(memory.NewStorage(), memfs.New(), gogit.InitOptions{
		DefaultBranch: plumbing.NewBranchReferenceName(mainBranch),
	})
	if err != nil {
		return fmt.Errorf("init graph repository: %w", err)
	}
	g.repo = repo
	g.owner = make(map[plumbing.Hash]string)
	g.order = []string{mainBranch}
	g.tick = 0

	if _, err := g.commitLocked("Initial commit", nil); err != nil {
		return err
	}
	return nil
}

func (g *Graph) ready() error {
	if g.repo == nil {
		return git.ErrGraphNotReady
	}
	return nil
}

// currentBranch is the short name HEAD points at.
func (g *Graph) currentBranch() (string, error) {
	ref, err := g.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	return ref.Target().Short(), nil
}

func (g *Graph) tip(branch string) (plumbing.Hash, error) {
	ref, err := g.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrUnknownBranch, branch)
		}
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

// commitLocked draws a commit on the branch HEAD points at. extraParents are
// added after the current tip.
func (g *Graph) commitLocked(message string, extraParents []plumbing.Hash) (plumbing.Hash, error) {
	branch, err := g.currentBranch()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	w, err := g.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("graph worktree: %w", err)
	}

	opts := &gogit.CommitOptions{
		Author:            g.signature(),
		AllowEmptyCommits: true,
	}
	if len(extraParents) > 0 {
		head, err := g.tip(branch)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		opts.Parents = append([]plumbing.Hash{head}, extraParents...)
	}
	opts.Committer = opts.Author

	hash, err := w.Commit(fmt.Sprintf("[%s] %s", branch, message), opts)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("draw commit on %s: %w", branch, err)
	}
	g.owner[hash] = branch
	return hash, nil
}

func (g *Graph) setHEAD(branch string) error {
	ref := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	return g.repo.Storer.SetReference(ref)
}

// Commit draws a commit on the current branch.
func (g *Graph) Commit(message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(); err != nil {
		return err
	}
	_, err := g.commitLocked(message, nil)
	return err
}

// CreateBranch forks name from the current tip and draws a marker commit on
// it. HEAD does not move.
func (g *Graph) CreateBranch(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(); err != nil {
		return err
	}
	return g.branchLocked(name)
}

func (g *Graph) branchLocked(name string) error {
	if _, err := g.tip(name); err == nil {
		return fmt.Errorf("%w: %s", ErrBranchDrawn, name)
	}
	current, err := g.currentBranch()
	if err != nil {
		return err
	}
	from, err := g.tip(current)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), from)
	if err := g.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("create branch ref %s: %w", name, err)
	}
	g.order = append(g.order, name)

	if err := g.setHEAD(name); err != nil {
		return err
	}
	_, commitErr := g.commitLocked(fmt.Sprintf("✨ Rama '%s' creada", name), nil)
	if err := g.setHEAD(current); err != nil {
		return err
	}
	return commitErr
}

// Checkout moves HEAD to a drawn branch.
func (g *Graph) Checkout(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(); err != nil {
		return err
	}
	if _, err := g.tip(name); err != nil {
		return err
	}
	return g.setHEAD(name)
}

// Merge draws a two-parent commit joining source into the current branch.
func (g *Graph) Merge(source string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(); err != nil {
		return err
	}
	return g.mergeLocked(source)
}

func (g *Graph) mergeLocked(source string) error {
	current, err := g.currentBranch()
	if err != nil {
		return err
	}
	if current == source {
		return fmt.Errorf("cannot merge %s into itself", source)
	}
	src, err := g.tip(source)
	if err != nil {
		return err
	}
	_, err = g.commitLocked(fmt.Sprintf("🔀 Merge '%s' → '%s'", source, current), []plumbing.Hash{src})
	return err
}

// Reset drops the drawing entirely.
func (g *Graph) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.repo = nil
	g.owner = make(map[plumbing.Hash]string)
	g.order = nil
	g.tick = 0
	return nil
}

// Initialized reports whether anything has been drawn.
func (g *Graph) Initialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.repo != nil
}
