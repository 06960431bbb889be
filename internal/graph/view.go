package graph

import (
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// State represents the serialized graph for the frontend
type State struct {
	Initialized bool              `json:"initialized"`
	HEAD        Head              `json:"HEAD"`
	Branches    map[string]string `json:"branches"`
	// BranchOrder lists branches in the order they were drawn.
	BranchOrder []string `json:"branchOrder"`
	Commits     []Commit `json:"commits"`
}

type Head struct {
	Type string `json:"type"` // "branch" or "none"
	Ref  string `json:"ref,omitempty"`
	ID   string `json:"id,omitempty"`
}

type Commit struct {
	ID             string `json:"id"`
	Message        string `json:"message"`
	ParentID       string `json:"parentId"`
	SecondParentID string `json:"secondParentId"`
	Branch         string `json:"branch"`
	Timestamp      string `json:"timestamp"`
}

// State builds the view model, newest commit first.
func (g *Graph) State() *State {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := &State{
		Branches: make(map[string]string),
		Commits:  []Commit{},
		HEAD:     Head{Type: "none"},
	}
	if g.repo == nil {
		return st
	}
	st.Initialized = true
	st.BranchOrder = append([]string(nil), g.order...)

	if branch, err := g.currentBranch(); err == nil {
		st.HEAD = Head{Type: "branch", Ref: branch}
		if h, err := g.tip(branch); err == nil {
			st.HEAD.ID = h.String()
		}
	}

	var queue []plumbing.Hash
	for _, name := range g.order {
		h, err := g.tip(name)
		if err != nil {
			continue
		}
		st.Branches[name] = h.String()
		queue = append(queue, h)
	}

	// BFS from every branch tip
	seen := make(map[plumbing.Hash]bool)
	var collected []*object.Commit
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true

		c, err := g.repo.CommitObject(current)
		if err != nil {
			continue
		}
		collected = append(collected, c)
		queue = append(queue, c.ParentHashes...)
	}

	sort.SliceStable(collected, func(i, j int) bool {
		ti, tj := collected[i].Committer.When, collected[j].Committer.When
		if ti.Equal(tj) {
			return collected[i].Hash.String() > collected[j].Hash.String()
		}
		return ti.After(tj)
	})

	for _, c := range collected {
		view := Commit{
			ID:        c.Hash.String(),
			Message:   c.Message,
			Branch:    g.owner[c.Hash],
			Timestamp: c.Committer.When.Format(time.RFC3339),
		}
		if len(c.ParentHashes) > 0 {
			view.ParentID = c.ParentHashes[0].String()
		}
		if len(c.ParentHashes) > 1 {
			view.SecondParentID = c.ParentHashes[1].String()
		}
		st.Commits = append(st.Commits, view)
	}
	return st
}
