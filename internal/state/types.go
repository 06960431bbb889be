package state

import "time"

// DefaultBranch is the branch every repository starts on.
const DefaultBranch = "main"

// Commit is an immutable record created by commit, cherry-pick, revert or pull.
type Commit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Files     []string  `json:"files"`
	Branch    string    `json:"branch"`
	Timestamp time.Time `json:"timestamp"`
}

// StashEntry is a snapshot of the staged files set aside by stash push.
type StashEntry struct {
	ID        string    `json:"id"`
	Files     []string  `json:"files"`
	Branch    string    `json:"branch"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Remote is a cosmetic remote registration.
type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Snapshot is the serialized view of a Repository for the frontend.
type Snapshot struct {
	Initialized   bool         `json:"initialized"`
	Staged        []string     `json:"staged"`
	Branches      []string     `json:"branches"`
	CurrentBranch string       `json:"currentBranch"`
	Commits       []Commit     `json:"commits"`
	Stash         []StashEntry `json:"stash"`
	Remotes       []Remote     `json:"remotes"`
}
