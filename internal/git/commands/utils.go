package commands

import (
	"strconv"
	"strings"

	"github.com/kurobon/gitbttf/internal/state"
)

// Shared utilities for commands

// placeholderFiles is what "add ." stages.
var placeholderFiles = []string{"archivo1.txt", "archivo2.txt"}

const defaultCommitMessage = "Changes committed"

func stripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

// commitMessage resolves the message of "commit": the text after -m, else the
// non-flag arguments, else a fixed fallback. ok is false when -m has no value.
func commitMessage(args []string) (msg string, ok bool) {
	for i, a := range args {
		if a == "-m" || a == "--message" {
			rest := args[i+1:]
			if len(rest) == 0 {
				return "", false
			}
			msg = stripQuotes(strings.Join(rest, " "))
			if msg == "" {
				return "", false
			}
			return msg, true
		}
	}

	var words []string
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			words = append(words, a)
		}
	}
	if msg = stripQuotes(strings.Join(words, " ")); msg != "" {
		return msg, true
	}
	return defaultCommitMessage, true
}

// positional returns the arguments that are not flags.
func positional(args []string) []string {
	var out []string
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	return out
}

func hasFlag(args []string, flags ...string) bool {
	for _, a := range args {
		for _, f := range flags {
			if a == f {
				return true
			}
		}
	}
	return false
}

// headOffset parses "head", "head~N" and "head^" (input is lowercased).
func headOffset(ref string) (int, bool) {
	switch ref {
	case "head", "@":
		return 0, true
	case "head^":
		return 1, true
	}
	n, found := strings.CutPrefix(ref, "head~")
	if !found {
		return 0, false
	}
	if n == "" {
		return 1, true
	}
	v, err := strconv.Atoi(n)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// resolveCommit finds a commit by HEAD-relative ref, branch name or id prefix.
func resolveCommit(repo *state.Repository, ref string) (state.Commit, bool) {
	if off, ok := headOffset(ref); ok {
		commits := repo.Commits()
		idx := len(commits) - 1 - off
		if idx < 0 {
			return state.Commit{}, false
		}
		return commits[idx], true
	}
	if repo.HasBranch(ref) {
		return repo.LastCommitOn(ref)
	}
	return repo.FindCommit(ref)
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
