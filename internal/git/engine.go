package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitbttf/internal/state"
)

// Command defines the interface for all console commands.
type Command interface {
	Execute(ctx context.Context, env *Env, args []string) (*Result, error)
	Help() string
}

// CommandFactory allows creating new instances of commands
type CommandFactory func() Command

var registry = make(map[Kind]CommandFactory)

// RegisterCommand registers a command factory for a kind. Command packages
// call it from init so the dispatcher never needs to know them.
func RegisterCommand(kind Kind, factory CommandFactory) {
	registry[kind] = factory
}

// Lookup returns a fresh handler for kind.
func Lookup(kind Kind) (Command, bool) {
	factory, ok := registry[kind]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// MissingCommands lists kinds that have no registered handler.
func MissingCommands() []Kind {
	var missing []Kind
	for _, k := range Kinds() {
		if _, ok := registry[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// GetCommandHelp returns the help string for a command name or alias.
func GetCommandHelp(name string) (string, error) {
	kind, ok := LookupKind(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", state.ErrUnknownCommand, name)
	}
	cmd, ok := Lookup(kind)
	if !ok {
		return "", fmt.Errorf("%w: %s", state.ErrUnknownCommand, name)
	}
	return cmd.Help(), nil
}

// Hint is one step of the progressive help offered for the active exercise.
type Hint struct {
	Text string
	// Final is set once the most explicit hint has been reached.
	Final bool
	// Expected is the literal command the exercise wants.
	Expected string
}

// HintProvider hands out hints for the exercise in progress. ok is false when
// no exercise is active.
type HintProvider interface {
	NextHint() (hint Hint, ok bool)
}

// Env is what a handler may read and mutate.
type Env struct {
	Repo *state.Repository
	Rand state.Random
	// Hints is nil outside exercise mode.
	Hints HintProvider
	// PullChance is the probability that pull finds upstream changes.
	PullChance float64
}

// ParseCommand parses the raw input string and returns the resolved command
// name and arguments. Input is lowercased and a leading "git" is dropped.
// The returned args slice always starts with the command name
// (args[0] == cmdName).
func ParseCommand(input string) (string, []string) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return "", nil
	}
	if parts[0] == "git" {
		if len(parts) == 1 {
			return "help", []string{"help"}
		}
		parts = parts[1:]
	}
	switch parts[0] {
	case "-h", "--help":
		return "help", []string{"help"}
	}
	return parts[0], parts
}
