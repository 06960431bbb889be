package state

import "errors"

// Error taxonomy of the simulated repository. None of these ever escape the
// interpreter as a Go error; they are rendered as transcript lines.
var (
	ErrNotARepository       = errors.New("not a git repository")
	ErrAlreadyInitialized   = errors.New("repository already initialized")
	ErrNothingStaged        = errors.New("nothing staged")
	ErrMissingCommitMessage = errors.New("missing commit message")
	ErrBranchAlreadyExists  = errors.New("branch already exists")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrNoCommitsYet         = errors.New("no commits yet")
	ErrStashEmpty           = errors.New("stash is empty")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrRemoteExists         = errors.New("remote already exists")
	ErrMissingArgument      = errors.New("missing argument")
)
