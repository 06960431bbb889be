package git

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitbttf/internal/state"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input        string
		expectedName string
		expectedArgs []string
	}{
		{"git status", "status", []string{"status"}},
		{"  GIT   Status  ", "status", []string{"status"}},
		{"status", "status", []string{"status"}},
		{`git commit -m "Hello World"`, "commit", []string{"commit", "-m", `"hello`, `world"`}},
		{"git checkout -b 1955", "checkout", []string{"checkout", "-b", "1955"}},
		{"git --help", "help", []string{"help"}},
		{"git", "help", []string{"help"}},
		{"ayuda", "ayuda", []string{"ayuda"}},
		{"", "", nil},
		{"   ", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, args := ParseCommand(tt.input)
			assert.Equal(t, tt.expectedName, name)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestLookupKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := LookupKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	k, ok := LookupKind("ayuda")
	assert.True(t, ok)
	assert.Equal(t, KindHelp, k)

	k, ok = LookupKind("pista")
	assert.True(t, ok)
	assert.Equal(t, KindHint, k)

	_, ok = LookupKind("frobnicate")
	assert.False(t, ok)
}

func TestRequiresRepo(t *testing.T) {
	for _, k := range []Kind{KindInit, KindHelp, KindClear, KindHint} {
		assert.False(t, k.RequiresRepo(), k.String())
	}
	for _, k := range []Kind{KindStatus, KindAdd, KindCommit, KindLog, KindPull, KindRemote} {
		assert.True(t, k.RequiresRepo(), k.String())
	}
}

type funcCommand func(env *Env, args []string) (*Result, error)

func (f funcCommand) Execute(_ context.Context, env *Env, args []string) (*Result, error) {
	return f(env, args)
}

func (f funcCommand) Help() string { return "test command" }

// useCommand swaps the handler for kind during one test.
func useCommand(t *testing.T, kind Kind, f funcCommand) {
	t.Helper()
	prev, had := registry[kind]
	RegisterCommand(kind, func() Command { return f })
	t.Cleanup(func() {
		if had {
			registry[kind] = prev
		} else {
			delete(registry, kind)
		}
	})
}

// flakyGraph fails Commit with err for the first failures calls.
type flakyGraph struct {
	NopGraph
	err      error
	failures int
	calls    int
}

func (g *flakyGraph) Commit(string) error {
	g.calls++
	if g.calls <= g.failures {
		return g.err
	}
	return nil
}

func newTestInterpreter(opts ...Option) *Interpreter {
	base := []Option{
		WithRandom(state.NewSeededRandom(1)),
		WithGraphRetry(func() backoff.BackOff { return &backoff.ZeroBackOff{} }, 3),
		WithLogger(log.New(io.Discard)),
	}
	return NewInterpreter(append(base, opts...)...)
}

func TestExecuteUnknownCommand(t *testing.T) {
	in := newTestInterpreter()
	res := in.Execute(context.Background(), "git frobnicate now")

	require.Len(t, res.Lines, 1)
	assert.Equal(t, SeverityError, res.Lines[0].Severity)
	assert.Contains(t, res.Lines[0].Text, "frobnicate")
	assert.ErrorIs(t, res.Err, state.ErrUnknownCommand)
	assert.Empty(t, res.Effects)
}

func TestExecuteEmptyInput(t *testing.T) {
	in := newTestInterpreter()
	res := in.Execute(context.Background(), "   ")
	assert.Empty(t, res.Lines)
	assert.NoError(t, res.Err)
}

func TestExecuteRequiresRepository(t *testing.T) {
	called := false
	useCommand(t, KindAdd, func(*Env, []string) (*Result, error) {
		called = true
		return NewResult(), nil
	})

	in := newTestInterpreter()
	res := in.Execute(context.Background(), "git add .")

	assert.False(t, called)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, Line{Text: "fatal: not a git repository", Severity: SeverityError}, res.Lines[0])
	assert.ErrorIs(t, res.Err, state.ErrNotARepository)
}

func TestCommandErrorIsRenderedFirst(t *testing.T) {
	useCommand(t, KindStatus, func(*Env, []string) (*Result, error) {
		res := NewResult().Info("should come after")
		res.Emit(CommitOnCurrent("never drawn"))
		return res, Warning(state.ErrNothingStaged, "nothing to do").WithHint("Tip: try again")
	})

	graph := &flakyGraph{}
	in := newTestInterpreter(WithGraph(graph))
	in.Repository().Init()
	res := in.Execute(context.Background(), "status")

	assert.Equal(t, []string{"nothing to do", "Tip: try again", "should come after"}, res.Texts())
	assert.Equal(t, SeverityWarning, res.Lines[0].Severity)
	assert.ErrorIs(t, res.Err, state.ErrNothingStaged)
	assert.Empty(t, res.Effects)
	assert.Zero(t, graph.calls)
}

func TestPlainErrorsBecomeErrorLines(t *testing.T) {
	useCommand(t, KindStatus, func(*Env, []string) (*Result, error) {
		return nil, errors.New("boom")
	})
	in := newTestInterpreter()
	in.Repository().Init()
	res := in.Execute(context.Background(), "status")

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "error: boom", res.Lines[0].Text)
	assert.Equal(t, SeverityError, res.Lines[0].Severity)
}

func commitEffectCommand(env *Env, _ []string) (*Result, error) {
	env.Repo.AppendCommit(env.Repo.NewID(env.Rand), "msg", nil)
	return NewResult().Success("done").Emit(CommitOnCurrent("msg")), nil
}

func TestGraphNotReadyIsRetriedWithoutRepeatingMutation(t *testing.T) {
	useCommand(t, KindStatus, commitEffectCommand)
	graph := &flakyGraph{err: ErrGraphNotReady, failures: 2}
	in := newTestInterpreter(WithGraph(graph))
	in.Repository().Init()

	res := in.Execute(context.Background(), "status")

	assert.Equal(t, 3, graph.calls)
	assert.Equal(t, 1, in.Repository().CommitCount())
	assert.Equal(t, []string{"done"}, res.Texts())
}

func TestGraphRetryIsBounded(t *testing.T) {
	useCommand(t, KindStatus, commitEffectCommand)
	graph := &flakyGraph{err: ErrGraphNotReady, failures: 100}
	in := newTestInterpreter(WithGraph(graph))
	in.Repository().Init()

	res := in.Execute(context.Background(), "status")

	assert.Equal(t, 3, graph.calls)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, SeverityWarning, res.Lines[1].Severity)
	assert.NoError(t, res.Err, "a graph failure is not a command failure")
	assert.Equal(t, 1, in.Repository().CommitCount(), "state is not rolled back")
}

func TestGraphPermanentFailureIsNotRetried(t *testing.T) {
	useCommand(t, KindStatus, commitEffectCommand)
	graph := &flakyGraph{err: errors.New("broken"), failures: 100}
	in := newTestInterpreter(WithGraph(graph))
	in.Repository().Init()

	res := in.Execute(context.Background(), "status")

	assert.Equal(t, 1, graph.calls)
	assert.Equal(t, SeverityWarning, res.Lines[len(res.Lines)-1].Severity)
}

func TestResetReplacesRepository(t *testing.T) {
	in := newTestInterpreter()
	in.Repository().Init()
	in.Repository().Stage("a.txt")

	res := in.Reset(context.Background())

	assert.True(t, res.ClearTranscript)
	assert.False(t, in.Repository().Initialized())
	assert.Empty(t, in.Repository().Staged())
}

func TestLoadDemo(t *testing.T) {
	in := newTestInterpreter()
	res := in.LoadDemo(context.Background())

	assert.True(t, res.ClearTranscript)
	assert.True(t, in.Repository().Initialized())
	assert.Equal(t, append([]string{"main"}, DemoBranches...), in.Repository().Branches())
}
