package git

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"

	"github.com/kurobon/gitbttf/internal/state"
)

// DemoBranches are the timelines of the "Back to the Future" demo.
var DemoBranches = []string{
	"clara-viva",
	"biff-paradise",
	"marty-calendario",
	"marty-sin-papas",
	"familia-feliz",
}

const (
	defaultGraphTries = 5
	defaultPullChance = 0.7
)

// Interpreter owns one repository and turns input lines into results. It is
// not safe for concurrent use; callers serialize access per session.
type Interpreter struct {
	env        Env
	graph      GraphSink
	newBackOff func() backoff.BackOff
	graphTries uint
	logger     *log.Logger
}

type Option func(*Interpreter)

// WithGraph attaches a visualization sink.
func WithGraph(g GraphSink) Option {
	return func(in *Interpreter) {
		if g != nil {
			in.graph = g
		}
	}
}

// WithRandom injects the source used for ids and simulated outcomes.
func WithRandom(r state.Random) Option {
	return func(in *Interpreter) { in.env.Rand = r }
}

// WithHints connects the exercise hint provider.
func WithHints(h HintProvider) Option {
	return func(in *Interpreter) { in.env.Hints = h }
}

func WithPullChance(p float64) Option {
	return func(in *Interpreter) { in.env.PullChance = p }
}

// WithGraphRetry bounds how a not-ready graph is retried.
func WithGraphRetry(newBackOff func() backoff.BackOff, tries uint) Option {
	return func(in *Interpreter) {
		in.newBackOff = newBackOff
		if tries > 0 {
			in.graphTries = tries
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

// NewInterpreter returns an interpreter over a fresh, uninitialized
// repository.
func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{
		env: Env{
			Repo:       state.NewRepository(),
			Rand:       state.NewRandom(),
			PullChance: defaultPullChance,
		},
		graph: NopGraph{},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			return b
		},
		graphTries: defaultGraphTries,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Repository exposes the state for read-only inspection.
func (in *Interpreter) Repository() *state.Repository {
	return in.env.Repo
}

// Graph returns the attached sink.
func (in *Interpreter) Graph() GraphSink {
	return in.graph
}

// SetHints swaps the hint provider, nil disables hints.
func (in *Interpreter) SetHints(h HintProvider) {
	in.env.Hints = h
}

// Execute runs one input line. It never fails: every problem is reported as
// a line of the returned result.
func (in *Interpreter) Execute(ctx context.Context, input string) *Result {
	name, args := ParseCommand(input)
	if name == "" {
		return NewResult()
	}

	kind, ok := LookupKind(name)
	cmd, registered := Lookup(kind)
	if !ok || !registered {
		res := &Result{Command: name, Args: args, Err: state.ErrUnknownCommand}
		return res.Error("git: '%s' no es un comando git válido", name)
	}

	if kind.RequiresRepo() && !in.env.Repo.Initialized() {
		res := &Result{Kind: kind, Command: name, Args: args, Err: state.ErrNotARepository}
		return res.Error("fatal: not a git repository")
	}

	res, err := cmd.Execute(ctx, &in.env, args)
	if res == nil {
		res = NewResult()
	}
	res.Kind, res.Command, res.Args = kind, name, args
	if err != nil {
		return failed(res, err)
	}

	in.reflect(ctx, res)
	return res
}

// failed puts the precondition violation first, followed by its hint.
func failed(res *Result, err error) *Result {
	var cerr *CommandError
	if !errors.As(err, &cerr) {
		cerr = Fatal(err, "error: "+err.Error())
	}
	lines := []Line{{Text: cerr.Message, Severity: cerr.Severity}}
	if cerr.Hint != "" {
		lines = append(lines, Line{Text: cerr.Hint, Severity: SeverityInfo})
	}
	res.Lines = append(lines, res.Lines...)
	res.Effects = nil
	res.Err = err
	return res
}

// reflect pushes the result's effects to the graph. State has already been
// mutated; a graph failure only adds a warning.
func (in *Interpreter) reflect(ctx context.Context, res *Result) {
	for _, effect := range res.Effects {
		if err := in.applyWithRetry(ctx, effect); err != nil {
			in.logger.Warn("graph update failed", "op", effect.Op, "err", err)
			res.Warn("⚠️ No se pudo reflejar el cambio en el gráfico (%s)", effect.Op)
		}
	}
}

func (in *Interpreter) applyWithRetry(ctx context.Context, effect Effect) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := effect.Apply(in.graph)
		if err != nil && !errors.Is(err, ErrGraphNotReady) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(in.newBackOff()), backoff.WithMaxTries(in.graphTries))
	return err
}

// Reset replaces the repository wholesale and clears the graph.
func (in *Interpreter) Reset(ctx context.Context) *Result {
	in.env.Repo = state.NewRepository()
	res := &Result{ClearTranscript: true}
	res.Success("🔄 Sistema reiniciado completamente")
	res.Info("✨ Canvas limpio - Listo para crear tu propio historial Git")
	res.Info("💡 Comienza con \"git init\" para crear un nuevo repositorio")
	res.Emit(ResetGraph())
	in.reflect(ctx, res)
	return res
}

// LoadDemo replaces the repository with the demo timelines.
func (in *Interpreter) LoadDemo(ctx context.Context) *Result {
	in.env.Repo = state.Preset(DemoBranches...)
	res := &Result{ClearTranscript: true}
	res.Success("🚗⚡ Demo \"Volver al Futuro\" cargado")
	res.Info("🎬 Puedes ver las líneas temporales de la película en el gráfico")
	res.Info("💡 Usa \"git branch\" para ver todas las ramas creadas")

	if demo, ok := in.graph.(DemoLoader); ok {
		if err := demo.LoadDemo(); err != nil {
			in.logger.Warn("demo graph failed", "err", err)
			res.Warn("⚠️ No se pudo dibujar el demo en el gráfico")
		}
	}
	return res
}
