package git

import (
	"errors"
	"fmt"
)

// ErrGraphNotReady is returned by a GraphSink that cannot render yet. It is
// the only graph error worth retrying.
var ErrGraphNotReady = errors.New("graph not ready")

// GraphSink is the visualization collaborator. Each call reports whether the
// change could be drawn; a failure never undoes the state change that caused
// it.
type GraphSink interface {
	Initialize() error
	Commit(message string) error
	CreateBranch(name string) error
	Checkout(name string) error
	Merge(source string) error
	Reset() error
}

// DemoLoader is implemented by sinks able to draw the demo timeline. The
// drawn branches must match DemoBranches.
type DemoLoader interface {
	LoadDemo() error
}

// EffectOp identifies a graph notification.
type EffectOp int

const (
	EffectInit EffectOp = iota
	EffectCommit
	EffectBranch
	EffectCheckout
	EffectMerge
	EffectReset
)

func (op EffectOp) String() string {
	switch op {
	case EffectInit:
		return "init"
	case EffectCommit:
		return "commit"
	case EffectBranch:
		return "branch"
	case EffectCheckout:
		return "checkout"
	case EffectMerge:
		return "merge"
	case EffectReset:
		return "reset"
	}
	return fmt.Sprintf("EffectOp(%d)", int(op))
}

// MarshalText makes effects readable in JSON responses.
func (op EffectOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// Effect describes the visual change expected from a successful command.
type Effect struct {
	Op EffectOp `json:"op"`
	// Name is the branch involved (new branch, checkout target, merge source).
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

func InitGraph() Effect                { return Effect{Op: EffectInit} }
func CommitOnCurrent(msg string) Effect { return Effect{Op: EffectCommit, Message: msg} }
func CreateBranch(name string) Effect   { return Effect{Op: EffectBranch, Name: name} }
func CheckoutBranch(name string) Effect { return Effect{Op: EffectCheckout, Name: name} }
func MergeBranch(source string) Effect  { return Effect{Op: EffectMerge, Name: source} }
func ResetGraph() Effect                { return Effect{Op: EffectReset} }

// Apply sends the effect to a sink.
func (e Effect) Apply(g GraphSink) error {
	switch e.Op {
	case EffectInit:
		return g.Initialize()
	case EffectCommit:
		return g.Commit(e.Message)
	case EffectBranch:
		return g.CreateBranch(e.Name)
	case EffectCheckout:
		return g.Checkout(e.Name)
	case EffectMerge:
		return g.Merge(e.Name)
	case EffectReset:
		return g.Reset()
	}
	return fmt.Errorf("unknown graph effect %v", e.Op)
}

// NopGraph accepts every notification and draws nothing.
type NopGraph struct{}

func (NopGraph) Initialize() error         { return nil }
func (NopGraph) Commit(string) error       { return nil }
func (NopGraph) CreateBranch(string) error { return nil }
func (NopGraph) Checkout(string) error     { return nil }
func (NopGraph) Merge(string) error        { return nil }
func (NopGraph) Reset() error              { return nil }
