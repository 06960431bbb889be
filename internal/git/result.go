package git

import "fmt"

// Severity classifies a transcript line.
type Severity string

const (
	SeverityDefault Severity = "default"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityCommand Severity = "command"
)

// Line is one line of console output.
type Line struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Result is everything a command produced. Lines are never retracted once
// emitted.
type Result struct {
	Kind    Kind     `json:"-"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Lines   []Line   `json:"lines"`
	Effects []Effect `json:"effects,omitempty"`
	// Err is the taxonomy error (see state.Err*) when the command failed.
	Err error `json:"-"`
	// ClearTranscript asks the output sink to drop everything shown so far
	// before rendering Lines.
	ClearTranscript bool `json:"clear,omitempty"`
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{}
}

// OK reports whether the command succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

func (r *Result) add(sev Severity, format string, a []any) *Result {
	text := format
	if len(a) > 0 {
		text = fmt.Sprintf(format, a...)
	}
	r.Lines = append(r.Lines, Line{Text: text, Severity: sev})
	return r
}

func (r *Result) Plain(format string, a ...any) *Result {
	return r.add(SeverityDefault, format, a)
}

func (r *Result) Success(format string, a ...any) *Result {
	return r.add(SeveritySuccess, format, a)
}

func (r *Result) Warn(format string, a ...any) *Result {
	return r.add(SeverityWarning, format, a)
}

func (r *Result) Error(format string, a ...any) *Result {
	return r.add(SeverityError, format, a)
}

func (r *Result) Info(format string, a ...any) *Result {
	return r.add(SeverityInfo, format, a)
}

// Emit queues a graph notification.
func (r *Result) Emit(e Effect) *Result {
	r.Effects = append(r.Effects, e)
	return r
}

// Texts returns the text of every line, handy for assertions and plain
// terminals.
func (r *Result) Texts() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}
