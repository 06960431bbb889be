package exercise

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/state"
)

const (
	msgNoExercise     = "❌ No hay ejercicios activos"
	msgScreenComplete = "🎉 ¡Felicidades! Has completado todos los ejercicios de esta pantalla."
)

// Verdict is the outcome of comparing a command with the active exercise.
type Verdict struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Advance reports what Next moved to.
type Advance struct {
	Completed bool      `json:"completed"`
	Message   string    `json:"message"`
	Exercise  *Exercise `json:"exercise,omitempty"`
}

type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type Check struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

type StateReport struct {
	Valid   bool    `json:"valid"`
	Checks  []Check `json:"checks"`
	Message string  `json:"message"`
}

// Validator walks a sequence of exercises. It is not safe for concurrent
// use; the owning session serializes access.
type Validator struct {
	exercises []Exercise
	index     int
	hintLevel int
	hintsUsed int
	strict    bool
}

var _ git.HintProvider = (*Validator)(nil)

type Option func(*Validator)

// WithStrictMessages makes every commit exercise that names a message
// require that exact message.
func WithStrictMessages(strict bool) Option {
	return func(v *Validator) { v.strict = strict }
}

func NewValidator(exercises []Exercise, opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	v.SetExercises(exercises)
	return v
}

// SetExercises replaces the sequence and starts over.
func (v *Validator) SetExercises(exercises []Exercise) {
	v.exercises = append([]Exercise(nil), exercises...)
	v.Reset()
}

func (v *Validator) Reset() {
	v.index = 0
	v.hintLevel = 0
	v.hintsUsed = 0
}

// Current returns the active exercise.
func (v *Validator) Current() (Exercise, bool) {
	if v.index >= len(v.exercises) {
		return Exercise{}, false
	}
	return v.exercises[v.index], true
}

func (v *Validator) Complete() bool { return v.index >= len(v.exercises) }

// HintsUsed counts hints requested since the last SetExercises or Reset.
func (v *Validator) HintsUsed() int { return v.hintsUsed }

// Validate compares a typed command line with the active exercise.
func (v *Validator) Validate(input string) Verdict {
	ex, ok := v.Current()
	if !ok {
		return Verdict{Message: msgNoExercise}
	}

	actual := splitCommand(input)
	expected := splitCommand(ex.ExpectedCommand)
	if v.matches(actual, expected, ex.Strict) {
		return Verdict{Valid: true, Message: ex.SuccessMessage}
	}

	if len(actual) == 0 || len(expected) == 0 || actual[0] != expected[0] {
		verb := ""
		if len(expected) > 0 {
			verb = expected[0]
		}
		return Verdict{
			Message:    fmt.Sprintf("❌ Se esperaba el comando %q", verb),
			Suggestion: ex.Hint,
		}
	}
	return Verdict{
		Message:    "❌ Revisa los argumentos del comando",
		Suggestion: ex.Hint,
	}
}

func (v *Validator) matches(actual, expected []string, strict bool) bool {
	if len(expected) == 0 || len(actual) == 0 {
		return false
	}
	if actual[0] != expected[0] {
		return false
	}

	switch expected[0] {
	case "commit":
		if !slices.Contains(actual, "-m") {
			return false
		}
		if !strict && !v.strict {
			return true
		}
		want, ok := messageAfterFlag(expected)
		if !ok {
			return true
		}
		got, _ := messageAfterFlag(actual)
		return normalizeMessage(got) == normalizeMessage(want)

	case "branch", "checkout", "merge", "rebase":
		target := firstOperand(expected[1:])
		return target == "" || slices.Contains(actual[1:], target)

	case "remote":
		if len(expected) > 1 {
			return len(actual) > 1 && actual[1] == expected[1]
		}
		return true

	case "stash", "cherry-pick", "revert", "push", "add":
		return true
	}

	return strings.Join(actual, " ") == strings.Join(expected, " ")
}

// NextHint returns the next hint of the active exercise. Past the last one
// it keeps returning the last hint marked as final.
func (v *Validator) NextHint() (git.Hint, bool) {
	ex, ok := v.Current()
	if !ok {
		return git.Hint{}, false
	}
	hints := ex.hintList()
	v.hintsUsed++

	if v.hintLevel >= len(hints) {
		return git.Hint{
			Text:     "🎯 Última pista: " + hints[len(hints)-1],
			Final:    true,
			Expected: ex.ExpectedCommand,
		}, true
	}
	text := hints[v.hintLevel]
	v.hintLevel++
	return git.Hint{Text: fmt.Sprintf("💡 Pista %d/%d: %s", v.hintLevel, len(hints), text)}, true
}

// Next moves to the following exercise and resets the hint level.
func (v *Validator) Next() Advance {
	v.hintLevel = 0
	if v.index < len(v.exercises) {
		v.index++
	}
	if v.index >= len(v.exercises) {
		return Advance{Completed: true, Message: msgScreenComplete}
	}
	ex := v.exercises[v.index]
	return Advance{
		Message:  fmt.Sprintf("📝 Ejercicio %d/%d", v.index+1, len(v.exercises)),
		Exercise: &ex,
	}
}

func (v *Validator) Progress() Progress {
	p := Progress{Current: v.index, Total: len(v.exercises)}
	if p.Total > 0 {
		p.Percentage = (p.Current*100 + p.Total/2) / p.Total
	}
	return p
}

// ValidateRepoState checks a repository snapshot against the expected state.
func ValidateRepoState(snap state.Snapshot, want Validation) StateReport {
	var checks []Check
	if want.Initialized != nil {
		checks = append(checks, Check{"Repositorio inicializado", snap.Initialized == *want.Initialized})
	}
	if want.CurrentBranch != "" {
		checks = append(checks, Check{"Rama actual", snap.CurrentBranch == want.CurrentBranch})
	}
	if want.BranchCount > 0 {
		checks = append(checks, Check{"Número de ramas", len(snap.Branches) == want.BranchCount})
	}
	if want.HasBranch != "" {
		checks = append(checks, Check{
			fmt.Sprintf("Rama '%s' existe", want.HasBranch),
			slices.Contains(snap.Branches, want.HasBranch),
		})
	}
	if want.CommitCount > 0 {
		checks = append(checks, Check{"Número de commits", len(snap.Commits) >= want.CommitCount})
	}

	report := StateReport{Valid: true, Checks: checks, Message: "✅ El estado del repositorio es correcto"}
	var failed []string
	for _, c := range checks {
		if !c.Valid {
			failed = append(failed, c.Name)
		}
	}
	if len(failed) > 0 {
		report.Valid = false
		report.Message = "❌ Verificaciones fallidas: " + strings.Join(failed, ", ")
	}
	return report
}

// splitCommand tokenizes the way the interpreter does, without the leading git.
func splitCommand(input string) []string {
	_, parts := git.ParseCommand(input)
	return parts
}

func firstOperand(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

func messageAfterFlag(parts []string) (string, bool) {
	i := slices.Index(parts, "-m")
	if i < 0 || i == len(parts)-1 {
		return "", false
	}
	return strings.Join(parts[i+1:], " "), true
}

var quoteStripper = strings.NewReplacer(`"`, "", "'", "", "`", "", "“", "", "”", "", "‘", "", "’", "")

func normalizeMessage(s string) string {
	s = quoteStripper.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}
