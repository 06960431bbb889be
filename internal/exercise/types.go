package exercise

// Exercise is one guided step of a screen, loaded from YAML.
type Exercise struct {
	ID              int        `yaml:"id" json:"id"`
	Title           string     `yaml:"title" json:"title"`
	Description     string     `yaml:"description" json:"description"`
	ExpectedCommand string     `yaml:"expected_command" json:"expectedCommand"`
	Hint            string     `yaml:"hint" json:"hint"`
	Hints           []string   `yaml:"hints" json:"hints,omitempty"`
	SuccessMessage  string     `yaml:"success_message" json:"successMessage"`
	Strict          bool       `yaml:"strict" json:"strict,omitempty"` // commit message text must match
	Validation      Validation `yaml:"validation" json:"validation"`
}

// Validation describes the repository state expected after the exercise.
// Zero values are not checked.
type Validation struct {
	Initialized   *bool  `yaml:"initialized" json:"initialized,omitempty"`
	CurrentBranch string `yaml:"current_branch" json:"currentBranch,omitempty"`
	BranchCount   int    `yaml:"branch_count" json:"branchCount,omitempty"`
	HasBranch     string `yaml:"has_branch" json:"hasBranch,omitempty"`
	CommitCount   int    `yaml:"commit_count" json:"commitCount,omitempty"` // minimum
}

// Screen groups the exercises of one level.
type Screen struct {
	ID        int        `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	Title     string     `yaml:"title" json:"title"`
	Exercises []Exercise `yaml:"exercises" json:"exercises"`
}

// hintList falls back to generated hints when none are configured.
func (e Exercise) hintList() []string {
	if len(e.Hints) > 0 {
		return e.Hints
	}
	verb := e.ExpectedCommand
	if fields := splitCommand(e.ExpectedCommand); len(fields) > 0 {
		verb = fields[0]
	}
	var hints []string
	if e.Hint != "" {
		hints = append(hints, e.Hint)
	}
	return append(hints,
		"El comando que necesitas es: git "+verb,
		"Comando completo: "+e.ExpectedCommand,
	)
}
