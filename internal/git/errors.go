package git

// CommandError is a precondition failure detected by a handler. The
// interpreter renders Message as the first line of the result, followed by
// Hint when present.
type CommandError struct {
	Err      error
	Severity Severity
	Message  string
	Hint     string
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// WithHint attaches a corrective tip line.
func (e *CommandError) WithHint(hint string) *CommandError {
	e.Hint = hint
	return e
}

// Fatal builds an error-severity failure.
func Fatal(err error, message string) *CommandError {
	return &CommandError{Err: err, Severity: SeverityError, Message: message}
}

// Warning builds a recoverable, warning-severity failure.
func Warning(err error, message string) *CommandError {
	return &CommandError{Err: err, Severity: SeverityWarning, Message: message}
}
