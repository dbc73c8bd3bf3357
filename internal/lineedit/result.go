package lineedit

// ResultKind distinguishes typed text from a cancelled session.
type ResultKind int

const (
	ResultText ResultKind = iota
	ResultExit
)

// Result is the outcome of a finished editing session.
type Result struct {
	Kind ResultKind
	Text string // Non-empty after trimming when Kind is ResultText
}

// Text returns a successful result carrying s.
func Text(s string) Result {
	return Result{Kind: ResultText, Text: s}
}

// Exit returns the result of a session the user cancelled.
func Exit() Result {
	return Result{Kind: ResultExit}
}

// IsExit reports whether the user cancelled.
func (r Result) IsExit() bool {
	return r.Kind == ResultExit
}
