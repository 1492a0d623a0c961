package reduce

import "fmt"

// Kind distinguishes the fatal failure modes the reducer can raise (§7
// ReductionError taxonomy).
type Kind int8

const (
	UnresolvedVariable Kind = iota
	CyclicDemand
	OverApplication
	TypeMismatch
	IllFormedIf0
	DivisionByZero
)

// Error is a fatal ReductionError: every invariant violation in the reducer
// terminates with one of these rather than any undefined behavior (§9).
// Construct holds the token sequence of the offending expression — the
// reduction-time analogue of a parse error's line number (§7 "the offending
// construct ... token sequence for reduction").
type Error struct {
	Kind      Kind
	Msg       string
	Construct string
}

func (e *Error) Error() string {
	if e.Construct == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Construct)
}

func typeError(construct, format string, args ...interface{}) error {
	return &Error{Kind: TypeMismatch, Msg: fmt.Sprintf(format, args...), Construct: construct}
}
