package domain

// Outcome categorizes the result of dispatching one invocation.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNotFound
	OutcomeUsage
	OutcomeFailed
	OutcomeInterrupted
	OutcomeExit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUsage:
		return "usage"
	case OutcomeFailed:
		return "failed"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the loop.
func (o Outcome) Terminal() bool {
	return o == OutcomeExit
}
