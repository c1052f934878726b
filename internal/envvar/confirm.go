package envvar

// Impact is the severity of a mutation, used to decide whether to prompt.
type Impact int

const (
	ImpactLow Impact = iota
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactLow:
		return "low"
	case ImpactMedium:
		return "medium"
	default:
		return "high"
	}
}

// impactOf returns the severity of mutating a variable in scope. Persisted
// scopes outlive the process and are High.
func impactOf(scope Scope) Impact {
	if scope == Process {
		return ImpactMedium
	}
	return ImpactHigh
}

// Prompt is a pending mutation awaiting confirmation.
type Prompt struct {
	// Message describes the mutation, possibly over several lines.
	Message string

	// Impact of performing it.
	Impact Impact
}

// Confirmer asks whether a mutation should go ahead. Declining is not an error.
type Confirmer interface {
	Confirm(p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(p Prompt) (bool, error)

func (f ConfirmFunc) Confirm(p Prompt) (bool, error) {
	return f(p)
}
