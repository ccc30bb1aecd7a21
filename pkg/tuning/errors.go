package tuning

import "errors"

// Kind classifies why a tuning run stopped.
type Kind int

const (
	KindMapping Kind = iota + 1
	KindCorpus
	KindPolicy
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindCorpus:
		return "corpus"
	case KindPolicy:
		return "policy"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is returned by Engine.Run. Its message is the underlying error's
// message, unchanged.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a run error, or false when err did not come
// from a run.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
