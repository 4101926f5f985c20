package views

// Kind identifies which variant a State holds.
type Kind int

const (
	KindLoading Kind = iota
	KindReady
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindReady:
		return "ready"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the lifecycle of a list view: Loading, Ready with data, or Error
// with a message. The zero value is Loading.
type State[T any] struct {
	kind    Kind
	data    T
	message string
}

func Loading[T any]() State[T] {
	return State[T]{kind: KindLoading}
}

func Ready[T any](data T) State[T] {
	return State[T]{kind: KindReady, data: data}
}

func Failed[T any](message string) State[T] {
	return State[T]{kind: KindError, message: message}
}

func (s State[T]) Kind() Kind {
	return s.kind
}

// Data returns the loaded data; ok is false unless the state is Ready.
func (s State[T]) Data() (data T, ok bool) {
	if s.kind != KindReady {
		return data, false
	}
	return s.data, true
}

// Message returns the failure message; ok is false unless the state is Error.
func (s State[T]) Message() (string, bool) {
	if s.kind != KindError {
		return "", false
	}
	return s.message, true
}
