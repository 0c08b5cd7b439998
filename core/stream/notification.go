package stream

import "fmt"

// Kind tags a Notification.
type Kind uint8

const (
	// KindValue carries the next value of the sequence.
	KindValue Kind = iota
	// KindError terminates the sequence with an error.
	KindError
	// KindComplete terminates the sequence successfully.
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Notification is one of the three signals a subscription can deliver.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// ValueOf returns a value notification.
func ValueOf[T any](v T) Notification[T] {
	return Notification[T]{Kind: KindValue, Value: v}
}

// ErrorOf returns an error notification.
func ErrorOf[T any](err error) Notification[T] {
	return Notification[T]{Kind: KindError, Err: err}
}

// CompleteOf returns a completion notification.
func CompleteOf[T any]() Notification[T] {
	return Notification[T]{Kind: KindComplete}
}

// IsTerminal reports whether n ends a sequence.
func (n Notification[T]) IsTerminal() bool {
	return n.Kind == KindError || n.Kind == KindComplete
}

// Accept invokes the observer callback matching n. Missing callbacks are skipped.
func (n Notification[T]) Accept(obs Observer[T]) {
	switch n.Kind {
	case KindValue:
		if obs.Next != nil {
			obs.Next(n.Value)
		}
	case KindError:
		if obs.Error != nil {
			obs.Error(n.Err)
		}
	case KindComplete:
		if obs.Complete != nil {
			obs.Complete()
		}
	}
}

// EmitTo forwards n to an emitter.
func (n Notification[T]) EmitTo(e Emitter[T]) {
	switch n.Kind {
	case KindValue:
		e.Next(n.Value)
	case KindError:
		e.Error(n.Err)
	case KindComplete:
		e.Complete()
	}
}

func (n Notification[T]) String() string {
	switch n.Kind {
	case KindValue:
		return fmt.Sprintf("Value(%v)", n.Value)
	case KindError:
		return fmt.Sprintf("Error(%v)", n.Err)
	default:
		return n.Kind.String()
	}
}
