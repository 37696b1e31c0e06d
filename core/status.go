package core

import "fmt"

// Transitions lists, per status, the statuses it may move to.
// Staying in the same status is always allowed.
type Transitions[S ~string] map[S][]S

func (t Transitions[S]) Allowed(from, to S) bool {
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Check returns a *ValidationError on "estado" when from -> to is not allowed.
func (t Transitions[S]) Check(from, to S) error {
	if t.Allowed(from, to) {
		return nil
	}
	return NewValidationError(ErrInvalidData, FieldError{
		Field: "estado",
		Error: fmt.Sprintf("No se puede cambiar el estado de %s a %s", from, to),
	})
}

// OneOf reports whether s is one of the given values.
func OneOf[S ~string](s S, values ...S) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
