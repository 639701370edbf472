package scheduling

import "fmt"

// ErrorKind discriminates scheduling failures. Every public operation
// translates these into the structured result rather than surfacing
// them as errors.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindOutOfHours ErrorKind = "outOfHours"
	KindOverflow   ErrorKind = "overflow"
	KindCapacity   ErrorKind = "capacity"
	KindNotFound   ErrorKind = "notFound"
)

type SchedulingError struct {
	Kind    ErrorKind
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewSchedulingError(kind ErrorKind, msg string) *SchedulingError {
	return &SchedulingError{Kind: kind, Message: msg}
}
