package coach

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for blank or malformed user input.
	// The session is left unchanged.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when an operation requires an existing session
	// and none is persisted under the given ID.
	ErrNotFound = errors.New("session not found")

	// ErrWrongStage is returned when an operation is not valid in the
	// session's current stage.
	ErrWrongStage = errors.New("operation not valid in current stage")

	// ErrBusy is returned when another operation against the same session
	// is still in flight. Callers should retry after the current one settles.
	ErrBusy = errors.New("session is busy")
)

// GenerationError wraps a failed or unparseable generator call.
//
// For recommendation generation it is advisory: the session still advances to
// the chat stage with an empty recommendation set and the committed session is
// returned alongside the error. For roadmap generation it is blocking: the
// session is unchanged and the call may be retried.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
