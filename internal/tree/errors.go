package tree

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange reports a cursor position outside the valid node
// range. It is a caller error; the action aborts with no state change.
var ErrIndexOutOfRange = errors.New("cursor position outside the node range")

// ArgError reports malformed action arguments.
type ArgError struct {
	Msg string
}

func (e *ArgError) Error() string {
	return "invalid argument: " + e.Msg
}

// ConflictError reports that a destination path already exists for a
// rename, new-file or paste without explicit confirmation.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("destination already exists: %s", e.Path)
}
