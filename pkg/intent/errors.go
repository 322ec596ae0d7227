package intent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotIngested is returned by LinkParents when nothing has been ingested.
var ErrNotIngested = errors.New("intent: registry has no intents to link")

// NotFoundError reports a failed registry lookup. Key is "name" or "display_name".
type NotFoundError struct {
	Key   string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("intent: no intent with %s %q", e.Key, e.Value)
}

// ParentNotFoundError reports a parent reference that names no ingested intent.
type ParentNotFoundError struct {
	Child  string
	Parent string
}

func (e *ParentNotFoundError) Error() string {
	return fmt.Sprintf("intent: parent %q of intent %q is not in the registry", e.Parent, e.Child)
}

// CycleError reports parent references that loop back on themselves. Names lists the loop
// starting from the intent where it was first seen.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("intent: parent references form a cycle: %s", strings.Join(e.Names, " -> "))
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
