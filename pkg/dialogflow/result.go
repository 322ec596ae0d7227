package dialogflow

import (
	"errors"
	"fmt"
)

// Result is the outcome of one item of a batch helper. Key identifies the item as the caller
// passed it.
type Result[T any] struct {
	Key   string
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Failed returns the failed results in input order.
func Failed[T any](results []Result[T]) []Result[T] {
	var out []Result[T]
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// JoinErrors folds every item failure into one error, or nil when all succeeded.
func JoinErrors[T any](results []Result[T]) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Key, r.Err))
		}
	}
	return errors.Join(errs...)
}
