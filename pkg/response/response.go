package response

import (
	"errors"
	"net/http"
)

// Error is a domain error carrying the HTTP status it maps to.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Wrap attaches cause to a domain error so that both errors.Is(err, domainErr) and
// errors.As on the cause keep working.
func Wrap(domainErr error, cause error) error {
	return &wrapped{domain: domainErr, cause: cause}
}

type wrapped struct {
	domain error
	cause  error
}

func (w *wrapped) Error() string {
	return w.domain.Error() + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() []error {
	return []error{w.domain, w.cause}
}

// StatusOf returns the HTTP status of the first *Error in err's chain, or 500.
func StatusOf(err error) int {
	var respErr *Error
	if errors.As(err, &respErr) {
		return respErr.Code
	}
	return http.StatusInternalServerError
}
