package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

var errGone = NewError(http.StatusGone, "gone")

type causeError struct{ msg string }

func (e *causeError) Error() string { return e.msg }

func TestWrapKeepsDomainErrorAndCause(t *testing.T) {
	cause := &causeError{msg: "upstream said no"}
	err := fmt.Errorf("loading: %w", Wrap(errGone, cause))

	if !errors.Is(err, errGone) {
		t.Fatalf("errors.Is(%v, errGone) = false", err)
	}

	var got *causeError
	if !errors.As(err, &got) || got != cause {
		t.Fatalf("errors.As did not find the cause in %v", err)
	}

	if want := "loading: gone: upstream said no"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "domain", err: errGone, want: http.StatusGone},
		{name: "wrapped", err: fmt.Errorf("x: %w", Wrap(errGone, errors.New("y"))), want: http.StatusGone},
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Fatalf("StatusOf = %d, want %d", got, tt.want)
			}
		})
	}
}
