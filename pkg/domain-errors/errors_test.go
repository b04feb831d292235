package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeNotFound, "item not found")
		if !HasCode(err, CodeNotFound) {
			t.Fatalf("expected CodeNotFound to match")
		}
		if HasCode(err, CodeValidation) {
			t.Fatalf("did not expect CodeValidation to match")
		}
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		inner := New(CodeValidation, "empty name")
		err := fmt.Errorf("add item: %w", inner)
		if !HasCode(err, CodeValidation) {
			t.Fatalf("expected CodeValidation to match through fmt wrapping")
		}
	})

	t.Run("plain errors match nothing", func(t *testing.T) {
		if HasCode(errors.New("boom"), CodeInternal) {
			t.Fatalf("plain errors should not carry a code")
		}
	})
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("boom")); got != CodeInternal {
		t.Fatalf("expected plain errors to default to CodeInternal, got %q", got)
	}
	if got := CodeOf(Wrap(errors.New("conn refused"), CodeUnavailable, "store down")); got != CodeUnavailable {
		t.Fatalf("expected CodeUnavailable, got %q", got)
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:  http.StatusBadRequest,
		CodeBadRequest:  http.StatusBadRequest,
		CodeNotFound:    http.StatusNotFound,
		CodeUnavailable: http.StatusServiceUnavailable,
		CodeInternal:    http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := ToHTTPStatus(code); got != want {
			t.Fatalf("code %q: expected status %d, got %d", code, want, got)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row scan failed")
	err := Wrap(cause, CodeInternal, "load item")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
}
