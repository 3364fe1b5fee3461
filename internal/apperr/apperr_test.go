package apperr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("reading upload: %w", Unreadable("not a text file", io.ErrUnexpectedEOF))

	if KindOf(err) != KindUnreadable {
		t.Errorf("expected %s, got %s", KindUnreadable, KindOf(err))
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("expected plain errors to map to internal")
	}
}

func TestErrorMessage(t *testing.T) {
	e := New(KindNotFound, "no summary", errors.New("empty"))
	if e.Error() != "no summary: empty" {
		t.Errorf("unexpected message %q", e.Error())
	}
	if Validation("bad email").Error() != "bad email" {
		t.Errorf("unexpected message %q", Validation("bad email").Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindUnreadable:   http.StatusUnsupportedMediaType,
		KindNotFound:     http.StatusNotFound,
		KindUnauthorized: http.StatusUnauthorized,
		KindTooLarge:     http.StatusRequestEntityTooLarge,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("%s: expected %d, got %d", kind, want, got)
		}
	}
}
