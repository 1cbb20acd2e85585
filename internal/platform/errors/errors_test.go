package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIs(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		err := New(CodeNotFound, "task missing")
		if !stderrors.Is(err, New(CodeNotFound, "other message")) {
			t.Error("expected errors with the same code to match")
		}
	})

	t.Run("different codes do not match", func(t *testing.T) {
		err := New(CodeNotFound, "task missing")
		if stderrors.Is(err, New(CodeTaskNotOwned, "task missing")) {
			t.Error("expected errors with different codes not to match")
		}
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		inner := New(CodeTokenExpired, "token is expired")
		wrapped := fmt.Errorf("verify token: %w", inner)
		if !stderrors.Is(wrapped, New(CodeTokenExpired, "")) {
			t.Error("expected wrapped error to match by code")
		}
	})
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "store task", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestWithMetadata(t *testing.T) {
	err := WithMetadata(CodeInvalidArgument, "title is required", map[string]string{"Field": "title"})
	if err.Metadata["Field"] != "title" {
		t.Errorf("expected metadata field, got %q", err.Metadata["Field"])
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUsernameTaken, http.StatusBadRequest},
		{CodeEmailTaken, http.StatusBadRequest},
		{CodeCredentialsInvalid, http.StatusUnauthorized},
		{CodeTokenInvalid, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeUserNotFound, http.StatusUnauthorized},
		{CodeTaskNotOwned, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnknown, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.code, tc.want, got)
		}
	}
}
