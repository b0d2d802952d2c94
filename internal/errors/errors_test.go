package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindInvalidArgs, "InvalidArgs"},
		{KindNotFound, "NotFound"},
		{KindInternal, "Internal"},
		{KindGeneral, "General"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorImplementsError(t *testing.T) {
	err := NotFound("file %s not found", "feed.html")

	var _ error = err

	if err.Error() != "file feed.html not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "file feed.html not found")
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := errors.New("database connection failed")
	err := WrapInternal(cause, "failed to list posts")

	expected := "failed to list posts: database connection failed"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, KindInternal, "wrapped error")

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestCLIExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"InvalidArgs", InvalidArgs("bad input"), 2},
		{"NotFound", NotFound("not found"), 3},
		{"Internal", Internal("db error"), 5},
		{"General", General("general error"), 1},
		{"Unknown", &Error{Kind: Kind(42)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.CLIExitCode(); got != tt.expected {
				t.Errorf("CLIExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"InvalidArgs", InvalidArgs("bad input"), http.StatusBadRequest},
		{"NotFound", NotFound("not found"), http.StatusNotFound},
		{"Internal", Internal("db error"), http.StatusInternalServerError},
		{"General", General("general error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		kind    Kind
		message string
	}{
		{"NotFound", NotFound("post %d not found", 7), KindNotFound, "post 7 not found"},
		{"InvalidArgs", InvalidArgs("cannot parse timestamp %q", "soon"), KindInvalidArgs, `cannot parse timestamp "soon"`},
		{"Internal", Internal("database error"), KindInternal, "database error"},
		{"General", General("something went wrong"), KindGeneral, "something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.message)
			}
		})
	}
}

func TestUnparseable(t *testing.T) {
	tests := []struct {
		name    string
		raws    []string
		message string
	}{
		{"single", []string{"soon"}, `cannot parse timestamp "soon"`},
		{"several", []string{"soon", ""}, `cannot parse 2 timestamps: "soon", ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unparseable(tt.raws...)
			if err.Kind != KindInvalidArgs {
				t.Errorf("Kind = %v, want InvalidArgs", err.Kind)
			}
			if err.Message != tt.message {
				t.Errorf("Message = %q, want %q", err.Message, tt.message)
			}
			if len(err.Raws) != len(tt.raws) {
				t.Errorf("Raws = %v, want %v", err.Raws, tt.raws)
			}
		})
	}
}

func TestWrappedUnparseableKeepsOuterSuggestion(t *testing.T) {
	err := Wrap(Unparseable("later"), KindInvalidArgs, "invalid --now value").
		WithSuggestion("Use epoch seconds or an ISO 8601 date")

	want := `invalid --now value: cannot parse timestamp "later"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	e, ok := As(fmt.Errorf("parse: %w", err))
	if !ok {
		t.Fatal("As() found no *Error")
	}
	if e.Suggestion != "Use epoch seconds or an ISO 8601 date" {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}

	var inner *Error
	if !errors.As(e.Cause, &inner) || inner.Raws[0] != "later" {
		t.Errorf("Cause = %v, want the unparseable text", e.Cause)
	}
}

func TestNewUsesKindTable(t *testing.T) {
	for kind, info := range kinds {
		err := New(kind, "x")
		if err.CLIExitCode() != info.exitCode {
			t.Errorf("%v: CLIExitCode() = %d, want %d", kind, err.CLIExitCode(), info.exitCode)
		}
		if err.HTTPStatus() != info.status {
			t.Errorf("%v: HTTPStatus() = %d, want %d", kind, err.HTTPStatus(), info.status)
		}
	}
	if got := New(Kind(42), "x").HTTPStatus(); got != http.StatusInternalServerError {
		t.Errorf("unknown kind HTTPStatus() = %d", got)
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"NotFound error", NotFound("not found"), KindNotFound},
		{"Standard error", errors.New("standard error"), KindGeneral},
		{"Nil cause", Wrap(nil, KindInternal, "internal"), KindInternal},
		{"Wrapped by fmt", fmt.Errorf("outer: %w", InvalidArgs("bad")), KindInvalidArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetKind(tt.err); got != tt.expected {
				t.Errorf("GetKind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCLIExitCodeAndHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		status int
	}{
		{"NotFound error", NotFound("not found"), 3, http.StatusNotFound},
		{"Wrapped InvalidArgs", fmt.Errorf("ctx: %w", InvalidArgs("x")), 2, http.StatusBadRequest},
		{"Standard error", errors.New("standard error"), 1, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCLIExitCode(tt.err); got != tt.code {
				t.Errorf("GetCLIExitCode() = %d, want %d", got, tt.code)
			}
			if got := GetHTTPStatus(tt.err); got != tt.status {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}
