// Package errors carries failure kinds shared by the CLI and the server.
// A kind fixes both the process exit code and the HTTP status, so a page
// that cannot be found is exit 3 on the command line and 404 over HTTP.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// KindInvalidArgs covers bad flags, unparseable timestamps, and pages
	// that are not HTML.
	KindInvalidArgs Kind = iota

	// KindNotFound covers missing page files, posts, and databases.
	KindNotFound

	// KindInternal covers storage and I/O failures.
	KindInternal

	// KindGeneral is everything else.
	KindGeneral
)

type kindInfo struct {
	name     string
	exitCode int
	status   int
}

var kinds = map[Kind]kindInfo{
	KindInvalidArgs: {"InvalidArgs", 2, http.StatusBadRequest},
	KindNotFound:    {"NotFound", 3, http.StatusNotFound},
	KindInternal:    {"Internal", 5, http.StatusInternalServerError},
	KindGeneral:     {"General", 1, http.StatusInternalServerError},
}

func (k Kind) info() kindInfo {
	if info, ok := kinds[k]; ok {
		return info
	}
	return kindInfo{"Unknown", 1, http.StatusInternalServerError}
}

func (k Kind) String() string {
	return k.info().name
}

// Error is a failure with a kind, an optional cause, and an optional hint
// for the user.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// Raws holds the timestamp text that failed to parse, if any.
	Raws []string

	// Suggestion is shown after the message by the CLI.
	Suggestion string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CLIExitCode is the process exit code for e's kind.
func (e *Error) CLIExitCode() int {
	return e.Kind.info().exitCode
}

// HTTPStatus is the response status for e's kind.
func (e *Error) HTTPStatus() int {
	return e.Kind.info().status
}

// WithSuggestion sets the hint and returns e for chaining.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func InvalidArgs(format string, args ...interface{}) *Error {
	return New(KindInvalidArgs, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return New(KindInternal, format, args...)
}

func General(format string, args ...interface{}) *Error {
	return New(KindGeneral, format, args...)
}

// Unparseable reports timestamp text that matches no accepted encoding.
func Unparseable(raws ...string) *Error {
	quoted := make([]string, len(raws))
	for i, raw := range raws {
		quoted[i] = strconv.Quote(raw)
	}
	msg := "cannot parse timestamp " + strings.Join(quoted, ", ")
	if len(raws) != 1 {
		msg = fmt.Sprintf("cannot parse %d timestamps: %s", len(raws), strings.Join(quoted, ", "))
	}
	return &Error{Kind: KindInvalidArgs, Message: msg, Raws: raws}
}

// Wrap attaches a kind and message to err.
func Wrap(err error, kind Kind, format string, args ...interface{}) *Error {
	e := New(kind, format, args...)
	e.Cause = err
	return e
}

func WrapInternal(err error, format string, args ...interface{}) *Error {
	return Wrap(err, KindInternal, format, args...)
}

// As finds the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetKind is KindGeneral for errors that carry no kind.
func GetKind(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindGeneral
}

func GetCLIExitCode(err error) int {
	return GetKind(err).info().exitCode
}

func GetHTTPStatus(err error) int {
	return GetKind(err).info().status
}
