package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Kind classifies a failed file operation so a caller can react without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermission
	KindConflict
	KindDecode
	KindLaunch
	KindInvalidArgument
	KindBusy
	KindCanceled
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindNotFound:        "not found",
	KindPermission:      "permission denied",
	KindConflict:        "already exists",
	KindDecode:          "not valid text",
	KindLaunch:          "launch failed",
	KindInvalidArgument: "invalid argument",
	KindBusy:            "busy",
	KindCanceled:        "canceled",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrPermission      = &Error{Kind: KindPermission}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrDecode          = &Error{Kind: KindDecode}
	ErrLaunch          = &Error{Kind: KindLaunch}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrBusy            = &Error{Kind: KindBusy}
)

var ErrNotImplemented = errors.New("not implemented")

// Error is the structured failure returned by every store and service operation.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
// Op and Path are ignored so sentinels like ErrNotFound match any operation.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Wrap classifies err by its OS cause and returns it as an *Error.
// An err that is already an *Error keeps its kind; nil stays nil.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		wrapped := *fe
		if wrapped.Op == "" {
			wrapped.Op = op
		}
		if wrapped.Path == "" {
			wrapped.Path = path
		}
		return &wrapped
	}
	return &Error{Kind: classify(err), Op: op, Path: path, Err: unwrapPathError(err)}
}

// KindOf returns the kind of err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, fs.ErrExist):
		return KindConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// unwrapPathError drops the *fs.PathError or *os.LinkError layer so the path is not printed twice.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
