// Package errors classifies failures raised while generating documentation.
//
// Only configuration errors abort a run. Traversal, extraction and write errors are
// reported per entry and the run continues with the next one.
package errors

import (
	"errors"
	"fmt"
)

// Kind is the category of a pipeline error.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindTraversal     Kind = "traversal"
	KindExtraction    Kind = "extraction"
	KindWrite         Kind = "write"
)

var (
	// ErrSourceNotFound indicates the source directory does not exist.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrSourceNotDir indicates the source path exists but is not a directory.
	ErrSourceNotDir = errors.New("source path is not a directory")

	// ErrTargetInvalid indicates the target directory is missing or unusable.
	ErrTargetInvalid = errors.New("invalid target directory")

	// ErrInvalidPattern indicates an ignore pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrInvalidFormat indicates an unknown output format was requested.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrSymlinkCycle indicates a symbolic link resolves to one of its ancestors.
	ErrSymlinkCycle = errors.New("symbolic link cycle")

	// ErrUnterminatedComment indicates a block comment was still open at end of file.
	ErrUnterminatedComment = errors.New("unterminated comment block")

	// ErrTargetCollision indicates two sources map to the same output path.
	ErrTargetCollision = errors.New("target path already produced by another source")

	// ErrOutsideTarget indicates an artifact path escapes the target directory.
	ErrOutsideTarget = errors.New("artifact path outside target directory")
)

// Error is a classified pipeline error tied to a path.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	switch {
	case loc != "" && e.Op != "":
		return fmt.Sprintf("%s %s: %v", e.Op, loc, e.Err)
	case loc != "":
		return fmt.Sprintf("%s: %v", loc, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error should abort the whole run.
func (e *Error) Fatal() bool {
	return e.Kind == KindConfiguration
}

// New builds an Error of the given kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func Configuration(op, path string, err error) *Error {
	return New(KindConfiguration, op, path, err)
}

func Traversal(op, path string, err error) *Error {
	return New(KindTraversal, op, path, err)
}

func Extraction(path string, line int, err error) *Error {
	e := New(KindExtraction, "extract", path, err)
	e.Line = line
	return e
}

func Write(op, path string, err error) *Error {
	return New(KindWrite, op, path, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
