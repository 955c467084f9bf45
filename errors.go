package nextversion

import (
	"errors"
	"fmt"
)

// ErrNoRelease is returned when no commits exist between the base version
// and the analyzed commit, so there is nothing to release.
var ErrNoRelease = errors.New("no release necessary: no commits since base version")

// ParseError reports a string that is not a valid semantic version
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing version %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RepositoryAccessError reports a failure to read from the Git repository.
// These are never retried: they point at a broken path or reference.
type RepositoryAccessError struct {
	Op  string
	Ref string
	Err error
}

func (e *RepositoryAccessError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Ref, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.Err
}

func accessError(op, ref string, err error) error {
	return &RepositoryAccessError{Op: op, Ref: ref, Err: err}
}
