package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformed     = errors.New("malformed table")
)

// LoadError is returned for every failure to turn a file into a Dataset.
// It is fatal for the run; callers surface it and stop.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to load dataset %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("failed to load dataset %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadError(path, reason string, err error) *LoadError {
	return &LoadError{Path: path, Reason: reason, Err: err}
}
