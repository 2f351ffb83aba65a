// Package errs is the project-wide error vocabulary: sentinel creation,
// context wrapping, and category marking, all backed by cockroachdb/errors
// so stack traces survive the trip up through the layers.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// New creates a sentinel error. Use at package level for errors callers
// match with errors.Is.
func New(msg string) error {
	return cr.New(msg)
}

// Wrap adds context while preserving the cause chain. Wrapping nil stays
// nil so call sites do not need a guard.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches a sentinel to err so errors.Is(err, sentinel) holds while
// the original cause and stack stay intact.
func Mark(err error, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return cr.Mark(err, sentinel)
}

// ExtractStackLines renders the first maxLines lines of the verbose error
// representation, for structured logging of unexpected failures.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
