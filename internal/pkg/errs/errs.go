package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg, keeping the original chain intact.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// New creates a sentinel error with a captured stack.
func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr to err as its classification without hiding the
// cause. Match marks with Is, not stdlib errors.Is.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is matches sentinels attached with Mark as well as the wrap chain.
// Stdlib errors.Is only walks Unwrap and never sees marks.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

// ExtractStackLines renders the verbose form of err and returns at most
// maxLines of it, for structured log fields.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
