package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a parameter block is empty or whitespace.
	ErrEmptyInput = errors.New("empty input")

	// ErrAllEntriesInvalid is returned when a block contains entries but none
	// of them could be parsed.
	ErrAllEntriesInvalid = errors.New("no valid entries")
)

// ParseError names the token that could not be interpreted.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Token, e.Reason)
}

func skipped(token, reason string) string {
	return (&ParseError{Token: token, Reason: reason}).Error()
}
