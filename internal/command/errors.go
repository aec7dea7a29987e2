package command

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedArguments = errors.New("malformed arguments")
	ErrCommandNotFound    = errors.New("command not found")
	ErrUnclosedQuote      = errors.New("expected closing quote")
)

// argumentError reports bad input for one command along with its usage line.
type argumentError struct {
	usage string
	cause error
}

func malformed(usage string, cause error) error {
	return &argumentError{usage: usage, cause: cause}
}

func (e *argumentError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v (usage: %s)", ErrMalformedArguments, e.cause, e.usage)
	}
	return fmt.Sprintf("%s (usage: %s)", ErrMalformedArguments, e.usage)
}

func (e *argumentError) Is(target error) bool {
	return target == ErrMalformedArguments
}

func (e *argumentError) Unwrap() error {
	return e.cause
}
