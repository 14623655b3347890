package model

import (
	"errors"
	"fmt"
	"strings"
)

// Standard errors returned by the inference engine
var (
	// ErrParse is matched by every *ParseError
	ErrParse = errors.New("tosql: could not parse the input")

	// ErrEmptyData indicates that the data source contains no records
	ErrEmptyData = errors.New("tosql: empty data source")

	// ErrInputTooLarge indicates that the input exceeds the buffering limit
	ErrInputTooLarge = errors.New("tosql: input exceeds size limit")

	// ErrInvalidDelimiter indicates a delimiter that is not a single usable character
	ErrInvalidDelimiter = errors.New("tosql: delimiter must be a single character")

	// ErrNilReader indicates a RawInput without a reader
	ErrNilReader = errors.New("tosql: input reader cannot be nil")

	// errSingleColumn rejects a strategy result that is too narrow to be plausible
	errSingleColumn = errors.New("single column result rejected")

	// errNotText rejects binary content for text based strategies
	errNotText = errors.New("input is not UTF-8 text")

	// errUnclosedQuote rejects delimited text whose last quoted field never ends
	errUnclosedQuote = errors.New("quoted field is not closed before end of input")
)

// StrategyFailure records why one parsing strategy did not produce a table.
type StrategyFailure struct {
	Format Format
	Err    error
}

// ParseError is returned when no strategy produced a usable table.
type ParseError struct {
	// Input is the name hint of the failed input
	Input string
	// Failures lists every attempted strategy in priority order
	Failures []StrategyFailure
}

// Error implements error.
func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrParse.Error())
	if e.Input != "" {
		fmt.Fprintf(&sb, " %s", e.Input)
	}
	for i, f := range e.Failures {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %v", f.Format, f.Err)
	}
	return sb.String()
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap returns the strategy errors.
func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
