package tosql

import (
	"errors"
	"fmt"

	"github.com/nao1215/tosql/domain/model"
	tosqldriver "github.com/nao1215/tosql/driver"
)

// Standard errors returned by tosql
var (
	// ErrParse is matched by every *ParseError
	ErrParse = model.ErrParse

	// ErrEmptyData indicates that the data source contains no records
	ErrEmptyData = model.ErrEmptyData

	// ErrInputTooLarge indicates that an input exceeds the buffering limit
	ErrInputTooLarge = model.ErrInputTooLarge

	// ErrInvalidDelimiter indicates a delimiter that is not a single usable character
	ErrInvalidDelimiter = model.ErrInvalidDelimiter

	// ErrTooManyTables indicates more inputs than there are aliases
	ErrTooManyTables = tosqldriver.ErrTooManyTables

	// ErrNoInputs indicates a builder without any input
	ErrNoInputs = tosqldriver.ErrNoPathsProvided

	// ErrQuery is matched by every *QueryError
	ErrQuery = errors.New("tosql: query failed")

	// ErrUnsupportedFormat indicates an output format that cannot be written
	ErrUnsupportedFormat = errors.New("tosql: unsupported output format")

	// ErrNilTable indicates a nil table passed to an operation that needs one
	ErrNilTable = errors.New("tosql: table cannot be nil")
)

// ParseError is returned when no parsing strategy produced a usable table.
type ParseError = model.ParseError

// StrategyFailure records why one parsing strategy was rejected.
type StrategyFailure = model.StrategyFailure

// QueryError is returned when the SQL engine rejects a query or fails while
// running it.
type QueryError struct {
	// Query is the rejected SQL text
	Query string
	// Err is the engine error
	Err error
}

// Error implements error.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", ErrQuery.Error(), e.Err)
}

// Is reports whether target is ErrQuery.
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// Unwrap returns the engine error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
