package driver

import "errors"

// Predefined errors
var (
	// ErrNoPathsProvided is returned when the DSN names no input
	ErrNoPathsProvided = errors.New("tosql driver: no paths provided")

	// ErrTooManyTables is returned when more tables are supplied than there are aliases
	ErrTooManyTables = errors.New("tosql driver: too many tables, at most 26 can be bound to aliases a-z")

	// ErrTooManyColumns is returned when a table is wider than SQLite allows
	ErrTooManyColumns = errors.New("tosql driver: too many columns")

	// ErrInvalidPath is returned when a DSN path cannot be used
	ErrInvalidPath = errors.New("tosql driver: invalid path")

	// ErrStmtExecContextNotSupported is returned when statement does not support ExecContext
	ErrStmtExecContextNotSupported = errors.New("tosql driver: statement does not support ExecContext")

	// ErrBeginTxNotSupported is returned when underlying connection does not support BeginTx
	ErrBeginTxNotSupported = errors.New("tosql driver: underlying connection does not support BeginTx")

	// ErrPrepareContextNotSupported is returned when underlying connection does not support PrepareContext
	ErrPrepareContextNotSupported = errors.New("tosql driver: underlying connection does not support PrepareContext")
)
