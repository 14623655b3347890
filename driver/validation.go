package driver

import (
	"fmt"
	"strings"
)

// MaxTables is the number of single-letter aliases, a through z.
const MaxTables = 26

// MaxColumnCount is SQLite's default limit on the columns of one table.
const MaxColumnCount = 2000

// ValidatePath rejects DSN paths that cannot name a file.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	return nil
}

// ValidateTableCount checks that every table can be given an alias.
func ValidateTableCount(count int) error {
	if count > MaxTables {
		return fmt.Errorf("%w: got %d", ErrTooManyTables, count)
	}
	return nil
}

// ValidateColumnCount checks if the number of columns is within acceptable limits
func ValidateColumnCount(columnCount int) error {
	if columnCount > MaxColumnCount {
		return fmt.Errorf("%w: %d columns exceeds limit of %d", ErrTooManyColumns, columnCount, MaxColumnCount)
	}
	return nil
}

// Alias returns the table name bound to the i-th input: a, b, c, ...
func Alias(i int) string {
	return string(rune('a' + i))
}
