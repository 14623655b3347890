package tosql

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	tosqldriver "github.com/nao1215/tosql/driver"
	"modernc.org/sqlite"
)

// DefaultPersistPath is where the CLI persists a table when asked to.
const DefaultPersistPath = ".tosql.db"

// Persist writes table into a new SQLite database file at path as a table
// called name. An existing file at path is replaced.
func Persist(table *Table, path, name string) error {
	return PersistContext(context.Background(), table, path, name)
}

// PersistContext is Persist with a context.
func PersistContext(ctx context.Context, table *Table, path, name string) (err error) {
	if table == nil {
		return ErrNilTable
	}
	if err := tosqldriver.ValidatePath(path); err != nil {
		return err
	}
	if name == "" {
		name = table.Name()
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	conn, err := (&sqlite.Driver{}).Open(path)
	if err != nil {
		return fmt.Errorf("failed to create database %s: %w", path, err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
	}()

	if err := tosqldriver.LoadTable(ctx, conn, name, table); err != nil {
		return fmt.Errorf("failed to persist table %s: %w", name, err)
	}
	return nil
}
