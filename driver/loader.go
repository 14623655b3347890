package driver

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/tosql/domain/model"
)

// Load creates one table per input in conn, named by Alias in input order,
// and inserts every row inside a single transaction.
func Load(ctx context.Context, conn driver.Conn, tables []*model.Table) error {
	if err := ValidateTableCount(len(tables)); err != nil {
		return err
	}

	names := make([]string, len(tables))
	for i := range tables {
		names[i] = Alias(i)
	}
	return loadNamed(ctx, conn, names, tables)
}

// LoadTable creates table in conn under name and inserts its rows.
func LoadTable(ctx context.Context, conn driver.Conn, name string, table *model.Table) error {
	return loadNamed(ctx, conn, []string{name}, []*model.Table{table})
}

func loadNamed(ctx context.Context, conn driver.Conn, names []string, tables []*model.Table) (err error) {
	beginner, ok := conn.(driver.ConnBeginTx)
	if !ok {
		return ErrBeginTxNotSupported
	}
	tx, err := beginner.BeginTx(ctx, driver.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	for i, table := range tables {
		if err := createTable(ctx, conn, names[i], table); err != nil {
			return fmt.Errorf("failed to create table %s: %w", names[i], err)
		}
		if err := insertRows(ctx, conn, names[i], table); err != nil {
			return fmt.Errorf("failed to insert rows into %s: %w", names[i], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// QuoteIdentifier quotes name as an SQL identifier.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// buildCreateTableQuery constructs a CREATE TABLE query with declared column types
func buildCreateTableQuery(name string, columns []model.ColumnInfo) string {
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		def := QuoteIdentifier(col.Name)
		if sqlType := col.Type.String(); sqlType != "" {
			def += " " + sqlType
		}
		defs = append(defs, def)
	}

	return fmt.Sprintf(`CREATE TABLE %s (%s)`, QuoteIdentifier(name), strings.Join(defs, ", "))
}

// buildInsertQuery constructs an INSERT query for the given table
func buildInsertQuery(name string, columnCount int) string {
	return fmt.Sprintf(
		`INSERT INTO %s VALUES (%s)`,
		QuoteIdentifier(name),
		buildPlaceholders(columnCount),
	)
}

// buildPlaceholders creates placeholder string for prepared statements
func buildPlaceholders(count int) string {
	if count == 0 {
		return ""
	}
	return "?" + strings.Repeat(", ?", count-1)
}

func createTable(ctx context.Context, conn driver.Conn, name string, table *model.Table) error {
	if len(table.Header()) == 0 {
		return fmt.Errorf("table %s has no columns", name)
	}
	if err := ValidateColumnCount(len(table.Header())); err != nil {
		return err
	}

	stmt, err := prepare(ctx, conn, buildCreateTableQuery(name, table.ColumnInfo()))
	if err != nil {
		return err
	}
	defer stmt.Close()

	return execStatement(ctx, stmt, nil)
}

func insertRows(ctx context.Context, conn driver.Conn, name string, table *model.Table) error {
	if len(table.Rows()) == 0 {
		return nil
	}

	stmt, err := prepare(ctx, conn, buildInsertQuery(name, len(table.Header())))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]driver.NamedValue, len(table.Header()))
	for _, row := range table.Rows() {
		for i := range args {
			args[i] = driver.NamedValue{Ordinal: i + 1, Value: row[i]}
		}
		if err := execStatement(ctx, stmt, args); err != nil {
			return err
		}
	}
	return nil
}

func prepare(ctx context.Context, conn driver.Conn, query string) (driver.Stmt, error) {
	if preparer, ok := conn.(driver.ConnPrepareContext); ok {
		return preparer.PrepareContext(ctx, query)
	}
	return nil, ErrPrepareContextNotSupported
}

func execStatement(ctx context.Context, stmt driver.Stmt, args []driver.NamedValue) error {
	if stmtExecCtx, ok := stmt.(driver.StmtExecContext); ok {
		_, err := stmtExecCtx.ExecContext(ctx, args)
		return err
	}
	return ErrStmtExecContextNotSupported
}
