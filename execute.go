package tosql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/tosql/domain/model"
	tosqldriver "github.com/nao1215/tosql/driver"
)

// Execute runs query against tables. See ExecuteContext.
func Execute(tables []*Table, query string) (*Table, error) {
	return ExecuteContext(context.Background(), tables, query)
}

// ExecuteContext loads tables into a fresh in-memory SQLite store under the
// aliases a, b, c, ... in slice order, runs query and returns its result.
// The store is discarded before returning.
//
// Result columns keep the engine's names and order; duplicate names get a
// ".1", ".2" suffix. Cells are nil, int64, float64 or string. An error from
// the engine is returned as a *QueryError.
func ExecuteContext(ctx context.Context, tables []*Table, query string) (_ *Table, err error) {
	for _, table := range tables {
		if table == nil {
			return nil, ErrNilTable
		}
	}

	connector, err := tosqldriver.NewTableConnector(tables)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
	}()

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close connection: %w", closeErr))
		}
	}()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	return scanResult(rows, query)
}

// scanResult reads every row of rows into a result table.
func scanResult(rows *sql.Rows, query string) (*Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	result := make([]model.Row, 0)
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}
		row := make(model.Row, len(columns))
		for i, v := range values {
			row[i] = normalizeCell(v)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	return model.NewResultTable(columns, result), nil
}

// normalizeCell maps a scanned value onto the cell kinds of a Row.
func normalizeCell(v any) any {
	switch x := v.(type) {
	case nil, int64, float64, string:
		return x
	case []byte:
		return string(x)
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
