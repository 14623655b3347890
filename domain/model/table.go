package model

import (
	"path/filepath"
	"strings"
)

// resultTableName is the name of every query result table.
const resultTableName = "result"

// Table represents parsed input or a query result as a database table.
type Table struct {
	// name is table name derived from the input name.
	name string
	// header is table header.
	header Header
	// rows are typed table rows, each as wide as header.
	rows []Row
	// columnInfo contains inferred type information for each column
	columnInfo []ColumnInfo
	// format records which reader produced the table
	format Format
}

// NewTable creates a Table from raw string records. Column types are
// inferred from the values and every cell is converted to its column type.
// Records are expected to be as wide as header.
func NewTable(
	name string,
	header Header,
	records []Record,
) *Table {
	columnInfo := InferColumnsInfo(header, records)

	rows := make([]Row, len(records))
	for i, record := range records {
		row := make(Row, len(header))
		for j := range header {
			if j < len(record) {
				row[j] = convertValue(record[j], columnInfo[j].Type)
			}
		}
		rows[i] = row
	}

	return &Table{
		name:       name,
		header:     header,
		rows:       rows,
		columnInfo: columnInfo,
	}
}

// NewTypedTable creates a Table from rows whose cells are already typed.
func NewTypedTable(
	name string,
	header Header,
	rows []Row,
) *Table {
	return &Table{
		name:       name,
		header:     header,
		rows:       rows,
		columnInfo: inferTypedColumnsInfo(header, rows),
	}
}

// NewResultTable creates the table of a query result. Duplicate or empty
// column names are renamed the same way input headers are.
func NewResultTable(columns []string, rows []Row) *Table {
	return NewTypedTable(resultTableName, normalizeHeader(columns), rows).withFormat(FormatQuery)
}

// withFormat records the reader that produced t.
func (t *Table) withFormat(f Format) *Table {
	t.format = f
	return t
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Rows return table rows.
func (t *Table) Rows() []Row {
	return t.rows
}

// ColumnInfo returns column information with inferred types
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}

// Format returns the format the table was read from.
func (t *Table) Format() Format {
	return t.format
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Rows()) != len(t2.Rows()) {
		return false
	}
	for i, row := range t.Rows() {
		if !row.Equal(t2.Rows()[i]) {
			return false
		}
	}
	return true
}

// TableFromFilePath creates table name from file path
func TableFromFilePath(filePath string) string {
	if IsStdin(filePath) {
		return "stdin"
	}
	fileName := RemoveCompressionExtension(filepath.Base(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
