// Package model provides the domain model for tosql: tables, column type
// inference and the format inference engine that turns raw input into tables.
package model

// Header is table header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is a row of raw, untyped fields as read from delimited text.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// Row is a row of typed cells. A cell is nil, int64, float64 or string.
type Row []any

// Equal compare Row.
func (r Row) Equal(r2 Row) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// ColumnType represents the SQL column type
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeDatetime represents datetime stored as TEXT in ISO8601 format
	ColumnTypeDatetime
	// ColumnTypeAny represents a column mixing numbers and text. It is
	// declared without a type so SQLite keeps every value as given.
	ColumnTypeAny
)

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeText:
		return sqlTypeText
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	case ColumnTypeDatetime:
		return sqlTypeText // SQLite stores datetime as TEXT in ISO8601 format
	case ColumnTypeAny:
		return ""
	default:
		return sqlTypeText
	}
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}

// Format identifies how a table was read.
type Format int

const (
	// FormatUnknown is the zero value, used for tables built in memory
	FormatUnknown Format = iota
	// FormatJSON represents newline-delimited JSON records
	FormatJSON
	// FormatCSV represents delimited text (comma or a custom delimiter)
	FormatCSV
	// FormatTSV represents tab-separated text
	FormatTSV
	// FormatLTSV represents labeled tab-separated values
	FormatLTSV
	// FormatParquet represents Apache Parquet
	FormatParquet
	// FormatXLSX represents an Excel workbook (first sheet)
	FormatXLSX
	// FormatWhitespace represents column-aligned text split on whitespace runs
	FormatWhitespace
	// FormatQuery represents a query result
	FormatQuery
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatLTSV:
		return "ltsv"
	case FormatParquet:
		return "parquet"
	case FormatXLSX:
		return "xlsx"
	case FormatWhitespace:
		return "whitespace"
	case FormatQuery:
		return "query"
	default:
		return "unknown"
	}
}
