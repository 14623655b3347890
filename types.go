package tosql

import "github.com/nao1215/tosql/domain/model"

// Table is a parsed input or a query result.
type Table = model.Table

// Header is the ordered list of column names of a table.
type Header = model.Header

// Row is one typed table row. Cells are nil, int64, float64 or string.
type Row = model.Row

// RawInput is an unparsed input stream with a filename hint.
type RawInput = model.RawInput

// ParseHints are caller supplied options for inference.
type ParseHints = model.ParseHints

// Format identifies the reader that produced a table.
type Format = model.Format

// StdinName is the input name that denotes standard input.
const StdinName = model.StdinName

// DefaultMaxInputBytes is the default buffering limit for one input.
const DefaultMaxInputBytes = model.DefaultMaxInputBytes

// IsStdin reports whether an input name denotes standard input.
func IsStdin(name string) bool {
	return model.IsStdin(name)
}

// Formats reported by Table.Format
const (
	FormatUnknown    = model.FormatUnknown
	FormatJSON       = model.FormatJSON
	FormatCSV        = model.FormatCSV
	FormatTSV        = model.FormatTSV
	FormatLTSV       = model.FormatLTSV
	FormatParquet    = model.FormatParquet
	FormatXLSX       = model.FormatXLSX
	FormatWhitespace = model.FormatWhitespace
	FormatQuery      = model.FormatQuery
)

// NewTable creates a table from typed rows. It is mostly useful for tests
// and for callers that build inputs in memory.
func NewTable(name string, columns []string, rows []Row) *Table {
	return model.NewTypedTable(name, model.NewHeader(columns), rows)
}
