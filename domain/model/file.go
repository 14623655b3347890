package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// File extensions that select a parser without heuristics
const (
	// ExtJSON is the newline-delimited JSON file extension
	ExtJSON = ".json"
	// ExtJSONL is the JSON lines file extension
	ExtJSONL = ".jsonl"
	// ExtNDJSON is the newline-delimited JSON file extension
	ExtNDJSON = ".ndjson"
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtLTSV is the LTSV file extension
	ExtLTSV = ".ltsv"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
	// ExtXLSX is the Excel file extension
	ExtXLSX = ".xlsx"
)

// DetectFormat returns the format selected by the extension of name, after
// any compression extension is removed. FormatUnknown means the content
// must be inspected.
func DetectFormat(name string) Format {
	if IsStdin(name) {
		return FormatUnknown
	}

	base := strings.ToLower(RemoveCompressionExtension(name))
	switch filepath.Ext(base) {
	case ExtJSON, ExtJSONL, ExtNDJSON:
		return FormatJSON
	case ExtCSV:
		return FormatCSV
	case ExtTSV:
		return FormatTSV
	case ExtLTSV:
		return FormatLTSV
	case ExtParquet:
		return FormatParquet
	case ExtXLSX:
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// File represents a file that can be converted to Table
type File struct {
	path   string
	format Format
}

// NewFile creates a new File
func NewFile(path string) *File {
	return &File{
		path:   path,
		format: DetectFormat(path),
	}
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Format returns the format selected by the file extension.
func (f *File) Format() Format {
	return f.format
}

// IsCompressed returns true if file is compressed
func (f *File) IsCompressed() bool {
	return DetectCompressionType(f.path) != CompressionNone
}

// ToTable reads the file, or standard input for "-", and infers its table.
func (f *File) ToTable(hints ParseHints) (*Table, error) {
	return f.ToTableContext(context.Background(), hints)
}

// ToTableContext is ToTable with a context.
func (f *File) ToTableContext(ctx context.Context, hints ParseHints) (_ *Table, err error) {
	if IsStdin(f.path) {
		return InferContext(ctx, RawInput{Name: StdinName, Reader: os.Stdin}, hints)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	return InferContext(ctx, RawInput{Name: f.path, Reader: file}, hints)
}
