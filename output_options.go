package tosql

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nao1215/tosql/domain/model"
)

// OutputFormat represents the output file format
type OutputFormat int

const (
	// OutputFormatJSON represents one JSON object per line
	OutputFormatJSON OutputFormat = iota
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
	// OutputFormatLTSV represents LTSV output format
	OutputFormatLTSV
	// OutputFormatParquet represents Parquet output format
	OutputFormatParquet
	// OutputFormatXLSX represents Excel XLSX output format
	OutputFormatXLSX
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatCSV:
		return "csv"
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatLTSV:
		return "ltsv"
	case OutputFormatParquet:
		return "parquet"
	case OutputFormatXLSX:
		return "xlsx"
	default:
		return "json"
	}
}

// Extension returns the file extension for the format
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatCSV:
		return model.ExtCSV
	case OutputFormatTSV:
		return model.ExtTSV
	case OutputFormatLTSV:
		return model.ExtLTSV
	case OutputFormatParquet:
		return model.ExtParquet
	case OutputFormatXLSX:
		return model.ExtXLSX
	default:
		return model.ExtJSONL
	}
}

// ParseOutputFormat returns the format called name, case-insensitively.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "jsonl", "ndjson":
		return OutputFormatJSON, nil
	case "csv":
		return OutputFormatCSV, nil
	case "tsv":
		return OutputFormatTSV, nil
	case "ltsv":
		return OutputFormatLTSV, nil
	case "parquet":
		return OutputFormatParquet, nil
	case "xlsx":
		return OutputFormatXLSX, nil
	default:
		return OutputFormatJSON, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// OutputFormatFromPath guesses the format from the extension of path,
// ignoring a compression suffix. ok is false when nothing matches.
func OutputFormatFromPath(path string) (format OutputFormat, ok bool) {
	switch model.DetectFormat(path) {
	case model.FormatJSON:
		return OutputFormatJSON, true
	case model.FormatCSV:
		return OutputFormatCSV, true
	case model.FormatTSV:
		return OutputFormatTSV, true
	case model.FormatLTSV:
		return OutputFormatLTSV, true
	case model.FormatParquet:
		return OutputFormatParquet, true
	case model.FormatXLSX:
		return OutputFormatXLSX, true
	default:
		return OutputFormatJSON, false
	}
}

// CompressionType represents the compression type
type CompressionType = model.CompressionType

const (
	// CompressionNone represents no compression
	CompressionNone = model.CompressionNone
	// CompressionGZ represents gzip compression
	CompressionGZ = model.CompressionGZ
	// CompressionBZ2 represents bzip2 compression, readable but not writable
	CompressionBZ2 = model.CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ = model.CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD = model.CompressionZSTD
)

// OutputOptions configures how a table is written.
//
// Example:
//
//	options := NewOutputOptions().
//		WithFormat(OutputFormatTSV).
//		WithCompression(CompressionGZ)
//
//	err := WriteTable(w, result, options)
type OutputOptions struct {
	// Format specifies the output format
	Format OutputFormat
	// Compression specifies the compression type
	Compression CompressionType
}

// NewOutputOptions creates default output options (JSON lines, no compression).
func NewOutputOptions() OutputOptions {
	return OutputOptions{
		Format:      OutputFormatJSON,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output format.
//
// Options:
//   - OutputFormatJSON: One JSON object per line
//   - OutputFormatCSV: Comma-separated values
//   - OutputFormatTSV: Tab-separated values
//   - OutputFormatLTSV: Labeled tab-separated values
//   - OutputFormatParquet: Apache Parquet
//   - OutputFormatXLSX: Excel workbook with one sheet
func (o OutputOptions) WithFormat(format OutputFormat) OutputOptions {
	o.Format = format
	return o
}

// WithCompression compresses the output.
//
// Options:
//   - CompressionNone: No compression (default)
//   - CompressionGZ: Gzip compression (.gz)
//   - CompressionXZ: XZ compression (.xz)
//   - CompressionZSTD: Zstandard compression (.zst)
func (o OutputOptions) WithCompression(compression CompressionType) OutputOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the complete file extension including compression
func (o OutputOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}

// OutputOptionsFromPath derives options from the extensions of path. The
// format falls back to fallback when the extension names none.
func OutputOptionsFromPath(path string, fallback OutputFormat) OutputOptions {
	format, ok := OutputFormatFromPath(path)
	if !ok {
		format = fallback
	}
	return OutputOptions{
		Format:      format,
		Compression: model.DetectCompressionType(filepath.Base(path)),
	}
}
