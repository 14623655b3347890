package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// StdinName is the input name that denotes standard input.
const StdinName = "-"

// stdinAltName is the name some callers give standard input.
const stdinAltName = "<stdin>"

// stdinTableName is the table name of standard input.
const stdinTableName = "stdin"

// DefaultMaxInputBytes is the default buffering limit for one input (512MB).
const DefaultMaxInputBytes int64 = 512 * 1024 * 1024

// IsStdin reports whether name denotes standard input.
func IsStdin(name string) bool {
	return name == StdinName || name == stdinAltName
}

// RawInput is an unparsed input stream. Name is a filename hint used for
// the extension shortcut, compression and the table name.
type RawInput struct {
	Name   string
	Reader io.Reader
}

// ParseHints are caller supplied options for Infer.
type ParseHints struct {
	// Columns are explicit column names prepended as a header line.
	Columns []string
	// Auto names one column per token of the first line: c_a, c_b, ...
	Auto bool
	// Delimiter overrides the comma of delimited text. `\t` means tab.
	Delimiter string
	// MaxInputBytes caps the buffered input. Zero means DefaultMaxInputBytes.
	MaxInputBytes int64
}

// ParseDelimiter validates a delimiter option. The empty string yields
// ok == false and no error.
func ParseDelimiter(s string) (r rune, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	if s == `\t` {
		return '\t', true, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '\r' || r == '\n' || r == '"' {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
	return r, true, nil
}

// Infer parses raw into a table. See InferContext.
func Infer(raw RawInput, hints ParseHints) (*Table, error) {
	return InferContext(context.Background(), raw, hints)
}

// InferContext parses raw into a table.
//
// A recognized file extension selects the parser directly. Otherwise the
// whole input is buffered and JSON lines, delimited text and whitespace
// separated columns are tried in that order; the first plausible result
// wins. A *ParseError lists every failed attempt.
func InferContext(ctx context.Context, raw RawInput, hints ParseHints) (_ *Table, err error) {
	if raw.Reader == nil {
		return nil, ErrNilReader
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comma, hasComma, err := ParseDelimiter(hints.Delimiter)
	if err != nil {
		return nil, err
	}
	if !hasComma {
		comma = csvDelimiter
	}

	reader := raw.Reader
	if !IsStdin(raw.Name) {
		handler := NewCompressionHandler(DetectCompressionType(raw.Name))
		decompressed, closeReader, openErr := handler.CreateReader(reader)
		if openErr != nil {
			return nil, openErr
		}
		defer func() {
			if closeErr := closeReader(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}()
		reader = decompressed
	}

	content, err := readLimited(reader, hints.MaxInputBytes)
	if err != nil {
		return nil, err
	}

	name := TableFromFilePath(raw.Name)
	if format := DetectFormat(raw.Name); format != FormatUnknown {
		table, err := parseByFormat(ctx, name, format, content, comma)
		if err != nil {
			return nil, &ParseError{Input: raw.Name, Failures: []StrategyFailure{{Format: format, Err: err}}}
		}
		return table, nil
	}

	return inferHeuristic(raw.Name, name, synthesizeHeader(content, hints), comma, hasComma)
}

// readLimited reads r completely unless it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxInputBytes
	}
	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	return content, nil
}

// parseByFormat parses content with the reader of an extension shortcut.
func parseByFormat(ctx context.Context, name string, format Format, content []byte, comma rune) (*Table, error) {
	var (
		header  Header
		records []Record
		err     error
	)

	switch format {
	case FormatJSON:
		header, rows, err := parseJSONLines(content)
		if err != nil {
			return nil, err
		}
		return NewTypedTable(name, header, rows).withFormat(format), nil
	case FormatCSV:
		header, records, err = parseDelimited(content, delimitedOptions{comma: comma, flexible: true})
	case FormatTSV:
		header, records, err = parseDelimited(content, delimitedOptions{comma: tsvDelimiter, flexible: true})
	case FormatLTSV:
		header, records, err = parseLTSV(content)
	case FormatParquet:
		header, records, err = parseParquet(ctx, content)
	case FormatXLSX:
		header, records, err = parseXLSX(content)
	default:
		return nil, fmt.Errorf("no reader for format %s", format)
	}
	if err != nil {
		return nil, err
	}

	return NewTable(name, header, records).withFormat(format), nil
}

// inferHeuristic runs the strategy cascade over buffered content.
func inferHeuristic(input, name string, content []byte, comma rune, hasComma bool) (*Table, error) {
	stdin := IsStdin(input)
	var failures []StrategyFailure

	header, rows, err := parseJSONLines(content)
	switch {
	case err != nil:
		failures = append(failures, StrategyFailure{Format: FormatJSON, Err: err})
	case len(header) < 2:
		failures = append(failures, StrategyFailure{Format: FormatJSON, Err: errSingleColumn})
	default:
		return NewTypedTable(name, header, rows).withFormat(FormatJSON), nil
	}

	format := FormatCSV
	if hasComma && comma == tsvDelimiter {
		format = FormatTSV
	}
	csvHeader, records, err := parseDelimited(content, delimitedOptions{comma: comma})
	switch {
	case err != nil:
		failures = append(failures, StrategyFailure{Format: format, Err: err})
	case stdin && len(csvHeader) < 2:
		failures = append(failures, StrategyFailure{Format: format, Err: errSingleColumn})
	default:
		return NewTable(name, csvHeader, records).withFormat(format), nil
	}

	wsHeader, records, err := parseWhitespace(content)
	if err == nil {
		return NewTable(name, wsHeader, records).withFormat(FormatWhitespace), nil
	}
	failures = append(failures, StrategyFailure{Format: FormatWhitespace, Err: err})

	return nil, &ParseError{Input: input, Failures: failures}
}

// synthesizeHeader prepends a header line built from hints. Explicit
// columns take precedence over auto naming.
func synthesizeHeader(content []byte, hints ParseHints) []byte {
	var names []string
	switch {
	case len(hints.Columns) > 0:
		names = hints.Columns
	case hints.Auto:
		for i := range strings.Fields(firstLine(content)) {
			names = append(names, AutoColumnName(i))
		}
	}
	if len(names) == 0 {
		return content
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + 8*len(names))
	buf.WriteString(strings.Join(names, " "))
	buf.WriteByte('\n')
	buf.Write(content)
	return buf.Bytes()
}

// firstLine returns the first line of content that is not blank.
func firstLine(content []byte) string {
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// AutoColumnName returns the generated name of the i-th column (zero
// based): c_a ... c_z, then c_aa, c_ab, ...
func AutoColumnName(i int) string {
	var suffix []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		suffix = append([]byte{byte('a' + (n-1)%26)}, suffix...)
	}
	return "c_" + string(suffix)
}
