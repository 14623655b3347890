package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// unnamedPrefix names columns whose header is missing.
const unnamedPrefix = "Unnamed: "

// delimitedOptions controls parseDelimited.
type delimitedOptions struct {
	comma rune
	// flexible lets rows wider than the header add columns instead of failing
	flexible bool
}

// isText reports whether content is UTF-8 without NUL bytes.
func isText(content []byte) bool {
	return utf8.Valid(content) && bytes.IndexByte(content, 0) < 0
}

// parseDelimited parses delimited text whose first record is the header.
// A quoted field left open at the end of input fails the parse.
func parseDelimited(content []byte, opts delimitedOptions) (Header, []Record, error) {
	if !isText(content) {
		return nil, nil, errNotText
	}
	if hasUnclosedQuote(content, opts.comma) {
		return nil, nil, errUnclosedQuote
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = opts.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return shapeDelimited(all, opts.flexible)
}

// parseWhitespace parses column aligned text. Every line is split on runs
// of whitespace; quotes are ordinary characters.
func parseWhitespace(content []byte) (Header, []Record, error) {
	if !isText(content) {
		return nil, nil, errNotText
	}

	var all [][]string
	for _, line := range strings.Split(string(content), "\n") {
		all = append(all, strings.Fields(line))
	}
	return shapeDelimited(all, true)
}

// shapeDelimited drops blank records and splits off the header.
//
// When the first data row has exactly one field more than the header, the
// leading field of every row is a row label and is dropped.
func shapeDelimited(all [][]string, flexible bool) (Header, []Record, error) {
	records := make([][]string, 0, len(all))
	for _, r := range all {
		if len(r) == 0 || (len(r) == 1 && strings.TrimSpace(r[0]) == "") {
			continue
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyData
	}

	header := records[0]
	rows := records[1:]
	if len(rows) > 0 && len(rows[0]) == len(header)+1 {
		for i, row := range rows {
			if len(row) > 0 {
				rows[i] = row[1:]
			}
		}
	}

	return shapeRecords(header, rows, flexible)
}

// hasUnclosedQuote reports whether a quoted field is still open at the end
// of content. It follows encoding/csv with LazyQuotes: a quote inside a
// quoted field only closes it when a delimiter, a line break or the end of
// input follows.
func hasUnclosedQuote(content []byte, comma rune) bool {
	s := string(content)
	inQuotes, fieldStart := false, true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		switch {
		case inQuotes:
			if r != '"' {
				continue
			}
			next, nextSize := utf8.DecodeRuneInString(s[i:])
			switch {
			case next == '"':
				i += nextSize
			case i == len(s), next == comma, next == '\n', next == '\r':
				inQuotes = false
			}
		case r == '"' && fieldStart:
			inQuotes = true
			fieldStart = false
		case r == comma || r == '\n':
			fieldStart = true
		default:
			fieldStart = false
		}
	}
	return inQuotes
}

// shapeRecords makes every record as wide as the header. Short records are
// padded with empty fields. Wide records fail unless flexible, in which case
// the header grows with unnamed columns.
func shapeRecords(header []string, rows [][]string, flexible bool) (Header, []Record, error) {
	width := len(header)
	for i, row := range rows {
		if len(row) <= width {
			continue
		}
		if !flexible {
			return nil, nil, fmt.Errorf("expected %d fields in record %d, saw %d", len(header), i+2, len(row))
		}
		width = len(row)
	}

	names := make([]string, width)
	copy(names, header)

	records := make([]Record, len(rows))
	for i, row := range rows {
		record := make(Record, width)
		copy(record, row)
		records[i] = record
	}

	return normalizeHeader(names), records, nil
}

// normalizeHeader names empty columns "Unnamed: <index>" and renames
// repeated names to "name.1", "name.2" so that every column is addressable.
func normalizeHeader(names []string) Header {
	header := make(Header, len(names))
	used := make(map[string]bool, len(names))
	counts := make(map[string]int, len(names))

	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			name = unnamedPrefix + strconv.Itoa(i)
		}
		candidate := name
		for used[candidate] {
			counts[name]++
			candidate = name + "." + strconv.Itoa(counts[name])
		}
		used[candidate] = true
		header[i] = candidate
	}

	return header
}

// parseLTSV parses labeled tab-separated values. Columns appear in the
// order their labels are first seen.
func parseLTSV(content []byte) (Header, []Record, error) {
	if !isText(content) {
		return nil, nil, errNotText
	}

	var header []string
	index := make(map[string]int)
	var rows []map[int]string

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		row := make(map[int]string)
		for _, pair := range strings.Split(line, "\t") {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			pos, ok := index[key]
			if !ok {
				pos = len(header)
				index[key] = pos
				header = append(header, key)
			}
			row[pos] = strings.TrimSpace(kv[1])
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, nil, ErrEmptyData
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		record := make(Record, len(header))
		for pos, value := range row {
			record[pos] = value
		}
		records[i] = record
	}

	return normalizeHeader(header), records, nil
}
