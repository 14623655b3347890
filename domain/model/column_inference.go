package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datetimePatterns are the date and time spellings recognized as DATETIME
var datetimePatterns = []struct {
	pattern *regexp.Regexp
	formats []string // Multiple formats for the same pattern
}{
	// ISO8601 formats with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 formats without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4} \d{1,2}:\d{2}:\d{2}$`),
		[]string{"2.1.2006 15:04:05", "02.01.2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
	// Time only
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"15:04:05", "15:04:05.000", "3:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}$`),
		[]string{"15:04", "3:04"},
	},
}

// isDatetime checks if a string value represents a datetime
func isDatetime(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	for _, dp := range datetimePatterns {
		if !dp.pattern.MatchString(value) {
			continue
		}
		for _, format := range dp.formats {
			if _, err := time.Parse(format, value); err == nil {
				return true
			}
		}
	}

	return false
}

// parseInteger parses a base 10 integer literal.
func parseInteger(value string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return i, err == nil
}

// isIntegerLiteral reports whether value is an optionally signed run of
// decimal digits, whatever its magnitude.
func isIntegerLiteral(value string) bool {
	value = strings.TrimSpace(value)
	if value != "" && (value[0] == '+' || value[0] == '-') {
		value = value[1:]
	}
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// parseReal parses a finite decimal literal. NaN and Inf spellings are text.
func parseReal(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// InferColumnType infers the SQL column type from a slice of string values.
// Empty values are nulls and do not take part in the decision.
func InferColumnType(values []string) ColumnType {
	hasDatetime := false
	hasReal := false
	hasInteger := false

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		// Datetime is checked before numbers so that "10:30" is never REAL.
		if isDatetime(value) {
			hasDatetime = true
			continue
		}
		if _, ok := parseInteger(value); ok {
			hasInteger = true
			continue
		}
		// Integers wider than int64 would lose digits as REAL
		if isIntegerLiteral(value) {
			return ColumnTypeText
		}
		if _, ok := parseReal(value); ok {
			hasReal = true
			continue
		}

		// A single text value makes the whole column text
		return ColumnTypeText
	}

	// Priority: TEXT > DATETIME > REAL > INTEGER
	switch {
	case hasDatetime:
		return ColumnTypeDatetime
	case hasReal:
		return ColumnTypeReal
	case hasInteger:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumnsInfo infers column information from header and data records
func InferColumnsInfo(header Header, records []Record) []ColumnInfo {
	columns := make([]ColumnInfo, len(header))

	for i, name := range header {
		values := make([]string, 0, len(records))
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i] = ColumnInfo{
			Name: name,
			Type: InferColumnType(values),
		}
	}

	return columns
}

// convertValue converts a raw field into a cell of the given column type.
// Empty fields become nil.
func convertValue(value string, columnType ColumnType) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	switch columnType {
	case ColumnTypeInteger:
		if i, ok := parseInteger(value); ok {
			return i
		}
	case ColumnTypeReal:
		if f, ok := parseReal(value); ok {
			return f
		}
	}
	return value
}

// inferTypedColumnsInfo derives column types from cells that are already typed.
func inferTypedColumnsInfo(header Header, rows []Row) []ColumnInfo {
	columns := make([]ColumnInfo, len(header))

	for i, name := range header {
		var hasInteger, hasReal, hasText bool
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			switch row[i].(type) {
			case int64:
				hasInteger = true
			case float64:
				hasReal = true
			case string:
				hasText = true
			}
		}

		columnType := ColumnTypeText
		switch {
		case hasText && (hasInteger || hasReal):
			columnType = ColumnTypeAny
		case hasText:
			columnType = ColumnTypeText
		case hasReal:
			columnType = ColumnTypeReal
		case hasInteger:
			columnType = ColumnTypeInteger
		}
		columns[i] = ColumnInfo{Name: name, Type: columnType}
	}

	return columns
}
