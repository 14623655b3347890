package model

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// jsonShape is the kind of top-level value on a JSON line.
type jsonShape int

const (
	jsonShapeNone jsonShape = iota
	jsonShapeObject
	jsonShapePositional
)

var errMixedJSONShape = errors.New("lines mix objects with arrays or scalars")

// parseJSONLines parses newline-delimited JSON. Objects contribute columns
// in first-seen key order; arrays and scalars contribute positional
// columns "0", "1", ... Missing values are null.
func parseJSONLines(content []byte) (Header, []Row, error) {
	if !isText(content) {
		return nil, nil, errNotText
	}

	var (
		header []string
		index  = make(map[string]int)
		rows   []map[int]any
		shape  = jsonShapeNone
	)

	column := func(name string) int {
		pos, ok := index[name]
		if !ok {
			pos = len(header)
			index[name] = pos
			header = append(header, name)
		}
		return pos
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		row := make(map[int]any)
		lineShape, err := decodeJSONLine(line, row, column)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if shape != jsonShapeNone && shape != lineShape {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, errMixedJSONShape)
		}
		shape = lineShape
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyData
	}

	typed := make([]Row, len(rows))
	for i, row := range rows {
		r := make(Row, len(header))
		for pos, value := range row {
			r[pos] = value
		}
		typed[i] = r
	}
	widenMixedNumbers(typed, len(header))

	return NewHeader(header), typed, nil
}

// decodeJSONLine decodes exactly one JSON value from line into row.
func decodeJSONLine(line []byte, row map[int]any, column func(string) int) (jsonShape, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return jsonShapeNone, err
	}

	var shape jsonShape
	switch tok {
	case json.Delim('{'):
		shape = jsonShapeObject
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return jsonShapeNone, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return jsonShapeNone, fmt.Errorf("unexpected object key %v", keyTok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return jsonShapeNone, err
			}
			value, err := jsonCell(raw)
			if err != nil {
				return jsonShapeNone, err
			}
			row[column(key)] = value
		}
		if _, err := dec.Token(); err != nil {
			return jsonShapeNone, err
		}

	case json.Delim('['):
		shape = jsonShapePositional
		for i := 0; dec.More(); i++ {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return jsonShapeNone, err
			}
			value, err := jsonCell(raw)
			if err != nil {
				return jsonShapeNone, err
			}
			row[column(strconv.Itoa(i))] = value
		}
		if _, err := dec.Token(); err != nil {
			return jsonShapeNone, err
		}

	default:
		shape = jsonShapePositional
		row[column("0")] = jsonScalar(tok)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return jsonShapeNone, errors.New("unexpected data after JSON value")
	}
	return shape, nil
}

// jsonCell converts one JSON value to a cell. Nested objects and arrays
// become compact JSON text.
func jsonCell(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonScalar(tok), nil
}

// jsonScalar converts a scalar token to a cell.
func jsonScalar(tok json.Token) any {
	switch v := tok.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return i
		}
		if isIntegerLiteral(v.String()) {
			return v.String()
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// widenMixedNumbers converts int64 cells to float64 in every column that
// also holds float64 cells.
func widenMixedNumbers(rows []Row, width int) {
	for col := 0; col < width; col++ {
		hasInt, hasFloat := false, false
		for _, row := range rows {
			switch row[col].(type) {
			case int64:
				hasInt = true
			case float64:
				hasFloat = true
			}
		}
		if !hasInt || !hasFloat {
			continue
		}
		for _, row := range rows {
			if i, ok := row[col].(int64); ok {
				row[col] = float64(i)
			}
		}
	}
}
