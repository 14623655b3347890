package tosql

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/tosql/domain/model"
	"github.com/xuri/excelize/v2"
)

// parquetChunkSize is the maximum row group length of written Parquet files.
const parquetChunkSize int64 = 1024 * 1024

// ltsvEscaper keeps LTSV values on one field of one line.
var ltsvEscaper = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// WriteTable writes table to w.
//
// JSON output has one object per row, keys in column order. Integral
// floats keep a fractional part ("1.0") so that they read back as floats,
// and NaN or infinite values are written as null. Delimited outputs write a
// header line; null cells are empty.
func WriteTable(w io.Writer, table *Table, options OutputOptions) (err error) {
	if table == nil {
		return ErrNilTable
	}

	handler := model.NewCompressionHandler(options.Compression)
	writer, closeWriter, err := handler.CreateWriter(w)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeWriter(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close compressed writer: %w", closeErr))
		}
	}()

	switch options.Format {
	case OutputFormatJSON:
		return writeJSONLines(writer, table)
	case OutputFormatCSV:
		return writeDelimited(writer, table, ',')
	case OutputFormatTSV:
		return writeDelimited(writer, table, '\t')
	case OutputFormatLTSV:
		return writeLTSV(writer, table)
	case OutputFormatParquet:
		return writeParquet(writer, table)
	case OutputFormatXLSX:
		return writeXLSX(writer, table)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, options.Format)
	}
}

// WriteFile creates path, replacing an existing file, and writes table to it.
func WriteFile(path string, table *Table, options OutputOptions) (err error) {
	file, err := os.Create(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output file: %w", closeErr))
		}
	}()

	return WriteTable(file, table, options)
}

// jsonEncoder renders JSON strings without HTML escaping.
type jsonEncoder struct {
	buf bytes.Buffer
	enc *json.Encoder
}

func newJSONEncoder() *jsonEncoder {
	e := &jsonEncoder{}
	e.enc = json.NewEncoder(&e.buf)
	e.enc.SetEscapeHTML(false)
	return e
}

func (e *jsonEncoder) appendString(dst []byte, s string) ([]byte, error) {
	e.buf.Reset()
	if err := e.enc.Encode(s); err != nil {
		return dst, err
	}
	return append(dst, bytes.TrimSuffix(e.buf.Bytes(), []byte("\n"))...), nil
}

func (e *jsonEncoder) appendValue(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return append(dst, "null"...), nil
	case int64:
		return strconv.AppendInt(dst, x, 10), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return append(dst, "null"...), nil
		}
		return append(dst, formatFloat(x)...), nil
	case string:
		return e.appendString(dst, x)
	default:
		return e.appendString(dst, fmt.Sprint(x))
	}
}

func writeJSONLines(w io.Writer, table *Table) error {
	enc := newJSONEncoder()
	header := table.Header()

	keys := make([][]byte, len(header))
	for i, name := range header {
		key, err := enc.appendString(nil, name)
		if err != nil {
			return err
		}
		keys[i] = key
	}

	bw := bufio.NewWriter(w)
	var line []byte
	for _, row := range table.Rows() {
		line = append(line[:0], '{')
		for i := range header {
			if i > 0 {
				line = append(line, ',')
			}
			line = append(line, keys[i]...)
			line = append(line, ':')

			var cell any
			if i < len(row) {
				cell = row[i]
			}
			var err error
			if line, err = enc.appendValue(line, cell); err != nil {
				return err
			}
		}
		line = append(line, '}', '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeDelimited(w io.Writer, table *Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(table.Header()); err != nil {
		return err
	}
	record := make([]string, len(table.Header()))
	for _, row := range table.Rows() {
		for i := range record {
			record[i] = cellAt(row, i)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeLTSV(w io.Writer, table *Table) error {
	header := table.Header()
	bw := bufio.NewWriter(w)

	fields := make([]string, len(header))
	for _, row := range table.Rows() {
		for i, name := range header {
			fields[i] = name + ":" + ltsvEscaper.Replace(cellAt(row, i))
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeParquet(w io.Writer, table *Table) error {
	columns := table.ColumnInfo()
	if len(columns) == 0 {
		return fmt.Errorf("%w: parquet output needs at least one column", ErrUnsupportedFormat)
	}

	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		fields[i] = arrow.Field{Name: col.Name, Type: arrowType(col.Type), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for _, row := range table.Rows() {
		for i := range columns {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			appendArrowValue(builder.Field(i), cell)
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	arrowTable := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer arrowTable.Release()

	return pqarrow.WriteTable(arrowTable, w, parquetChunkSize, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
}

// arrowType maps a column type onto the Arrow type it is written as.
func arrowType(t model.ColumnType) arrow.DataType {
	switch t {
	case model.ColumnTypeInteger:
		return arrow.PrimitiveTypes.Int64
	case model.ColumnTypeReal:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

func appendArrowValue(b array.Builder, v any) {
	if v == nil {
		b.AppendNull()
		return
	}

	switch fb := b.(type) {
	case *array.Int64Builder:
		if x, ok := v.(int64); ok {
			fb.Append(x)
			return
		}
	case *array.Float64Builder:
		switch x := v.(type) {
		case float64:
			fb.Append(x)
			return
		case int64:
			fb.Append(float64(x))
			return
		}
	case *array.StringBuilder:
		fb.Append(cellString(v))
		return
	}
	b.AppendNull()
}

func writeXLSX(w io.Writer, table *Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	sheet := f.GetSheetName(0)

	header := make([]any, len(table.Header()))
	for i, name := range table.Header() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = xlsxValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// xlsxValue keeps numbers numeric; non-finite floats become empty cells.
func xlsxValue(v any) any {
	if x, ok := v.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
		return nil
	}
	return v
}

func cellAt(row Row, i int) string {
	if i >= len(row) {
		return ""
	}
	return cellString(row[i])
}

// cellString renders a cell for text outputs. Null and non-finite values
// are empty.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return formatFloat(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// formatFloat renders f in the shortest form that reads back as a float.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
