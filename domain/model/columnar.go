package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

// parseParquet reads every row group of a Parquet file. Cells are rendered
// as text and typed again by column inference; booleans become 1 and 0.
func parseParquet(ctx context.Context, content []byte) (Header, []Record, error) {
	if len(content) == 0 {
		return nil, nil, ErrEmptyData
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	if table.NumRows() == 0 {
		return nil, nil, ErrEmptyData
	}

	schema := table.Schema()
	names := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		names[i] = field.Name
	}

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	records := make([]Record, 0, table.NumRows())
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := 0; i < int(batch.NumRows()); i++ {
			record := make(Record, batch.NumCols())
			for j, col := range batch.Columns() {
				record[j] = arrowValue(col, i)
			}
			records = append(records, record)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading table records: %w", err)
	}

	return normalizeHeader(names), records, nil
}

// arrowValue renders one cell of an Arrow column; null is the empty string.
func arrowValue(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return ""
	}
	if b, ok := arr.(*array.Boolean); ok {
		if b.Value(i) {
			return "1"
		}
		return "0"
	}
	return arr.ValueStr(i)
}

// parseXLSX reads the first sheet of an Excel workbook. The first row is
// the header; short rows are padded and wide rows add unnamed columns.
func parseXLSX(content []byte) (_ Header, _ []Record, err error) {
	xlsxFile, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel workbook: %w", err)
	}
	defer func() {
		if closeErr := xlsxFile.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, nil, errors.New("no sheets found in Excel workbook")
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)
	}

	nonEmpty := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			nonEmpty = append(nonEmpty, row)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil, ErrEmptyData
	}

	return shapeRecords(nonEmpty[0], nonEmpty[1:], true)
}
