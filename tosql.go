package tosql

import (
	"context"
	"database/sql"

	"github.com/nao1215/tosql/domain/model"
	tosqldriver "github.com/nao1215/tosql/driver"
)

const (
	// DriverName is the name for the tosql driver
	DriverName = "tosql"
)

// Register registers the tosql driver with database/sql
func Register() {
	sql.Register(DriverName, tosqldriver.NewDriver())
}

func init() {
	// Auto-register the driver on import
	Register()
}

// Infer parses raw into a table.
//
// A recognized file extension (.json, .jsonl, .ndjson, .csv, .tsv, .ltsv,
// .parquet, .xlsx, optionally followed by .gz, .bz2, .xz or .zst) selects
// the reader directly. Anything else, standard input included, goes through
// the heuristic: JSON lines first, then delimited text, then whitespace
// separated columns. When nothing fits, the error is a *ParseError that
// lists every attempt.
//
// Example:
//
//	table, err := tosql.Infer(tosql.RawInput{Name: "-", Reader: os.Stdin}, tosql.ParseHints{Auto: true})
//	if err != nil {
//		log.Fatal(err)
//	}
func Infer(raw RawInput, hints ParseHints) (*Table, error) {
	return model.Infer(raw, hints)
}

// InferContext is Infer with a context.
func InferContext(ctx context.Context, raw RawInput, hints ParseHints) (*Table, error) {
	return model.InferContext(ctx, raw, hints)
}

// InferFile opens path, or standard input for "-", and parses it.
func InferFile(ctx context.Context, path string, hints ParseHints) (*Table, error) {
	if err := tosqldriver.ValidatePath(path); err != nil {
		return nil, err
	}
	return model.NewFile(path).ToTableContext(ctx, hints)
}

// Open opens a database whose tables are the given inputs, bound to the
// aliases a, b, c, ... in argument order. "-" reads standard input.
//
// Every connection of the returned pool gets its own in-memory SQLite copy
// of the inputs; writes never reach the input files.
//
// Example usage:
//
//	db, err := tosql.Open("orders.csv", "customers.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query(`SELECT b.name, COUNT(*) FROM a JOIN b ON a.customer = b.id GROUP BY b.name`)
func Open(paths ...string) (*sql.DB, error) {
	return OpenContext(context.Background(), paths...)
}

// OpenContext is Open with a context. Inputs are parsed before it returns.
func OpenContext(ctx context.Context, paths ...string) (*sql.DB, error) {
	validated, err := NewBuilder().AddPaths(paths...).Build(ctx)
	if err != nil {
		return nil, err
	}
	return validated.Open(ctx)
}
