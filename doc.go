// Package tosql runs SQL over tabular input whose format is not declared.
//
// Inputs are CSV, TSV, LTSV, JSON lines, Parquet, Excel workbooks or plain
// column-aligned text such as the output of ls -l or ps. A recognized file
// extension selects the reader; anything else, standard input in
// particular, is inspected by a heuristic that tries JSON lines, then
// delimited text, then whitespace separated columns, and keeps the first
// plausible table. Column types (INTEGER, REAL, TEXT) are inferred from the
// values.
//
// Parsed inputs are loaded into an in-memory SQLite database, powered by
// modernc.org/sqlite, under single-letter aliases: the first input is
// table a, the second b, and so on up to z.
//
// # Basic Usage
//
//	table, err := tosql.Infer(tosql.RawInput{Name: "-", Reader: os.Stdin}, tosql.ParseHints{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := tosql.Execute([]*tosql.Table{table}, "SELECT * FROM a WHERE size > 1000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := tosql.WriteTable(os.Stdout, result, tosql.NewOutputOptions()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Builder
//
// For several inputs, use the Builder:
//
//	validated, err := tosql.NewBuilder().
//	    AddPath("orders.csv").
//	    AddPath("customers.json.gz").
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := validated.Execute(ctx, "SELECT b.name, SUM(a.total) FROM a JOIN b ON a.customer = b.id GROUP BY b.name")
//
// # database/sql
//
// Importing the package registers the "tosql" driver. Its DSN is a list of
// paths separated by semicolons:
//
//	db, err := sql.Open("tosql", "orders.csv;customers.json")
//
// # Hints
//
// ParseHints supply what the heuristic cannot guess: explicit column names
// for headerless input, automatic names (c_a, c_b, ...) from the first
// line, or a delimiter other than the comma.
//
// # Persistence
//
// Persist writes a table into an on-disk SQLite file, replacing any file
// already at that path.
package tosql
