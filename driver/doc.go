// Package driver loads tables into SQLite and provides the tosql
// database/sql driver.
//
// Inputs are bound to single-letter table names in the order given: the
// first is "a", the second "b", and so on up to "z". Each connection owns an
// in-memory SQLite database.
//
// Usage:
//
//	import _ "github.com/nao1215/tosql"
//	db, err := sql.Open("tosql", "orders.csv;customers.json")
//	rows, err := db.Query("SELECT * FROM a JOIN b ON a.customer = b.id")
package driver
