package driver

import (
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/nao1215/tosql/domain/model"
	"modernc.org/sqlite"
)

func TestQuoteIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a", `"a"`},
		{"Date.Week of", `"Date.Week of"`},
		{`say "hi"`, `"say ""hi"""`},
		{"select", `"select"`},
	}
	for _, tt := range tests {
		if got := QuoteIdentifier(tt.in); got != tt.want {
			t.Errorf("QuoteIdentifier(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestBuildCreateTableQuery(t *testing.T) {
	t.Parallel()

	columns := []model.ColumnInfo{
		{Name: "id", Type: model.ColumnTypeInteger},
		{Name: "score", Type: model.ColumnTypeReal},
		{Name: "day", Type: model.ColumnTypeDatetime},
		{Name: "note", Type: model.ColumnTypeText},
		{Name: "mixed", Type: model.ColumnTypeAny},
	}

	got := buildCreateTableQuery("a", columns)
	want := `CREATE TABLE "a" ("id" INTEGER, "score" REAL, "day" TEXT, "note" TEXT, "mixed")`
	if got != want {
		t.Errorf("buildCreateTableQuery() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildInsertQuery(t *testing.T) {
	t.Parallel()

	if got := buildInsertQuery("b", 3); got != `INSERT INTO "b" VALUES (?, ?, ?)` {
		t.Errorf("buildInsertQuery() = %s", got)
	}
	if got := buildPlaceholders(0); got != "" {
		t.Errorf("buildPlaceholders(0) = %q", got)
	}
}

func TestLoadKeepsCellTypes(t *testing.T) {
	t.Parallel()

	table := model.NewTypedTable("events", model.NewHeader([]string{"n", "x", "s", "any"}), []model.Row{
		{int64(1), 1.5, "one", int64(7)},
		{nil, 2.0, `quote "me"`, "seven"},
	})

	conn, err := (&sqlite.Driver{}).Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := Load(t.Context(), conn, []*model.Table{table}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	stmt, err := conn.Prepare(`SELECT n, x, s, "any", typeof("any") FROM a`)
	if err != nil {
		t.Fatal(err)
	}
	defer stmt.Close()

	rows, err := stmt.(driver.StmtQueryContext).QueryContext(t.Context(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	want := [][]driver.Value{
		{int64(1), 1.5, "one", int64(7), "integer"},
		{nil, 2.0, `quote "me"`, "seven", "text"},
	}
	dest := make([]driver.Value, 5)
	for i := 0; ; i++ {
		err := rows.Next(dest)
		if errors.Is(err, io.EOF) {
			if i != len(want) {
				t.Errorf("got %d rows, want %d", i, len(want))
			}
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		for j, v := range want[i] {
			if dest[j] != v {
				t.Errorf("row %d col %d = %#v, want %#v", i, j, dest[j], v)
			}
		}
	}
}

func TestLoadTableUsesGivenName(t *testing.T) {
	t.Parallel()

	table := model.NewTable("ignored", model.NewHeader([]string{"v"}), []model.Record{{"1"}})

	conn, err := (&sqlite.Driver{}).Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := LoadTable(t.Context(), conn, "my table", table); err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if got := queryCount(t, conn, `SELECT COUNT(*) FROM "my table"`); got != 1 {
		t.Errorf("expected 1 row, got %d", got)
	}
}

func TestLoadRejectsEmptyHeader(t *testing.T) {
	t.Parallel()

	table := model.NewTypedTable("empty", model.NewHeader(nil), nil)

	conn, err := (&sqlite.Driver{}).Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := Load(t.Context(), conn, []*model.Table{table}); err == nil {
		t.Error("expected error for table without columns")
	}
}
