package tosql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nao1215/tosql/domain/model"
	tosqldriver "github.com/nao1215/tosql/driver"
)

// Builder collects inputs, parses them and binds them to the aliases a, b,
// c, ... in the order they were added.
//
// The typical usage pattern is:
//
//	validated, err := tosql.NewBuilder().
//		AddPath("orders.csv").
//		AddReader(os.Stdin, tosql.StdinName).
//		WithHints(tosql.ParseHints{Auto: true}).
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	result, err := validated.Execute(ctx, "SELECT * FROM a JOIN b USING (id)")
type Builder struct {
	// inputs in alias order
	inputs []input
	// hints apply to every input
	hints model.ParseHints
	// tables contains the parsed inputs after Build
	tables []*model.Table
}

type inputKind int

const (
	inputPath inputKind = iota
	inputReader
	inputFS
)

// input is one source added to a Builder.
type input struct {
	kind   inputKind
	name   string
	reader io.Reader
	fsys   fs.FS
}

// NewBuilder creates a new builder without inputs.
func NewBuilder() *Builder {
	return &Builder{
		inputs: make([]input, 0),
	}
}

// AddPath adds a file path. "-" reads standard input.
// Returns the builder for method chaining.
func (b *Builder) AddPath(path string) *Builder {
	b.inputs = append(b.inputs, input{kind: inputPath, name: path})
	return b
}

// AddPaths adds multiple file paths at once.
// Returns the builder for method chaining.
func (b *Builder) AddPaths(paths ...string) *Builder {
	for _, path := range paths {
		b.AddPath(path)
	}
	return b
}

// AddReader adds a stream. name is a filename hint: its extension selects
// a reader and its compression suffix a decompressor. An empty name means
// standard input, which always goes through the heuristic.
// Returns the builder for method chaining.
func (b *Builder) AddReader(reader io.Reader, name string) *Builder {
	if name == "" {
		name = model.StdinName
	}
	b.inputs = append(b.inputs, input{kind: inputReader, name: name, reader: reader})
	return b
}

// AddFS adds every file of fsys with a recognized extension, in lexical
// path order.
// Returns the builder for method chaining.
func (b *Builder) AddFS(fsys fs.FS) *Builder {
	b.inputs = append(b.inputs, input{kind: inputFS, fsys: fsys})
	return b
}

// WithHints sets the parse hints applied to every input.
// Returns the builder for method chaining.
func (b *Builder) WithHints(hints ParseHints) *Builder {
	b.hints = hints
	return b
}

// Build parses every input. It must be called before Open or Execute.
// A directory path is expanded like AddFS over that directory.
// Returns the same builder instance for method chaining, or the first
// error encountered.
func (b *Builder) Build(ctx context.Context) (*Builder, error) {
	if len(b.inputs) == 0 {
		return nil, ErrNoInputs
	}
	for _, in := range b.inputs {
		if in.kind == inputPath {
			if err := tosqldriver.ValidatePath(in.name); err != nil {
				return nil, err
			}
		}
	}
	// every input yields at least one table
	if err := tosqldriver.ValidateTableCount(len(b.inputs)); err != nil {
		return nil, err
	}

	tables := make([]*model.Table, 0, len(b.inputs))
	for _, in := range b.inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case in.kind == inputFS:
			fsTables, err := tablesFromFS(ctx, in.fsys, b.hints)
			if err != nil {
				return nil, fmt.Errorf("failed to process FS input: %w", err)
			}
			tables = append(tables, fsTables...)
		case in.kind == inputReader:
			table, err := model.InferContext(ctx, model.RawInput{Name: in.name, Reader: in.reader}, b.hints)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", in.name, err)
			}
			tables = append(tables, table)
		case isDirectory(in.name):
			dirTables, err := tablesFromFS(ctx, os.DirFS(in.name), b.hints)
			if err != nil {
				return nil, fmt.Errorf("failed to load directory %s: %w", in.name, err)
			}
			tables = append(tables, dirTables...)
		default:
			table, err := model.NewFile(in.name).ToTableContext(ctx, b.hints)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", in.name, err)
			}
			tables = append(tables, table)
		}
	}

	if err := tosqldriver.ValidateTableCount(len(tables)); err != nil {
		return nil, err
	}
	b.tables = tables
	return b, nil
}

// Tables returns the parsed inputs in alias order. It is empty before Build.
func (b *Builder) Tables() []*Table {
	return b.tables
}

// Open creates a database connection pool over the parsed inputs. Every
// connection is a separate in-memory SQLite store holding the tables
// under their aliases.
func (b *Builder) Open(ctx context.Context) (*sql.DB, error) {
	if b.tables == nil {
		return nil, errors.New("no parsed inputs, did you call Build()?")
	}

	connector, err := tosqldriver.NewTableConnector(b.tables)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, err
	}
	return db, nil
}

// Execute runs query over the parsed inputs. See ExecuteContext.
func (b *Builder) Execute(ctx context.Context, query string) (*Table, error) {
	if b.tables == nil {
		return nil, errors.New("no parsed inputs, did you call Build()?")
	}
	return ExecuteContext(ctx, b.tables, query)
}
