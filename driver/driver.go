package driver

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/nao1215/tosql/domain/model"
	"modernc.org/sqlite"
)

// Driver implements database/sql/driver.Driver interface for tosql.
// The DSN is a list of input paths separated by semicolons; "-" reads
// standard input.
type Driver struct{}

// Connector implements database/sql/driver.Connector interface.
// Inputs are parsed once, on the first Connect, and every connection gets
// its own in-memory SQLite store loaded with them.
type Connector struct {
	driver *Driver
	dsn    string
	hints  model.ParseHints

	mu     sync.Mutex
	tables []*model.Table
	loaded bool
}

// Connection implements database/sql/driver.Conn interface.
// It wraps an underlying SQLite connection that contains the loaded tables.
type Connection struct {
	conn driver.Conn
}

// Transaction implements database/sql/driver.Tx interface.
type Transaction struct {
	tx driver.Tx
}

// NewDriver creates a new tosql driver
func NewDriver() *Driver {
	return &Driver{}
}

// Open implements driver.Driver interface
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	connector, err := NewConnector(dsn, model.ParseHints{})
	if err != nil {
		return nil, err
	}
	connector.driver = d
	return connector, nil
}

// NewConnector creates a connector for the inputs listed in dsn. Every input
// is parsed with hints.
func NewConnector(dsn string, hints model.ParseHints) (*Connector, error) {
	paths := SplitDSN(dsn)
	if len(paths) == 0 {
		return nil, ErrNoPathsProvided
	}
	for _, path := range paths {
		if err := ValidatePath(path); err != nil {
			return nil, err
		}
	}
	if err := ValidateTableCount(len(paths)); err != nil {
		return nil, err
	}

	return &Connector{
		driver: NewDriver(),
		dsn:    dsn,
		hints:  hints,
	}, nil
}

// NewTableConnector creates a connector over tables that are already parsed.
func NewTableConnector(tables []*model.Table) (*Connector, error) {
	if err := ValidateTableCount(len(tables)); err != nil {
		return nil, err
	}
	return &Connector{
		driver: NewDriver(),
		tables: tables,
		loaded: true,
	}, nil
}

// SplitDSN returns the non-empty paths of a semicolon separated DSN.
func SplitDSN(dsn string) []string {
	var paths []string
	for _, path := range strings.Split(dsn, ";") {
		path = strings.TrimSpace(path)
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	tables, err := c.resolveTables(ctx)
	if err != nil {
		return nil, err
	}

	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	if err := Load(ctx, conn, tables); err != nil {
		_ = conn.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}

	return &Connection{conn: conn}, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// resolveTables parses the DSN inputs on first use.
func (c *Connector) resolveTables(ctx context.Context) ([]*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.tables, nil
	}

	paths := SplitDSN(c.dsn)
	tables := make([]*model.Table, 0, len(paths))
	for _, path := range paths {
		table, err := model.NewFile(path).ToTableContext(ctx, c.hints)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		tables = append(tables, table)
	}

	c.tables = tables
	c.loaded = true
	return tables, nil
}

// Tables returns the parsed inputs in alias order. It parses them if no
// connection has been made yet.
func (c *Connector) Tables(ctx context.Context) ([]*model.Table, error) {
	return c.resolveTables(ctx)
}

// Close implements driver.Conn interface
func (conn *Connection) Close() error {
	if conn.conn != nil {
		return conn.conn.Close()
	}
	return nil
}

// Begin implements driver.Conn interface (deprecated, use BeginTx instead)
func (conn *Connection) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx interface
func (conn *Connection) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if connBeginTx, ok := conn.conn.(driver.ConnBeginTx); ok {
		tx, err := connBeginTx.BeginTx(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Transaction{tx: tx}, nil
	}
	return nil, ErrBeginTxNotSupported
}

// Commit implements driver.Tx interface
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback implements driver.Tx interface
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// Prepare implements driver.Conn interface (deprecated, use PrepareContext instead)
func (conn *Connection) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext implements driver.ConnPrepareContext interface
func (conn *Connection) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	return prepare(ctx, conn.conn, query)
}
