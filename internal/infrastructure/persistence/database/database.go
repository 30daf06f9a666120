// Package database provides the lazily opened, process-wide connection to the
// lead store and the schema it needs.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/pkg/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Dialect selects placeholder style for a backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLiteDriverName is go-sqlite3 with lower() replaced by a Unicode-aware
// version. The built-in lower() only folds ASCII.
const SQLiteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// CaseFolding describes how the backend's LOWER() treats non-ASCII letters.
type CaseFolding int

const (
	FoldUnicode CaseFolding = iota
	FoldASCII
)

// ErrProviderClosed is returned by DB after Close.
var ErrProviderClosed = errors.New("database provider closed")

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
	Dialect Dialect
	Folding CaseFolding
}

// FoldCase lowercases term the same way the backend's LOWER() does, so a
// folded term can be matched against LOWER(column).
func (db *DB) FoldCase(term string) string {
	if db.Folding == FoldASCII {
		return lowerASCII(term)
	}
	return strings.ToLower(term)
}

// Rebind rewrites ? placeholders for the connection's dialect.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}
	return rebindDollar(query)
}

// ConnectionSpec is the resolved driver name and DSN for a configuration.
type ConnectionSpec struct {
	Driver  string
	DSN     string
	Dialect Dialect
	Folding CaseFolding
	// Path is the sqlite file, empty for network backends.
	Path string
}

// ResolveConnection maps the configured backend to a database/sql driver.
func ResolveConnection(cfg *config.Config) (ConnectionSpec, error) {
	switch cfg.DatabaseType {
	case config.DatabaseSQLite, "":
		if cfg.DatabaseURL != "" {
			return ConnectionSpec{Driver: SQLiteDriverName, DSN: cfg.DatabaseURL, Dialect: DialectSQLite}, nil
		}
		name := cfg.DatabaseName
		if name == "" {
			name = "caseeval"
		}
		if !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		path := filepath.Join(cfg.DataDirectory, name)
		return ConnectionSpec{
			Driver:  SQLiteDriverName,
			DSN:     path + "?_busy_timeout=5000&_journal_mode=WAL",
			Dialect: DialectSQLite,
			Path:    path,
		}, nil
	case config.DatabaseTurso:
		dsn := cfg.DatabaseURL
		if cfg.TursoAuthToken != "" {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn = dsn + sep + "authToken=" + cfg.TursoAuthToken
		}
		return ConnectionSpec{Driver: "libsql", DSN: dsn, Dialect: DialectSQLite, Folding: FoldASCII}, nil
	case config.DatabasePostgres:
		return ConnectionSpec{Driver: "pgx", DSN: cfg.DatabaseURL, Dialect: DialectPostgres}, nil
	default:
		return ConnectionSpec{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

// Provider hands out a single shared connection, opened on first use. A
// failed open is not remembered, so the next caller tries again.
type Provider struct {
	cfg     *config.Config
	logger  *logging.ChanneledLogger
	creator *TableCreator

	mu     sync.Mutex
	db     *DB
	closed bool
}

// NewProvider creates a provider. No connection is made until DB is called.
func NewProvider(cfg *config.Config, logger *logging.ChanneledLogger) *Provider {
	return &Provider{
		cfg:     cfg,
		logger:  logger,
		creator: NewTableCreator(),
	}
}

// DB returns the shared connection, opening it and ensuring the schema when
// needed.
func (p *Provider) DB(ctx context.Context) (*DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrProviderClosed
	}
	if p.db != nil {
		return p.db, nil
	}

	db, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	p.db = db
	return db, nil
}

func (p *Provider) open(ctx context.Context) (*DB, error) {
	start := time.Now()

	spec, err := ResolveConnection(p.cfg)
	if err != nil {
		return nil, err
	}
	p.logger.Database().Debug("Creating new database connection", "driverName", spec.Driver)

	if spec.Path != "" {
		if err := os.MkdirAll(filepath.Dir(spec.Path), 0o755); err != nil {
			p.logger.Database().Error("Failed to create database directory", "error", err.Error(), "path", spec.Path)
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open(spec.Driver, spec.DSN)
	if err != nil {
		p.logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", spec.Driver)
		return nil, fmt.Errorf("failed to open %s connection: %w", spec.Driver, err)
	}

	p.configurePool(conn)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		p.logger.Database().Error("Database ping failed", "error", err.Error(), "driverName", spec.Driver)
		return nil, fmt.Errorf("failed to connect to %s: %w", spec.Driver, err)
	}

	db := &DB{DB: conn, Dialect: spec.Dialect, Folding: spec.Folding}
	if err := p.creator.CreateSchema(ctx, db); err != nil {
		conn.Close()
		p.logger.Database().Error("Schema creation failed", "error", err.Error())
		return nil, err
	}

	duration := time.Since(start)
	p.logger.Database().Info("Database connection established", "driverName", spec.Driver, "duration", duration)
	CheckAndLogSlowQuery(p.logger, "DATABASE_CONNECTION", duration, p.cfg.SlowQueryThreshold)

	return db, nil
}

func (p *Provider) configurePool(conn *sql.DB) {
	if p.cfg.DBMaxOpenConns > 0 {
		conn.SetMaxOpenConns(p.cfg.DBMaxOpenConns)
	}
	if p.cfg.DBMaxIdleConns > 0 {
		conn.SetMaxIdleConns(p.cfg.DBMaxIdleConns)
	}
	if p.cfg.DBConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(p.cfg.DBConnMaxLifetime)
	}
	if p.cfg.DBConnMaxIdleTime > 0 {
		conn.SetConnMaxIdleTime(p.cfg.DBConnMaxIdleTime)
	}
}

// Ping checks connectivity, opening the connection if necessary.
func (p *Provider) Ping(ctx context.Context) error {
	db, err := p.DB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// SlowQueryThreshold returns the configured slow query threshold.
func (p *Provider) SlowQueryThreshold() time.Duration {
	return p.cfg.SlowQueryThreshold
}

// Logger returns the provider's logger.
func (p *Provider) Logger() *logging.ChanneledLogger {
	return p.logger
}

// Close releases the connection. Later calls to DB fail.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	p.logger.Database().Info("Database connection closed")
	return nil
}
