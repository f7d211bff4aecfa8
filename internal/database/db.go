package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the backing engine. SQLite is the default; a
// postgres:// DSN selects Postgres.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Store owns the connection pool and hands out request-scoped units of work.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database described by dsn. A postgres:// or
// postgresql:// DSN opens Postgres via lib/pq; anything else is treated as a
// SQLite file path (":memory:" included).
func Open(dsn string, poolSize int) (*Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(poolSize)
		db.SetMaxIdleConns(poolSize / 2)
		return &Store{db: db, dialect: Postgres}, nil
	}

	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite serializes writes; one connection keeps the in-memory
	// database shared and avoids SQLITE_BUSY under the write load we have.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}
	return &Store{db: db, dialect: SQLite}, nil
}

// OpenMemory creates an in-memory SQLite store for testing.
func OpenMemory() (*Store, error) {
	return Open(":memory:", 1)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks connectivity (readiness probe).
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Dialect returns the active dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Begin opens a unit of work. The caller must Commit or Rollback; Rollback
// after Commit is a no-op, so `defer uow.Rollback()` is the usual pattern.
func (s *Store) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &UnitOfWork{tx: tx, dialect: s.dialect}, nil
}

// UnitOfWork is a request-scoped transaction handed into handlers and
// repositories. All queries are written with ? placeholders; they are rebound
// to $N for Postgres.
type UnitOfWork struct {
	tx      *sql.Tx
	dialect Dialect
	done    bool
}

func (u *UnitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback()
}

func (u *UnitOfWork) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return u.tx.ExecContext(ctx, u.rebind(query), args...)
}

func (u *UnitOfWork) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return u.tx.QueryContext(ctx, u.rebind(query), args...)
}

func (u *UnitOfWork) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return u.tx.QueryRowContext(ctx, u.rebind(query), args...)
}

// Insert runs an INSERT written without a RETURNING clause and yields the new
// row id: lib/pq has no LastInsertId, so the Postgres path appends RETURNING.
func (u *UnitOfWork) Insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if u.dialect == Postgres {
		var id int64
		err := u.tx.QueryRowContext(ctx, u.rebind(query)+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := u.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (u *UnitOfWork) rebind(query string) string {
	if u.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
