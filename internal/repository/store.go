package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
)

//go:embed schema.sql
var schema string

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Store owns the database handle and hands out repositories bound to it
type Store struct {
	db *sqlx.DB
	*Repositories
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:           db,
		Repositories: bind(db),
	}
}

func bind(db sqlx.ExtContext) *Repositories {
	return &Repositories{
		Loans:        NewLoanRepository(db),
		DailyCharges: NewDailyChargeRepository(db),
		Payments:     NewPaymentRepository(db),
	}
}

// DB returns the underlying handle
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) WithinTx(ctx context.Context, fn func(repos *Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Open connects to the configured database and applies the pool settings
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite3" {
		// a single writer connection avoids SQLITE_BUSY between concurrent transactions
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Migrate creates the tables and indexes if they do not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// forUpdate returns the row lock clause for drivers that support it.
// SQLite serializes writers on the database file instead.
func forUpdate(db sqlx.ExtContext) string {
	if db.DriverName() == "postgres" {
		return " FOR UPDATE"
	}
	return ""
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
