package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the embedded ledger backend. Dates are stored as
// YYYY-MM-DD text so month/year filtering can use strftime directly.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements ledger.TransactionWriter.
func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	t = t.Normalized()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, amount_cents, type, category, description)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Date.String(), t.Amount.Cents, string(t.Type), t.Category, t.Description)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents,
		"date", t.Date.String())

	return id, nil
}

// List implements ledger.TransactionLister. Results come back most recent
// first so the dashboard's recent-transactions view can slice the head.
func (r *SQLiteRepository) List(ctx context.Context, f ledger.Filter) ([]core.Transaction, error) {
	query := `SELECT id, date, amount_cents, type, category, description, created_at
		FROM transactions`
	var (
		conds []string
		args  []any
	)
	if f.Year != 0 {
		conds = append(conds, `strftime('%Y', date) = ?`)
		args = append(args, fmt.Sprintf("%04d", f.Year))
	}
	if f.Month != 0 {
		conds = append(conds, `strftime('%m', date) = ?`)
		args = append(args, fmt.Sprintf("%02d", f.Month))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Get implements ledger.TransactionLister.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, amount_cents, type, category, description, created_at
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	return t, err
}

// Delete implements ledger.TransactionDeleter. A missing id is surfaced as
// ledger.ErrNotFound so a repeated delete fails rather than silently passing.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// DistinctYears implements ledger.CalendarReader, descending.
func (r *SQLiteRepository) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT CAST(strftime('%Y', date) AS INTEGER) AS y
		 FROM transactions ORDER BY y DESC`)
	if err != nil {
		return nil, fmt.Errorf("distinct years: %w", err)
	}
	defer rows.Close()
	return scanInts(rows)
}

// DistinctMonths implements ledger.CalendarReader, ascending, optionally
// scoped to a year.
func (r *SQLiteRepository) DistinctMonths(ctx context.Context, year int) ([]int, error) {
	query := `SELECT DISTINCT CAST(strftime('%m', date) AS INTEGER) AS m FROM transactions`
	var args []any
	if year != 0 {
		query += ` WHERE strftime('%Y', date) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	query += ` ORDER BY m ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("distinct months: %w", err)
	}
	defer rows.Close()
	return scanInts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		date    string
		txType  string
		created string
	)
	if err := row.Scan(&t.ID, &date, &t.Amount.Cents, &txType, &t.Category, &t.Description, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	t.Date = d
	t.Type = core.TransactionType(txType)
	if ts, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
		t.CreatedAt = ts
	} else if ts, err := time.Parse(time.RFC3339, created); err == nil {
		t.CreatedAt = ts
	}
	return t, nil
}

func scanInts(rows *sql.Rows) ([]int, error) {
	out := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate values: %w", err)
	}
	return out, nil
}
