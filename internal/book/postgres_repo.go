package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, isbn, created_at, updated_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Find(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanOne(r.db.QueryRow(timeoutCtx, query, id), "find book")
}

func (r *PostgresRepo) Create(ctx context.Context, nb NewBook) (Book, error) {
	const query = `
		INSERT INTO books (title, isbn, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanOne(r.db.QueryRow(timeoutCtx, query, nb.Title, nb.ISBN), "insert book")
}

// Save writes the mutable fields. updated_at never moves backwards or stays
// put, even when two saves land in the same clock tick.
func (r *PostgresRepo) Save(ctx context.Context, b Book) (Book, error) {
	const query = `
		UPDATE books SET
			title = $2,
			isbn = $3,
			updated_at = GREATEST(now(), updated_at + interval '1 microsecond')
		WHERE id = $1
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanOne(r.db.QueryRow(timeoutCtx, query, b.ID, b.Title, b.ISBN), "update book")
}

func (r *PostgresRepo) Delete(ctx context.Context, b Book) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, b.ID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping reports whether the pool can reach the database.
func (r *PostgresRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}

func scanOne(row pgx.Row, op string) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.ISBN, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}
