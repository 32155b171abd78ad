package restriction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"careteam/pkg/platform/sentinel"
	txcontext "careteam/pkg/platform/tx"
)

// PostgresStore persists restrictions in PostgreSQL. A partial unique index
// on (client_id, staff_id) WHERE is_active backs the single-active-entry
// rule per pair.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) dbQuerier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Insert(ctx context.Context, r Restriction) error {
	_, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO staff_restrictions (id, client_id, staff_id, reason, severity, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.ClientID, r.StaffID, r.Reason, r.Severity, r.IsActive, r.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert restriction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Restriction, error) {
	var r Restriction
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT id, client_id, staff_id, reason, severity, is_active, created_at
		 FROM staff_restrictions WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.ClientID, &r.StaffID, &r.Reason, &r.Severity, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Restriction{}, sentinel.ErrNotFound
		}
		return Restriction{}, fmt.Errorf("get restriction: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) Deactivate(ctx context.Context, id string) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`UPDATE staff_restrictions SET is_active = FALSE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate restriction: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`DELETE FROM staff_restrictions WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete restriction: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) ListActive(ctx context.Context, clientID string) ([]Restriction, error) {
	return s.queryActive(ctx,
		`SELECT id, client_id, staff_id, reason, severity, is_active, created_at
		 FROM staff_restrictions
		 WHERE client_id = $1 AND is_active
		 ORDER BY CASE severity WHEN 'hard_block' THEN 0 WHEN 'soft_block' THEN 1 ELSE 2 END, created_at ASC`,
		clientID,
	)
}

func (s *PostgresStore) FindActivePair(ctx context.Context, clientID, staffID string) ([]Restriction, error) {
	return s.queryActive(ctx,
		`SELECT id, client_id, staff_id, reason, severity, is_active, created_at
		 FROM staff_restrictions
		 WHERE client_id = $1 AND staff_id = $2 AND is_active
		 ORDER BY CASE severity WHEN 'hard_block' THEN 0 WHEN 'soft_block' THEN 1 ELSE 2 END, created_at ASC`,
		clientID, staffID,
	)
}

func (s *PostgresStore) queryActive(ctx context.Context, query string, args ...any) ([]Restriction, error) {
	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query restrictions: %w", err)
	}
	defer rows.Close()

	var active []Restriction
	for rows.Next() {
		var r Restriction
		if err := rows.Scan(&r.ID, &r.ClientID, &r.StaffID, &r.Reason, &r.Severity, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restriction: %w", err)
		}
		active = append(active, r)
	}
	return active, rows.Err()
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
