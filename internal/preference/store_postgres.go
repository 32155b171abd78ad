package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"careteam/pkg/platform/sentinel"
	txcontext "careteam/pkg/platform/tx"
)

// PostgresStore persists preferences in PostgreSQL. A partial unique index
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

func (s *PostgresStore) Insert(ctx context.Context, p Preference) error {
	_, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO staff_preferences (id, client_id, staff_id, level, notes, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.ClientID, p.StaffID, p.Level, p.Notes, p.IsActive, p.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Preference, error) {
	var p Preference
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT id, client_id, staff_id, level, notes, is_active, created_at
		 FROM staff_preferences WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.ClientID, &p.StaffID, &p.Level, &p.Notes, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preference{}, sentinel.ErrNotFound
		}
		return Preference{}, fmt.Errorf("get preference: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Deactivate(ctx context.Context, id string) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`UPDATE staff_preferences SET is_active = FALSE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate preference: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`DELETE FROM staff_preferences WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) ListActive(ctx context.Context, clientID string) ([]Preference, error) {
	return s.queryActive(ctx,
		`SELECT id, client_id, staff_id, level, notes, is_active, created_at
		 FROM staff_preferences
		 WHERE client_id = $1 AND is_active
		 ORDER BY CASE level WHEN 'primary' THEN 0 WHEN 'secondary' THEN 1 ELSE 2 END, created_at ASC`,
		clientID,
	)
}

func (s *PostgresStore) FindActivePair(ctx context.Context, clientID, staffID string) ([]Preference, error) {
	return s.queryActive(ctx,
		`SELECT id, client_id, staff_id, level, notes, is_active, created_at
		 FROM staff_preferences
		 WHERE client_id = $1 AND staff_id = $2 AND is_active
		 ORDER BY CASE level WHEN 'primary' THEN 0 WHEN 'secondary' THEN 1 ELSE 2 END, created_at ASC`,
		clientID, staffID,
	)
}

func (s *PostgresStore) queryActive(ctx context.Context, query string, args ...any) ([]Preference, error) {
	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	var active []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.ID, &p.ClientID, &p.StaffID, &p.Level, &p.Notes, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		active = append(active, p)
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
