package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"careteam/pkg/platform/sentinel"
	txcontext "careteam/pkg/platform/tx"
)

// PostgresStore persists assignments in PostgreSQL.
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

func (s *PostgresStore) Insert(ctx context.Context, a Assignment) error {
	_, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO assignments (id, client_id, staff_id, assignment_type, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ClientID, a.StaffID, a.Type, a.StartDate, a.EndDate, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Assignment, error) {
	var a Assignment
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT id, client_id, staff_id, assignment_type, start_date, end_date, created_at
		 FROM assignments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.ClientID, &a.StaffID, &a.Type, &a.StartDate, &a.EndDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assignment{}, sentinel.ErrNotFound
		}
		return Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`UPDATE assignments SET end_date = $2 WHERE id = $1`,
		id, endDate,
	)
	if err != nil {
		return fmt.Errorf("set assignment end date: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`DELETE FROM assignments WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) ListActive(ctx context.Context, clientID string, now time.Time) ([]Assignment, error) {
	rows, err := s.querier(ctx).QueryContext(ctx,
		`SELECT id, client_id, staff_id, assignment_type, start_date, end_date, created_at
		 FROM assignments
		 WHERE client_id = $1 AND (end_date IS NULL OR end_date > $2)
		 ORDER BY start_date ASC, created_at ASC`,
		clientID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("list active assignments: %w", err)
	}
	defer rows.Close()

	var active []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.StaffID, &a.Type, &a.StartDate, &a.EndDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		active = append(active, a)
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
