package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"careteam/pkg/platform/sentinel"
	txcontext "careteam/pkg/platform/tx"
)

// PostgresStore persists clients and staff in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querier joins an ambient transaction when the orchestrator opened one.
func (s *PostgresStore) querier(ctx context.Context) dbQuerier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) GetClient(ctx context.Context, clientID string) (Client, error) {
	var client Client
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT id, full_name, status, archived, created_at FROM clients WHERE id = $1`,
		clientID,
	).Scan(&client.ID, &client.FullName, &client.Status, &client.Archived, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, sentinel.ErrNotFound
		}
		return Client{}, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

func (s *PostgresStore) GetStaff(ctx context.Context, staffID string) (Staff, error) {
	var staff Staff
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT id, full_name, active, created_at FROM staff WHERE id = $1`,
		staffID,
	).Scan(&staff.ID, &staff.FullName, &staff.Active, &staff.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Staff{}, sentinel.ErrNotFound
		}
		return Staff{}, fmt.Errorf("get staff: %w", err)
	}
	return staff, nil
}

func (s *PostgresStore) CreateClient(ctx context.Context, client Client) error {
	if client.Status == "" {
		client.Status = StatusActive
	}
	_, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO clients (id, full_name, status, archived, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		client.ID, client.FullName, client.Status, client.Archived, client.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateStaff(ctx context.Context, staff Staff) error {
	_, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO staff (id, full_name, active, created_at) VALUES ($1, $2, $3, $4)`,
		staff.ID, staff.FullName, staff.Active, staff.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

func (s *PostgresStore) ArchiveClient(ctx context.Context, clientID string) error {
	return s.setArchived(ctx, clientID, true)
}

func (s *PostgresStore) RestoreClient(ctx context.Context, clientID string) error {
	return s.setArchived(ctx, clientID, false)
}

func (s *PostgresStore) setArchived(ctx context.Context, clientID string, archived bool) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`UPDATE clients SET archived = $2 WHERE id = $1`,
		clientID, archived,
	)
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) UpdateClientStatus(ctx context.Context, clientID string, status ClientStatus) error {
	result, err := s.querier(ctx).ExecContext(ctx,
		`UPDATE clients SET status = $2 WHERE id = $1`,
		clientID, status,
	)
	if err != nil {
		return fmt.Errorf("update client status: %w", err)
	}
	return requireRow(result)
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

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
