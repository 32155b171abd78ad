package statuslog

import (
	"context"
	"database/sql"
	"fmt"

	"careteam/internal/directory"
	txcontext "careteam/pkg/platform/tx"
)

// PostgresStore persists status log entries. Only INSERT and SELECT are ever
// issued against the table; a serial sequence column breaks timestamp ties
// in commit order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) querier(ctx context.Context) dbQuerier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	previous := sql.NullString{
		String: string(entry.PreviousStatus),
		Valid:  entry.PreviousStatus != "",
	}
	_, err := s.querier(ctx).ExecContext(ctx,
		`INSERT INTO status_logs (id, client_id, previous_status, new_status, reason, changed_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.ClientID, previous, entry.NewStatus, entry.Reason, entry.ChangedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append status log entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, clientID string) ([]Entry, error) {
	rows, err := s.querier(ctx).QueryContext(ctx,
		`SELECT id, client_id, previous_status, new_status, reason, changed_by, created_at
		 FROM status_logs
		 WHERE client_id = $1
		 ORDER BY created_at DESC, seq DESC`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	var history []Entry
	for rows.Next() {
		var entry Entry
		var previous sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ClientID, &previous, &entry.NewStatus, &entry.Reason, &entry.ChangedBy, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status log entry: %w", err)
		}
		if previous.Valid {
			entry.PreviousStatus = directory.ClientStatus(previous.String)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}
