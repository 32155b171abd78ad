//go:build integration

package containers

import (
	"context"
	"testing"
)

// careteamSchema mirrors cmd/migrate/migrations/000001_init.up.sql so store
// tests can run against a fresh container without the migrate binary.
const careteamSchema = `
CREATE TABLE IF NOT EXISTS clients (
    id         TEXT PRIMARY KEY,
    full_name  TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'Active',
    archived   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS staff (
    id         TEXT PRIMARY KEY,
    full_name  TEXT NOT NULL,
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS assignments (
    id              TEXT PRIMARY KEY,
    client_id       TEXT NOT NULL REFERENCES clients (id),
    staff_id        TEXT NOT NULL REFERENCES staff (id),
    assignment_type TEXT NOT NULL,
    start_date      TIMESTAMPTZ NOT NULL,
    end_date        TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assignments_client ON assignments (client_id);

CREATE TABLE IF NOT EXISTS staff_preferences (
    id         TEXT PRIMARY KEY,
    client_id  TEXT NOT NULL REFERENCES clients (id),
    staff_id   TEXT NOT NULL REFERENCES staff (id),
    level      TEXT NOT NULL,
    notes      TEXT NOT NULL DEFAULT '',
    is_active  BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_staff_preferences_client ON staff_preferences (client_id);

CREATE UNIQUE INDEX IF NOT EXISTS uq_staff_preferences_active_pair
    ON staff_preferences (client_id, staff_id)
    WHERE is_active;

CREATE TABLE IF NOT EXISTS staff_restrictions (
    id         TEXT PRIMARY KEY,
    client_id  TEXT NOT NULL REFERENCES clients (id),
    staff_id   TEXT NOT NULL REFERENCES staff (id),
    reason     TEXT NOT NULL,
    severity   TEXT NOT NULL,
    is_active  BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_staff_restrictions_client ON staff_restrictions (client_id);

CREATE UNIQUE INDEX IF NOT EXISTS uq_staff_restrictions_active_pair
    ON staff_restrictions (client_id, staff_id)
    WHERE is_active;

CREATE TABLE IF NOT EXISTS status_logs (
    id              TEXT PRIMARY KEY,
    seq             BIGSERIAL,
    client_id       TEXT NOT NULL REFERENCES clients (id),
    previous_status TEXT,
    new_status      TEXT NOT NULL,
    reason          TEXT NOT NULL DEFAULT '',
    changed_by      TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_status_logs_client ON status_logs (client_id, created_at DESC, seq DESC);
`

// ApplySchema creates the careteam tables in the container database.
func (p *PostgresContainer) ApplySchema(t *testing.T) {
	t.Helper()
	if _, err := p.DB.ExecContext(context.Background(), careteamSchema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}
