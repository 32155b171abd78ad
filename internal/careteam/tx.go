package careteam

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/lib/pq"

	dErrors "careteam/pkg/domain-errors"
	txcontext "careteam/pkg/platform/tx"
)

// TxRunner provides the atomic boundary for the orchestrator's
// read-check-write sequences. scope identifies the contended rows: the
// client id for status changes, client id + staff id for pair mutations.
// Implementations may wrap a database transaction or, in-memory, a sharded
// lock.
type TxRunner interface {
	RunInTx(ctx context.Context, scope string, fn func(ctx context.Context) error) error
}

// defaultTxTimeout is the maximum duration for one orchestrated transaction.
const defaultTxTimeout = 5 * time.Second

// numShards spreads in-memory transaction locks so unrelated clients never
// contend.
const numShards = 128

// ShardedTx serializes transactions on a mutex selected by scope hash. The
// in-memory stores enforce their own row consistency; the shard lock adds
// the cross-store serialization the mutual-exclusion check needs.
type ShardedTx struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

func NewShardedTx() *ShardedTx {
	return &ShardedTx{}
}

func (t *ShardedTx) RunInTx(ctx context.Context, scope string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := hashString(scope) % numShards
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}

// hashString uses FNV-1a for shard distribution.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

// maxTxAttempts bounds the serialization-failure retry loop before the
// caller sees a conflict.
const maxTxAttempts = 3

// PostgresTx runs the orchestrator's sequences inside a SERIALIZABLE
// transaction. Stores join it through the context carrier. Serialization
// failures (SQLSTATE 40001) are retried a bounded number of times; a unique
// index violation is a genuine conflict and surfaces immediately.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db}
}

func (t *PostgresTx) RunInTx(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := t.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return dErrors.Wrap(lastErr, dErrors.CodeConflict, "concurrent update, retry")
}

func (t *PostgresTx) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
