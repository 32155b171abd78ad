package careteam

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "careteam/pkg/domain-errors"
)

func TestShardedTxRejectsCancelledContext(t *testing.T) {
	tx := NewShardedTx()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tx.RunInTx(ctx, "client-1/staff-1", func(context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeTimeout, dErrors.CodeOf(err))
}

func TestShardedTxSerializesSameScope(t *testing.T) {
	tx := NewShardedTx()

	var inCritical atomic.Int32
	var overlapped atomic.Bool
	var wg sync.WaitGroup

	const workers = 16
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(context.Background(), "client-1/staff-1", func(context.Context) error {
				if inCritical.Add(1) > 1 {
					overlapped.Store(true)
				}
				defer inCritical.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.False(t, overlapped.Load(), "two transactions entered the same scope concurrently")
}

func TestShardedTxPropagatesFnError(t *testing.T) {
	tx := NewShardedTx()
	want := dErrors.New(dErrors.CodeConflict, "boom")

	err := tx.RunInTx(context.Background(), "scope", func(context.Context) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}
