package statemanger_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/consensus"
	"github.com/filecoin-project/venus-lite/pkg/statemanger"
	"github.com/filecoin-project/venus-lite/pkg/testhelpers"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func transformerOf(builder *testhelpers.Builder) consensus.StateTransformer {
	return consensus.NewExpected(builder.Store.ReadOnlyStateStore(), builder.MessageStore)
}

// countingTransformer wraps a real transformer, counting invocations and
// optionally failing the first n of them.
type countingTransformer struct {
	inner interface {
		RunStateTransition(ctx context.Context, ts *types.TipSet) (cid.Cid, cid.Cid, error)
	}
	calls    int64
	failNext int64
}

func (c *countingTransformer) RunStateTransition(ctx context.Context, ts *types.TipSet) (cid.Cid, cid.Cid, error) {
	atomic.AddInt64(&c.calls, 1)
	if atomic.AddInt64(&c.failNext, -1) >= 0 {
		return cid.Undef, cid.Undef, errors.New("interpreter exploded")
	}
	return c.inner.RunStateTransition(ctx, ts)
}

func TestRunStateTransitionComputesOncePerKey(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	t1 := builder.AppendOn(ctx, builder.Genesis, 1)

	// A fresh state manager whose metadata store has no entry for t1.
	counting := &countingTransformer{inner: transformerOf(builder)}
	stmgr := statemanger.NewStateManager(builder.Store, builder.MessageStore, counting, nil)
	require.NoError(t, builder.Store.DeleteTipSetMetadata(ctx, t1))

	const workers = 8
	var wg sync.WaitGroup
	roots := make([]cid.Cid, workers)
	receipts := make([]cid.Cid, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			roots[i], receipts[i], errs[i] = stmgr.RunStateTransition(ctx, t1)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
	}

	// All callers observe the same result and the interpreter ran once.
	for i := 1; i < workers; i++ {
		assert.Equal(t, roots[0], roots[i])
		assert.Equal(t, receipts[0], receipts[i])
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&counting.calls))
}

func TestRunStateTransitionRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	t1 := builder.AppendOn(ctx, builder.Genesis, 1)

	counting := &countingTransformer{inner: transformerOf(builder), failNext: 1}
	stmgr := statemanger.NewStateManager(builder.Store, builder.MessageStore, counting, nil)
	require.NoError(t, builder.Store.DeleteTipSetMetadata(ctx, t1))

	_, _, err := stmgr.RunStateTransition(ctx, t1)
	require.Error(t, err)

	// A failed computation leaves no poisoned entry behind.
	root, _, err := stmgr.RunStateTransition(ctx, t1)
	require.NoError(t, err)
	assert.True(t, root.Defined())
	assert.Equal(t, int64(2), atomic.LoadInt64(&counting.calls))
}

func TestGenesisShortCircuit(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	root, rcpts, err := builder.Stmgr.RunStateTransition(ctx, builder.Genesis)
	require.NoError(t, err)
	assert.Equal(t, builder.Genesis.At(0).ParentStateRoot, root)
	assert.Equal(t, builder.Genesis.At(0).ParentMessageReceipts, rcpts)
}
