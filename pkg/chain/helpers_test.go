package chain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/testhelpers"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func mustTipSet(t *testing.T, blks ...*types.BlockHeader) *types.TipSet {
	t.Helper()
	ts, err := types.NewTipSet(blks)
	require.NoError(t, err)
	return ts
}

func addAll(t *testing.T, builder *testhelpers.Builder, ts *types.TipSet) {
	t.Helper()
	ctx := context.Background()
	for _, blk := range ts.Blocks() {
		require.NoError(t, builder.Store.AddBlock(ctx, blk))
	}
}
