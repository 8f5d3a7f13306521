package chain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/consensus/chainselector"
	"github.com/filecoin-project/venus-lite/pkg/testhelpers"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func waitForHeadChange(t *testing.T, ch <-chan []*types.HeadChange) []*types.HeadChange {
	t.Helper()
	select {
	case batch, ok := <-ch:
		require.True(t, ok, "head change channel closed")
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for head change")
		return nil
	}
}

func TestGenesisHead(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	head := builder.Store.GetHead()
	require.True(t, head.Defined())
	assert.True(t, head.Equals(builder.Genesis))
	assert.Equal(t, types.NewTipSetKey(builder.Store.GenesisCid()), head.Key())

	// A fresh subscriber first sees the current head.
	ch := builder.Store.SubHeadChanges(ctx)
	batch := waitForHeadChange(t, ch)
	require.Len(t, batch, 1)
	assert.Equal(t, types.HCCurrent, batch[0].Type)
	assert.True(t, batch[0].Val.Equals(builder.Genesis))
}

func TestCompetingBlocksFormTipset(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	b1 := builder.BuildHeaderOn(ctx, builder.Genesis, 0)
	b2 := builder.BuildHeaderOn(ctx, builder.Genesis, 1)

	require.NoError(t, builder.Store.AddBlock(ctx, b1))
	require.NoError(t, builder.Store.AddBlock(ctx, b2))

	head := builder.Store.GetHead()
	require.Equal(t, 2, head.Len())

	// Canonical member order is ascending by ticket.
	first, second := head.At(0), head.At(1)
	assert.True(t, first.Ticket.Compare(second.Ticket) < 0)

	// The combined tipset outweighs both singletons.
	single1, err := types.NewTipSet([]*types.BlockHeader{b1})
	require.NoError(t, err)
	single2, err := types.NewTipSet([]*types.BlockHeader{b2})
	require.NoError(t, err)

	combinedW := builder.WeightOf(ctx, head)
	assert.True(t, combinedW.GreaterThan(builder.WeightOf(ctx, single1)))
	assert.True(t, combinedW.GreaterThan(builder.WeightOf(ctx, single2)))
}

func TestTicketCollisionRejected(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	b1 := builder.BuildHeaderOn(ctx, builder.Genesis, 0)
	require.NoError(t, builder.Store.AddBlock(ctx, b1))

	// Same ticket, distinct cid.
	b2 := builder.BuildHeaderOn(ctx, builder.Genesis, 0)
	b2.Timestamp++
	err := builder.Store.AddBlock(ctx, b2)
	require.Error(t, err)
	te, ok := types.AsTipsetError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrCodeTicketsCollision, te.Code)

	// The store is unchanged: the head is still the original block alone.
	head := builder.Store.GetHead()
	require.Equal(t, 1, head.Len())
	assert.True(t, head.At(0).Equals(b1))

	// A non-colliding sibling still expands the head.
	b3 := builder.BuildHeaderOn(ctx, builder.Genesis, 1)
	require.NoError(t, builder.Store.AddBlock(ctx, b3))
	assert.Equal(t, 2, builder.Store.GetHead().Len())
}

func TestMissingTicketRejected(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	blk := builder.BuildHeaderOn(ctx, builder.Genesis, 0)
	blk.Ticket = nil
	err := builder.Store.AddBlock(ctx, blk)
	require.Error(t, err)
	te, ok := types.AsTipsetError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrCodeTicketHasNoValue, te.Code)
}

func TestReorgEmitsRevertsThenApplies(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	// Chain A: G -> A1 -> A2 becomes head.
	a1 := builder.AppendOn(ctx, builder.Genesis, 1)
	a2 := builder.AppendOn(ctx, a1, 1)
	require.True(t, builder.Store.GetHead().Equals(a2))

	ch := builder.Store.SubHeadChanges(ctx)
	current := waitForHeadChange(t, ch)
	require.Len(t, current, 1)
	assert.Equal(t, types.HCCurrent, current[0].Type)
	assert.True(t, current[0].Val.Equals(a2))

	// Branch B: a two-block tipset on G, then a child on top of it. Only the
	// arrival of B2 tips the scales.
	b1a := builder.BuildHeaderOn(ctx, builder.Genesis, 10)
	b1b := builder.BuildHeaderOn(ctx, builder.Genesis, 11)
	require.NoError(t, builder.Store.AddBlock(ctx, b1a))
	require.NoError(t, builder.Store.AddBlock(ctx, b1b))
	require.True(t, builder.Store.GetHead().Equals(a2), "branch B alone must not displace the deeper chain yet")

	b1, err := types.NewTipSet([]*types.BlockHeader{b1a, b1b})
	require.NoError(t, err)

	b2blk := builder.BuildHeaderOn(ctx, b1, 12)
	require.NoError(t, builder.Store.AddBlock(ctx, b2blk))

	b2, err := types.NewTipSet([]*types.BlockHeader{b2blk})
	require.NoError(t, err)
	require.True(t, builder.Store.GetHead().Equals(b2))

	// Earlier single-branch head extensions may still be in flight on the
	// channel; the reorg batch is the first one opening with a revert.
	var batch []*types.HeadChange
	for {
		batch = waitForHeadChange(t, ch)
		if len(batch) > 0 && batch[0].Type == types.HCRevert {
			break
		}
	}
	require.Len(t, batch, 4)
	assert.Equal(t, types.HCRevert, batch[0].Type)
	assert.True(t, batch[0].Val.Equals(a2))
	assert.Equal(t, types.HCRevert, batch[1].Type)
	assert.True(t, batch[1].Val.Equals(a1))
	assert.Equal(t, types.HCApply, batch[2].Type)
	assert.True(t, batch[2].Val.Equals(b1))
	assert.Equal(t, types.HCApply, batch[3].Type)
	assert.True(t, batch[3].Val.Equals(b2))
}

func TestGetTipSetByHeight(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	t1 := builder.AppendOn(ctx, builder.Genesis, 1)
	t2 := builder.AppendOn(ctx, t1, 1)
	t3 := builder.AppendOn(ctx, t2, 1)

	got, err := builder.Store.GetTipSetByHeight(ctx, t3, 2, true)
	require.NoError(t, err)
	assert.True(t, got.Equals(t2))

	got, err = builder.Store.GetTipSetByHeight(ctx, t3, 0, true)
	require.NoError(t, err)
	assert.True(t, got.Equals(builder.Genesis))

	_, err = builder.Store.GetTipSetByHeight(ctx, t3, 5, true)
	assert.Error(t, err, "heights in the future of the start tipset must error")
}

func TestHeaviestSelectionAcrossIngestOrder(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	// Build a fork two tipsets deep: one single-block chain, one chain of
	// two-block tipsets; the wide chain at equal depth is heavier.
	thin1 := builder.AppendOn(ctx, builder.Genesis, 1)
	thin2 := builder.AppendOn(ctx, thin1, 1)

	wide1head := builder.BuildHeaderOn(ctx, builder.Genesis, 20)
	wide1other := builder.BuildHeaderOn(ctx, builder.Genesis, 21)
	require.NoError(t, builder.Store.AddBlock(ctx, wide1head))
	require.NoError(t, builder.Store.AddBlock(ctx, wide1other))
	wide1, err := types.NewTipSet([]*types.BlockHeader{wide1head, wide1other})
	require.NoError(t, err)

	wide2a := builder.BuildHeaderOn(ctx, wide1, 22)
	wide2b := builder.BuildHeaderOn(ctx, wide1, 23)
	require.NoError(t, builder.Store.AddBlock(ctx, wide2a))
	require.NoError(t, builder.Store.AddBlock(ctx, wide2b))
	wide2, err := types.NewTipSet([]*types.BlockHeader{wide2a, wide2b})
	require.NoError(t, err)

	// The widest chain of equal depth carries the most weight.
	require.True(t, builder.WeightOf(ctx, wide2).GreaterThan(builder.WeightOf(ctx, thin2)))
	assert.True(t, builder.Store.GetHead().Equals(wide2))
}

func TestLoadRestoresHead(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	t1 := builder.AppendOn(ctx, builder.Genesis, 2)
	t2 := builder.AppendOn(ctx, t1, 1)
	require.True(t, builder.Store.GetHead().Equals(t2))

	// A new store over the same repo recovers the persisted head.
	reloaded := chain.NewStore(builder.Repo.Datastore(), builder.Repo.Blockstore(), builder.Store.GenesisCid(), chainselector.Weight)
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.GetHead().Equals(t2))
	reloaded.Stop()
}
