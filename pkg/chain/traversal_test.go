package chain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/testhelpers"
)

func TestIterAncestors(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	t1 := builder.AppendOn(ctx, builder.Genesis, 1)
	t2 := builder.AppendOn(ctx, t1, 1)

	provider := chain.TipSetProviderFromBlocks(ctx, builder.Store)
	iter := chain.IterAncestors(ctx, provider, t2)

	require.False(t, iter.Complete())
	assert.True(t, iter.Value().Equals(t2))

	require.NoError(t, iter.Next(ctx))
	assert.True(t, iter.Value().Equals(t1))

	require.NoError(t, iter.Next(ctx))
	assert.True(t, iter.Value().Equals(builder.Genesis))

	require.NoError(t, iter.Next(ctx))
	assert.True(t, iter.Complete())
}

func TestFindCommonAncestor(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	// Fork at t1: left goes two deep, right goes one deep.
	t1 := builder.AppendOn(ctx, builder.Genesis, 1)

	left1 := builder.BuildHeaderOn(ctx, t1, 10)
	require.NoError(t, builder.Store.AddBlock(ctx, left1))
	leftTS1 := mustTipSet(t, left1)
	left2 := builder.BuildHeaderOn(ctx, leftTS1, 11)
	require.NoError(t, builder.Store.AddBlock(ctx, left2))
	leftTS2 := mustTipSet(t, left2)

	right1 := builder.BuildHeaderOn(ctx, t1, 20)
	require.NoError(t, builder.Store.AddBlock(ctx, right1))
	rightTS1 := mustTipSet(t, right1)

	provider := chain.TipSetProviderFromBlocks(ctx, builder.Store)
	leftIter := chain.IterAncestors(ctx, provider, leftTS2)
	rightIter := chain.IterAncestors(ctx, provider, rightTS1)

	ancestor, err := chain.FindCommonAncestor(ctx, leftIter, rightIter)
	require.NoError(t, err)
	assert.True(t, ancestor.Equals(t1))
}

func TestCollectTipsToCommonAncestorCounts(t *testing.T) {
	ctx := context.Background()
	builder := testhelpers.NewBuilder(t, nil)

	fork := builder.AppendOn(ctx, builder.Genesis, 1)

	// Old branch: depth 3 above the fork. New branch: depth 2.
	old1 := mustTipSet(t, builder.BuildHeaderOn(ctx, fork, 10))
	addAll(t, builder, old1)
	old2 := mustTipSet(t, builder.BuildHeaderOn(ctx, old1, 11))
	addAll(t, builder, old2)
	old3 := mustTipSet(t, builder.BuildHeaderOn(ctx, old2, 12))
	addAll(t, builder, old3)

	new1 := mustTipSet(t, builder.BuildHeaderOn(ctx, fork, 20))
	addAll(t, builder, new1)
	new2 := mustTipSet(t, builder.BuildHeaderOn(ctx, new1, 21))
	addAll(t, builder, new2)

	provider := chain.TipSetProviderFromBlocks(ctx, builder.Store)
	oldTips, newTips, err := chain.CollectTipsToCommonAncestor(ctx, provider, old3, new2)
	require.NoError(t, err)

	// depth(old, LCA) + depth(new, LCA) tipsets, ancestor excluded, ordered
	// by decreasing height.
	require.Len(t, oldTips, 3)
	require.Len(t, newTips, 2)
	assert.True(t, oldTips[0].Equals(old3))
	assert.True(t, oldTips[1].Equals(old2))
	assert.True(t, oldTips[2].Equals(old1))
	assert.True(t, newTips[0].Equals(new2))
	assert.True(t, newTips[1].Equals(new1))
}
