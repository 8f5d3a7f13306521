package chain_test

import (
	"context"
	"testing"
	"time"

	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbig "github.com/filecoin-project/go-state-types/big"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/constants"
	"github.com/filecoin-project/venus-lite/pkg/gen"
	"github.com/filecoin-project/venus-lite/pkg/testhelpers"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func fundedBuilder(t *testing.T) (*testhelpers.Builder, *types.UnsignedMessage) {
	cfg := gen.DefaultGenesisCfg()
	alice := testhelpers.NewAddr(t, 1)
	bob := testhelpers.NewAddr(t, 2)
	cfg.Accounts = []gen.GenesisAccount{
		{Addr: alice, Balance: fbig.NewInt(10000)},
	}

	builder := testhelpers.NewBuilder(t, cfg)

	msg := &types.UnsignedMessage{
		From:       alice,
		To:         bob,
		Nonce:      0,
		Value:      fbig.NewInt(100),
		GasFeeCap:  fbig.Zero(),
		GasPremium: fbig.Zero(),
	}
	return builder, msg
}

func ingestBlockWithMessage(t *testing.T, builder *testhelpers.Builder, parent *types.TipSet, msg *types.UnsignedMessage) *types.TipSet {
	ctx := context.Background()

	metaCid, err := builder.MessageStore.StoreMessages(ctx, nil, []*types.UnsignedMessage{msg})
	require.NoError(t, err)

	blk := builder.BuildHeaderOn(ctx, parent, 0)
	blk.Messages = metaCid
	require.NoError(t, builder.Store.AddBlock(ctx, blk))

	return mustTipSet(t, blk)
}

func TestWaiterFindsExecutedMessage(t *testing.T) {
	ctx := context.Background()
	builder, msg := fundedBuilder(t)

	ts := ingestBlockWithMessage(t, builder, builder.Genesis, msg)

	// Executing the tipset produces and indexes the receipts.
	_, _, err := builder.Stmgr.RunStateTransition(ctx, ts)
	require.NoError(t, err)

	waiter := chain.NewWaiter(builder.Store, builder.MessageStore)

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := waiter.Wait(waitCtx, msg.Cid(), constants.DefaultMessageWaitLookback)
	require.NoError(t, err)

	assert.True(t, res.TS.Equals(ts))
	assert.Equal(t, exitcode.Ok, res.Receipt.ExitCode)
	assert.Equal(t, msg.Cid(), res.Message.Cid())

	// The result is retained for repeated queries.
	cached, ok := waiter.Results(msg.Cid())
	require.True(t, ok)
	assert.Equal(t, res, cached)
}

func TestWaiterRespectsContextCancel(t *testing.T) {
	builder, msg := fundedBuilder(t)

	waiter := chain.NewWaiter(builder.Store, builder.MessageStore)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// The message never lands; the wait ends with the context.
	_, err := waiter.Wait(ctx, msg.Cid(), constants.DefaultMessageWaitLookback)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
