package gen_test

import (
	"context"
	"testing"

	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/gen"
	"github.com/filecoin-project/venus-lite/pkg/repo"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func TestMakeGenesis(t *testing.T) {
	ctx := context.Background()
	rep := repo.NewInMemoryRepo()

	blk, err := gen.MakeGenesis(ctx, rep.Blockstore(), gen.DefaultGenesisCfg())
	require.NoError(t, err)

	assert.Nil(t, blk.Ticket, "genesis carries no ticket")
	assert.Equal(t, int64(0), int64(blk.Height))
	assert.True(t, blk.Parents.IsEmpty())
	assert.Equal(t, fbig.Zero(), blk.ParentWeight)
	assert.True(t, blk.ParentStateRoot.Defined())
	assert.True(t, blk.ParentMessageReceipts.Defined())
	assert.True(t, blk.Messages.Defined())

	// The genesis block is CAS resident under its own cid.
	raw, err := rep.Blockstore().Get(ctx, blk.Cid())
	require.NoError(t, err)
	decoded, err := types.DecodeBlock(raw.RawData())
	require.NoError(t, err)
	assert.True(t, blk.Equals(decoded))

	// A lone genesis block forms a valid tipset.
	ts, err := types.NewTipSet([]*types.BlockHeader{blk})
	require.NoError(t, err)
	assert.Equal(t, int64(0), int64(ts.Height()))
}

func TestMakeGenesisIsDeterministic(t *testing.T) {
	ctx := context.Background()

	cfg := gen.DefaultGenesisCfg()
	blk1, err := gen.MakeGenesis(ctx, repo.NewInMemoryRepo().Blockstore(), cfg)
	require.NoError(t, err)
	blk2, err := gen.MakeGenesis(ctx, repo.NewInMemoryRepo().Blockstore(), cfg)
	require.NoError(t, err)

	assert.Equal(t, blk1.Cid(), blk2.Cid())
}
