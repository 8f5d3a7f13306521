package node_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/app/node"
	"github.com/filecoin-project/venus-lite/pkg/repo"
	"github.com/filecoin-project/venus-lite/pkg/state"
)

func headNetworkName(ctx context.Context, nd *node.Node) (string, error) {
	head, err := nd.Chain().API().ChainHead(ctx)
	if err != nil {
		return "", err
	}
	view := state.NewView(nd.ChainStore().ReadOnlyStateStore(), head.At(0).ParentStateRoot)
	return view.InitNetworkName(ctx)
}

func TestNodeBootsWithGenesisHead(t *testing.T) {
	ctx := context.Background()
	rep := repo.NewInMemoryRepo()

	nd, err := node.New(ctx, rep)
	require.NoError(t, err)
	defer nd.Stop(ctx)

	head, err := nd.Chain().API().ChainHead(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, head.Len())
	assert.Equal(t, nd.ChainStore().GenesisCid(), head.At(0).Cid())

	name, err := headNetworkName(ctx, nd)
	require.NoError(t, err)
	assert.Equal(t, rep.Config().Chain.NetworkName, name)
}

func TestNodeReusesPersistedGenesis(t *testing.T) {
	ctx := context.Background()
	rep := repo.NewInMemoryRepo()

	nd1, err := node.New(ctx, rep)
	require.NoError(t, err)
	gen1 := nd1.ChainStore().GenesisCid()
	nd1.Stop(ctx)

	// Booting a second node over the same repo reuses the genesis and head.
	nd2, err := node.New(ctx, rep)
	require.NoError(t, err)
	defer nd2.Stop(ctx)
	assert.Equal(t, gen1, nd2.ChainStore().GenesisCid())

	head, err := nd2.Chain().API().ChainHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen1, head.At(0).Cid())
}
