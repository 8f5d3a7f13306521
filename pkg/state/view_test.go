package state_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	fbig "github.com/filecoin-project/go-state-types/big"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/gen"
	"github.com/filecoin-project/venus-lite/pkg/repo"
	"github.com/filecoin-project/venus-lite/pkg/state"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func setupView(t *testing.T, accounts ...gen.GenesisAccount) (*state.View, address.Address) {
	ctx := context.Background()
	rep := repo.NewInMemoryRepo()

	cfg := gen.DefaultGenesisCfg()
	cfg.Accounts = accounts

	genesis, err := gen.MakeGenesis(ctx, rep.Blockstore(), cfg)
	require.NoError(t, err)

	cst := cbor.NewCborStore(rep.Blockstore())
	view := state.NewView(cst, genesis.ParentStateRoot)

	var first address.Address
	if len(accounts) > 0 {
		first = accounts[0].Addr
	}
	return view, first
}

func testAccount(t *testing.T, seed string, balance int64) gen.GenesisAccount {
	addr, err := address.NewSecp256k1Address([]byte(seed))
	require.NoError(t, err)
	return gen.GenesisAccount{Addr: addr, Balance: fbig.NewInt(balance)}
}

func TestViewInitNetworkName(t *testing.T) {
	ctx := context.Background()
	view, _ := setupView(t)

	name, err := view.InitNetworkName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "venus-lite-local", name)
}

func TestViewResolveAddress(t *testing.T) {
	ctx := context.Background()
	view, keyAddr := setupView(t, testAccount(t, "account one - secp256k1 key!", 500))

	idAddr, err := view.InitResolveAddress(ctx, keyAddr)
	require.NoError(t, err)
	assert.Equal(t, address.ID, idAddr.Protocol())

	// ID form resolves to itself.
	same, err := view.InitResolveAddress(ctx, idAddr)
	require.NoError(t, err)
	assert.Equal(t, idAddr, same)

	// And back to key form through the account actor.
	back, err := view.ResolveToKeyAddr(ctx, idAddr)
	require.NoError(t, err)
	assert.Equal(t, keyAddr, back)
}

func TestViewResolveUnknownAddress(t *testing.T) {
	ctx := context.Background()
	view, _ := setupView(t)

	unknown, err := address.NewSecp256k1Address([]byte("who dis"))
	require.NoError(t, err)

	_, err = view.InitResolveAddress(ctx, unknown)
	assert.ErrorIs(t, err, types.ErrActorNotFound)
}

func TestViewPowerNetworkTotal(t *testing.T) {
	ctx := context.Background()
	view, _ := setupView(t)

	power, err := view.PowerNetworkTotal(ctx)
	require.NoError(t, err)
	assert.True(t, power.QualityAdjustedPower.GreaterThan(fbig.Zero()))
	assert.Equal(t, int64(1), power.MinerCount)
}

func TestViewLoadActor(t *testing.T) {
	ctx := context.Background()
	view, keyAddr := setupView(t, testAccount(t, "account one - secp256k1 key!", 500))

	actor, err := view.LoadActor(ctx, keyAddr)
	require.NoError(t, err)
	assert.Equal(t, fbig.NewInt(500), actor.Balance)

	// Repeated reads through the same view observe the same head cid.
	again, err := view.LoadActor(ctx, keyAddr)
	require.NoError(t, err)
	assert.Equal(t, actor.Head, again.Head)
}
