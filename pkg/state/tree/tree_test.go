package tree_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/specs-actors/actors/builtin"
	"github.com/filecoin-project/specs-actors/actors/builtin/account"
	init_ "github.com/filecoin-project/specs-actors/actors/builtin/init"
	"github.com/filecoin-project/specs-actors/actors/util/adt"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

func setupTree(t *testing.T, cst cbor.IpldStore) *tree.State {
	ctx := context.Background()
	st := tree.NewState(cst)

	emptyMap, err := adt.MakeEmptyMap(adt.WrapStore(ctx, cst)).Root()
	require.NoError(t, err)

	initHead, err := cst.Put(ctx, init_.ConstructState(emptyMap, "test"))
	require.NoError(t, err)
	require.NoError(t, st.SetActor(ctx, builtin.InitActorAddr, types.NewActor(builtin.InitActorCodeID, fbig.Zero(), initHead)))
	return st
}

func TestTreeSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	cst := cbor.NewMemCborStore()
	st := setupTree(t, cst)

	addr, err := address.NewIDAddress(101)
	require.NoError(t, err)

	act := types.NewActor(builtin.AccountActorCodeID, fbig.NewInt(55), builtin.AccountActorCodeID)
	require.NoError(t, st.SetActor(ctx, addr, act))

	got, found, err := st.GetActor(ctx, addr)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, act.Balance, got.Balance)
	assert.Equal(t, act.Code, got.Code)

	// Mutations survive a flush/reload cycle through the root cid.
	root, err := st.Flush(ctx)
	require.NoError(t, err)

	reloaded, err := tree.LoadState(ctx, cst, root)
	require.NoError(t, err)
	got2, found, err := reloaded.GetActor(ctx, addr)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, act.Balance, got2.Balance)
}

func TestTreeLookupID(t *testing.T) {
	ctx := context.Background()
	cst := cbor.NewMemCborStore()
	st := setupTree(t, cst)

	keyAddr, err := address.NewSecp256k1Address([]byte("a pubkey of some account holder"))
	require.NoError(t, err)

	idAddr, err := st.RegisterNewAddress(keyAddr)
	require.NoError(t, err)
	assert.Equal(t, address.ID, idAddr.Protocol())

	head, err := cst.Put(ctx, &account.State{Address: keyAddr})
	require.NoError(t, err)
	require.NoError(t, st.SetActor(ctx, idAddr, types.NewActor(builtin.AccountActorCodeID, fbig.Zero(), head)))

	// Key form resolves through the init actor map.
	resolved, err := st.LookupID(keyAddr)
	require.NoError(t, err)
	assert.Equal(t, idAddr, resolved)

	// ID form is returned unchanged.
	same, err := st.LookupID(idAddr)
	require.NoError(t, err)
	assert.Equal(t, idAddr, same)

	// A key-form actor is readable through either address.
	_, found, err := st.GetActor(ctx, keyAddr)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTreeGetActorUnknownAddress(t *testing.T) {
	ctx := context.Background()
	cst := cbor.NewMemCborStore()
	st := setupTree(t, cst)

	unknownKey, err := address.NewSecp256k1Address([]byte("nobody home at this address...."))
	require.NoError(t, err)

	_, found, err := st.GetActor(ctx, unknownKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTreeForEach(t *testing.T) {
	ctx := context.Background()
	cst := cbor.NewMemCborStore()
	st := setupTree(t, cst)

	for i := uint64(100); i < 103; i++ {
		addr, err := address.NewIDAddress(i)
		require.NoError(t, err)
		require.NoError(t, st.SetActor(ctx, addr, types.NewActor(builtin.AccountActorCodeID, fbig.NewInt(int64(i)), builtin.AccountActorCodeID)))
	}

	seen := map[address.Address]struct{}{}
	require.NoError(t, st.ForEach(func(key tree.ActorKey, a *types.Actor) error {
		seen[key] = struct{}{}
		return nil
	}))
	// Three accounts plus the init actor.
	assert.Len(t, seen, 4)
}
