package gen

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/specs-actors/actors/builtin"
	"github.com/filecoin-project/specs-actors/actors/builtin/account"
	init_ "github.com/filecoin-project/specs-actors/actors/builtin/init"
	"github.com/filecoin-project/specs-actors/actors/builtin/power"
	"github.com/filecoin-project/specs-actors/actors/builtin/system"
	"github.com/filecoin-project/specs-actors/actors/util/adt"
	blockstore "github.com/ipfs/go-ipfs-blockstore"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// GenesisAccount funds an account actor at genesis.
type GenesisAccount struct {
	Addr    address.Address
	Balance abi.TokenAmount
}

// GenesisCfg parameterizes genesis construction.
type GenesisCfg struct {
	NetworkName string
	Timestamp   uint64
	// InitialPower seeds the power actor so the weight function has a
	// defined log2 term from the first epoch.
	InitialPower abi.StoragePower
	Accounts     []GenesisAccount
}

// DefaultGenesisCfg returns a configuration good enough for a local chain.
func DefaultGenesisCfg() *GenesisCfg {
	return &GenesisCfg{
		NetworkName:  "venus-lite-local",
		Timestamp:    0,
		InitialPower: fbig.Lsh(fbig.NewInt(1), 30),
	}
}

// MakeGenesis writes a complete genesis state and block to the blob store
// and returns the genesis header. The header carries no ticket; its parent
// state root points at the constructed actor set and its receipts root at
// an empty collection.
func MakeGenesis(ctx context.Context, bs blockstore.Blockstore, cfg *GenesisCfg) (*types.BlockHeader, error) {
	cst := cbor.NewCborStore(bs)
	store := adt.WrapStore(ctx, cst)

	emptyMap, err := adt.MakeEmptyMap(store).Root()
	if err != nil {
		return nil, errors.Wrap(err, "failed to make empty map")
	}
	emptyMultiMap, err := adt.MakeEmptyMultimap(store).Root()
	if err != nil {
		return nil, errors.Wrap(err, "failed to make empty multimap")
	}

	st := tree.NewState(cst)

	// System actor.
	systemHead, err := cst.Put(ctx, &system.State{})
	if err != nil {
		return nil, err
	}
	if err := st.SetActor(ctx, builtin.SystemActorAddr, types.NewActor(builtin.SystemActorCodeID, fbig.Zero(), systemHead)); err != nil {
		return nil, errors.Wrap(err, "setting up system actor")
	}

	// Init actor: the address map every lookup resolves through.
	initState := init_.ConstructState(emptyMap, cfg.NetworkName)
	initHead, err := cst.Put(ctx, initState)
	if err != nil {
		return nil, err
	}
	if err := st.SetActor(ctx, builtin.InitActorAddr, types.NewActor(builtin.InitActorCodeID, fbig.Zero(), initHead)); err != nil {
		return nil, errors.Wrap(err, "setting up init actor")
	}

	// Power actor, seeded so the chain has weight from epoch 0.
	powerState := power.ConstructState(emptyMap, emptyMultiMap)
	powerState.TotalRawBytePower = cfg.InitialPower
	powerState.TotalQualityAdjPower = cfg.InitialPower
	powerState.MinerCount = 1
	powerHead, err := cst.Put(ctx, powerState)
	if err != nil {
		return nil, err
	}
	if err := st.SetActor(ctx, builtin.StoragePowerActorAddr, types.NewActor(builtin.StoragePowerActorCodeID, fbig.Zero(), powerHead)); err != nil {
		return nil, errors.Wrap(err, "setting up power actor")
	}

	// Funded accounts.
	for _, acct := range cfg.Accounts {
		idAddr, err := st.RegisterNewAddress(acct.Addr)
		if err != nil {
			return nil, errors.Wrapf(err, "registering account %s", acct.Addr)
		}
		head, err := cst.Put(ctx, &account.State{Address: acct.Addr})
		if err != nil {
			return nil, err
		}
		if err := st.SetActor(ctx, idAddr, types.NewActor(builtin.AccountActorCodeID, acct.Balance, head)); err != nil {
			return nil, errors.Wrapf(err, "setting up account %s", acct.Addr)
		}
	}

	stateRoot, err := st.Flush(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "flushing genesis state")
	}

	msgStore := chain.NewMessageStore(bs)
	emptyReceipts, err := msgStore.StoreReceipts(ctx, nil)
	if err != nil {
		return nil, err
	}
	emptyMessages, err := msgStore.StoreMessages(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	genesis := &types.BlockHeader{
		Miner:                 builtin.SystemActorAddr,
		Ticket:                nil,
		Parents:               types.EmptyTSK,
		ParentWeight:          fbig.Zero(),
		Height:                0,
		ParentStateRoot:       stateRoot,
		ParentMessageReceipts: emptyReceipts,
		Messages:              emptyMessages,
		Timestamp:             cfg.Timestamp,
	}

	if _, err := cst.Put(ctx, genesis); err != nil {
		return nil, errors.Wrap(err, "writing genesis block")
	}

	return genesis, nil
}
