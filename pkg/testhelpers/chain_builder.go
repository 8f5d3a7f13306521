package testhelpers

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/filecoin-project/go-address"
	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/minio/blake2b-simd"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/consensus"
	"github.com/filecoin-project/venus-lite/pkg/consensus/chainselector"
	"github.com/filecoin-project/venus-lite/pkg/gen"
	"github.com/filecoin-project/venus-lite/pkg/repo"
	"github.com/filecoin-project/venus-lite/pkg/statemanger"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// Builder assembles an in-memory node core around a generated genesis and
// provides helpers for appending deterministic blocks.
type Builder struct {
	T *testing.T

	Repo         *repo.MemRepo
	Store        *chain.Store
	MessageStore *chain.MessageStore
	Stmgr        *statemanger.Stmgr
	Genesis      *types.TipSet
}

// NewBuilder creates a builder with a fresh genesis whose accounts are
// funded per cfg (pass nil for the defaults).
func NewBuilder(t *testing.T, cfg *gen.GenesisCfg) *Builder {
	ctx := context.Background()
	if cfg == nil {
		cfg = gen.DefaultGenesisCfg()
	}

	rep := repo.NewInMemoryRepo()
	genesisBlk, err := gen.MakeGenesis(ctx, rep.Blockstore(), cfg)
	require.NoError(t, err)

	store := chain.NewStore(rep.Datastore(), rep.Blockstore(), genesisBlk.Cid(), chainselector.Weight)
	messageStore := chain.NewMessageStore(rep.Blockstore())
	transformer := consensus.NewExpected(store.ReadOnlyStateStore(), messageStore)
	stmgr := statemanger.NewStateManager(store, messageStore, transformer, transformer)

	genesisTS, err := types.NewTipSet([]*types.BlockHeader{genesisBlk})
	require.NoError(t, err)

	require.NoError(t, store.SetHead(ctx, genesisTS))

	return &Builder{
		T:            t,
		Repo:         rep,
		Store:        store,
		MessageStore: messageStore,
		Stmgr:        stmgr,
		Genesis:      genesisTS,
	}
}

// NewAddr produces a fresh secp address for tests.
func NewAddr(t *testing.T, seed uint64) address.Address {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seed)
	digest := blake2b.Sum256(buf[:])
	addr, err := address.NewSecp256k1Address(digest[:])
	require.NoError(t, err)
	return addr
}

// BuildHeaderOn constructs (without ingesting) a well-formed child header of
// parent. The ticket is deterministic in (parent, ticketSeed) so sibling
// ordering in tests is reproducible.
func (b *Builder) BuildHeaderOn(ctx context.Context, parent *types.TipSet, ticketSeed byte) *types.BlockHeader {
	t := b.T

	stateRoot, receiptsRoot, err := b.Stmgr.RunStateTransition(ctx, parent)
	require.NoError(t, err)

	weight, err := b.Store.Weight(ctx, parent)
	require.NoError(t, err)

	emptyMessages, err := b.MessageStore.StoreMessages(ctx, nil, nil)
	require.NoError(t, err)

	seed := append(parent.Key().Bytes(), ticketSeed)
	proof := blake2b.Sum256(seed)

	return &types.BlockHeader{
		Miner:                 b.Genesis.At(0).Miner,
		Ticket:                &types.Ticket{VRFProof: proof[:]},
		Parents:               parent.Key(),
		ParentWeight:          weight,
		Height:                parent.Height() + 1,
		ParentStateRoot:       stateRoot,
		ParentMessageReceipts: receiptsRoot,
		Messages:              emptyMessages,
		Timestamp:             parent.MinTimestamp() + 30,
	}
}

// AppendOn builds numBlocks sibling headers on parent and ingests them all,
// returning the resulting tipset.
func (b *Builder) AppendOn(ctx context.Context, parent *types.TipSet, numBlocks int) *types.TipSet {
	t := b.T

	var headers []*types.BlockHeader
	for i := 0; i < numBlocks; i++ {
		blk := b.BuildHeaderOn(ctx, parent, byte(i))
		require.NoError(t, b.Store.AddBlock(ctx, blk))
		headers = append(headers, blk)
	}

	ts, err := types.NewTipSet(headers)
	require.NoError(t, err)
	return ts
}

// WeightOf is a convenience around the store's weight function.
func (b *Builder) WeightOf(ctx context.Context, ts *types.TipSet) fbig.Int {
	w, err := b.Store.Weight(ctx, ts)
	require.NoError(b.T, err)
	return w
}
