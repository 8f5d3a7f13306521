package chain

import (
	"context"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// TipSetMetadata is the type stored at the leaves of the TipStateCache. It
// contains a tipset pointing to blocks, the root cid of the chain's state
// after applying the messages in this tipset to its parent state, and the
// root cid of the collection of receipts for that application.
type TipSetMetadata struct {
	// TipSetStateRoot is the root of aggregate state after applying tipset.
	TipSetStateRoot cid.Cid

	// TipSet is the set of blocks that forms the tip set.
	TipSet *types.TipSet

	// TipSetReceipts receipts from all message contained within this tipset.
	TipSetReceipts cid.Cid
}

type tipLoader interface {
	LoadTipsetMetadata(ctx context.Context, ts *types.TipSet) (*TipSetMetadata, error)
}

// TipStateCache tracks the state root and receipts root of known tipsets,
// falling back to the loader for entries evicted from memory.
type TipStateCache struct {
	mu sync.RWMutex

	cache map[string]TSState

	loader tipLoader
}

// NewTipStateCache returns a TipStateCache reloading evicted entries via the
// loader.
func NewTipStateCache(loader tipLoader) *TipStateCache {
	return &TipStateCache{
		cache:  make(map[string]TSState),
		loader: loader,
	}
}

// Put adds an entry to the cache.
func (ti *TipStateCache) Put(tsm *TipSetMetadata) {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	ti.cache[tsm.TipSet.String()] = TSState{
		StateRoot: tsm.TipSetStateRoot,
		Receipts:  tsm.TipSetReceipts,
	}
}

// Get returns the tipset's computed state, consulting the loader on a miss.
func (ti *TipStateCache) Get(ctx context.Context, ts *types.TipSet) (TSState, error) {
	ti.mu.RLock()
	state, ok := ti.cache[ts.String()]
	ti.mu.RUnlock()
	if !ok {
		tsm, err := ti.loader.LoadTipsetMetadata(ctx, ts)
		if err != nil {
			return TSState{}, errors.New("state not exit")
		}
		ti.Put(tsm)

		return TSState{
			StateRoot: tsm.TipSetStateRoot,
			Receipts:  tsm.TipSetReceipts,
		}, nil
	}
	return state, nil
}

// GetTipSetStateRoot returns the tipset's computed state root.
func (ti *TipStateCache) GetTipSetStateRoot(ctx context.Context, ts *types.TipSet) (cid.Cid, error) {
	state, err := ti.Get(ctx, ts)
	if err != nil {
		return cid.Undef, err
	}
	return state.StateRoot, nil
}

// GetTipSetReceiptsRoot returns the tipset's computed receipts root.
func (ti *TipStateCache) GetTipSetReceiptsRoot(ctx context.Context, ts *types.TipSet) (cid.Cid, error) {
	state, err := ti.Get(ctx, ts)
	if err != nil {
		return cid.Undef, err
	}
	return state.Receipts, nil
}

// Has reports whether the tipset's computed state is known.
func (ti *TipStateCache) Has(ctx context.Context, ts *types.TipSet) bool {
	_, err := ti.Get(ctx, ts)
	return err == nil
}

// Del removes the tipset's entry from the in-memory cache.
func (ti *TipStateCache) Del(ts *types.TipSet) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	delete(ti.cache, ts.String())
}
