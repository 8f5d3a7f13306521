package chain

import (
	"context"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// ErrNoCommonAncestor is returned when two chains assumed to have a common
// ancestor do not.
var ErrNoCommonAncestor = errors.New("no common ancestor")

// TipSetProvider provides tipsets for traversal.
type TipSetProvider interface {
	GetTipSet(ctx context.Context, tsKey types.TipSetKey) (*types.TipSet, error)
}

// BlockProvider provides blocks.
type BlockProvider interface {
	GetBlock(ctx context.Context, cid cid.Cid) (*types.BlockHeader, error)
}

// IterAncestors returns an iterator over tipset ancestors, yielding first the
// start tipset and then its parent tipsets until (and including) the genesis
// tipset.
func IterAncestors(ctx context.Context, store TipSetProvider, start *types.TipSet) *TipsetIterator {
	return &TipsetIterator{ctx, store, start}
}

// TipsetIterator is an iterator over tipsets.
type TipsetIterator struct {
	ctx   context.Context
	store TipSetProvider
	value *types.TipSet
}

// Value returns the iterator's current value, if not Complete().
func (it *TipsetIterator) Value() *types.TipSet {
	return it.value
}

// Complete tests whether the iterator is exhausted.
func (it *TipsetIterator) Complete() bool {
	return !it.value.Defined()
}

// Next advances the iterator to the next value.
func (it *TipsetIterator) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		parentKey := it.value.Parents()
		// Parents is empty for the genesis tipset.
		if parentKey.IsEmpty() {
			it.value = types.UndefTipSet
			return nil
		}
		var err error
		it.value, err = it.store.GetTipSet(ctx, parentKey)
		return err
	}
}

// LoadTipSetBlocks loads all the blocks for a tipset from the store.
func LoadTipSetBlocks(ctx context.Context, store BlockProvider, key types.TipSetKey) (*types.TipSet, error) {
	var blocks []*types.BlockHeader
	for _, bid := range key.Cids() {
		blk, err := store.GetBlock(ctx, bid)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
	}
	return types.NewTipSetFromKey(key, blocks)
}

type tipsetFromBlockProvider struct {
	blocks BlockProvider
}

// TipSetProviderFromBlocks builds a tipset provider backed by a block provider.
func TipSetProviderFromBlocks(ctx context.Context, blocks BlockProvider) TipSetProvider {
	return &tipsetFromBlockProvider{blocks}
}

// GetTipSet loads the blocks for a tipset.
func (p *tipsetFromBlockProvider) GetTipSet(ctx context.Context, tsKey types.TipSetKey) (*types.TipSet, error) {
	return LoadTipSetBlocks(ctx, p.blocks, tsKey)
}

// FindCommonAncestor returns the common ancestor of the two tipsets pointed
// to by the input iterators. If they share no common ancestor
// ErrNoCommonAncestor will be returned.
func FindCommonAncestor(ctx context.Context, leftIter, rightIter *TipsetIterator) (*types.TipSet, error) {
	for !rightIter.Complete() && !leftIter.Complete() {
		left := leftIter.Value()
		right := rightIter.Value()

		leftHeight := left.Height()
		rightHeight := right.Height()

		// Found common ancestor.
		if left.Equals(right) {
			return left, nil
		}

		// Update the pointers. Pointers move back one tipset if they point to
		// a tipset at the same height or higher than the other pointer's
		// tipset.
		if rightHeight >= leftHeight {
			if err := rightIter.Next(ctx); err != nil {
				return types.UndefTipSet, err
			}
		}

		if leftHeight >= rightHeight {
			if err := leftIter.Next(ctx); err != nil {
				return types.UndefTipSet, err
			}
		}
	}
	return types.UndefTipSet, ErrNoCommonAncestor
}

// CollectTipSetsOfHeightAtLeast collects all tipsets with a height greater
// than or equal to minHeight from the input iterator, in descending height
// order.
func CollectTipSetsOfHeightAtLeast(ctx context.Context, iterator *TipsetIterator, minHeight abi.ChainEpoch) ([]*types.TipSet, error) {
	var ret []*types.TipSet
	var err error
	for ; !iterator.Complete(); err = iterator.Next(ctx) {
		if err != nil {
			return nil, err
		}
		if iterator.Value().Height() < minHeight {
			return ret, nil
		}
		ret = append(ret, iterator.Value())
	}
	return ret, nil
}

// CollectTipsToCommonAncestor traverses chains from two tipsets (called old
// and new) until their common ancestor, collecting all tipsets that are in
// one chain but not the other. The resulting lists of tipsets are ordered by
// decreasing height; the common ancestor is not included.
func CollectTipsToCommonAncestor(ctx context.Context, store TipSetProvider, oldHead, newHead *types.TipSet) (oldTips, newTips []*types.TipSet, err error) {
	oldIter := IterAncestors(ctx, store, oldHead)
	newIter := IterAncestors(ctx, store, newHead)

	commonAncestor, err := FindCommonAncestor(ctx, oldIter, newIter)
	if err != nil {
		return
	}
	commonHeight := commonAncestor.Height()

	// Refresh iterators modified by FindCommonAncestor.
	oldIter = IterAncestors(ctx, store, oldHead)
	newIter = IterAncestors(ctx, store, newHead)

	// Add 1 to the height argument so that the common ancestor is not
	// included in the outputs.
	oldTips, err = CollectTipSetsOfHeightAtLeast(ctx, oldIter, commonHeight+1)
	if err != nil {
		return
	}
	newTips, err = CollectTipSetsOfHeightAtLeast(ctx, newIter, commonHeight+1)
	return
}

// Reverse reverses a slice of tipsets in place.
func Reverse(chain []*types.TipSet) {
	// https://github.com/golang/go/wiki/SliceTricks#reversing
	for i, opp := 0, len(chain)-1; i < opp; i, opp = i+1, opp-1 {
		chain[i], chain[opp] = chain[opp], chain[i]
	}
}
