package types

import (
	"io"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// expTipSet is the wire form of a tipset: the 3-tuple
// (cids, blks, height). It exists so tipsets can cross the wire and be
// revalidated on the way in.
type expTipSet struct {
	Cids   []cid.Cid
	Blocks []*BlockHeader
	Height abi.ChainEpoch
}

// MarshalCBOR writes the tipset in its canonical wire tuple.
func (ts *TipSet) MarshalCBOR(w io.Writer) error {
	if ts == nil {
		return UndefTipSet.MarshalCBOR(w)
	}
	ets := expTipSet{
		Cids:   ts.cids,
		Blocks: ts.blocks,
		Height: ts.height,
	}
	return ets.MarshalCBOR(w)
}

// UnmarshalCBOR reads the wire tuple, rebuilds the tipset from the carried
// blocks and requires the declared cid ordering and height to match.
func (ts *TipSet) UnmarshalCBOR(r io.Reader) error {
	var ets expTipSet
	if err := ets.UnmarshalCBOR(r); err != nil {
		return err
	}

	if len(ets.Blocks) == 0 {
		if ets.Height != 0 {
			return ErrMismatchingHeights
		}
		*ts = TipSet{}
		return nil
	}

	ots, err := NewTipSet(ets.Blocks)
	if err != nil {
		return err
	}
	if !ots.Key().Equals(NewTipSetKey(ets.Cids...)) {
		return ErrBlockOrderFailure
	}
	if ots.Height() != ets.Height {
		return ErrMismatchingHeights
	}

	*ts = *ots
	return nil
}
