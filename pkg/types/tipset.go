package types

import (
	"sort"

	"github.com/filecoin-project/go-state-types/abi"
	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
)

// TipSet is a non-empty, immutable set of blocks at the same height with the
// same parent set. Blocks in a tipset are canonically ordered by ticket,
// strictly ascending; ticket collisions are construction errors. Blocks may
// be iterated either via Blocks() or efficiently by index with At().
//
// The zero value (UndefTipSet) is the distinguished "no tipset" sentinel;
// Defined() reports false for it and Height() reports 0.
type TipSet struct {
	// This slice is wrapped in a struct to enforce immutability.
	blocks []*BlockHeader
	// Key is computed at construction and cached.
	key  TipSetKey
	cids []cid.Cid

	height abi.ChainEpoch

	parentsKey TipSetKey
}

// UndefTipSet is a singleton representing a nil or undefined tipset.
var UndefTipSet = &TipSet{}

type blockHeaderWithCid struct {
	c cid.Cid
	b *BlockHeader
}

// NewTipSet builds a tipset from a collection of block headers.
// The blocks must have the same height and parent set, carry tickets (the
// lone genesis block excepted), and have pairwise distinct tickets.
func NewTipSet(bhs []*BlockHeader) (*TipSet, error) {
	if len(bhs) == 0 {
		return nil, ErrNoBlocks
	}

	first := bhs[0]
	blks := make([]*blockHeaderWithCid, len(bhs))
	blks[0] = &blockHeaderWithCid{c: first.Cid(), b: first}

	for i := 1; i < len(bhs); i++ {
		blk := bhs[i]
		if blk.Height != first.Height {
			return nil, ErrMismatchingHeights
		}
		if !blk.Parents.Equals(first.Parents) {
			return nil, ErrMismatchingParents
		}
		// Blocks over the same parents must agree on everything derived
		// from them.
		if !blk.ParentWeight.Equals(first.ParentWeight) ||
			!blk.ParentStateRoot.Equals(first.ParentStateRoot) ||
			!blk.ParentMessageReceipts.Equals(first.ParentMessageReceipts) {
			return nil, ErrMismatchingParents
		}
		blks[i] = &blockHeaderWithCid{c: blk.Cid(), b: blk}
	}

	// A ticket is required on every member once the tipset is not the lone
	// genesis block.
	for _, blk := range blks {
		if blk.b.Ticket == nil && (blk.b.Height != 0 || len(blks) > 1) {
			return nil, ErrTicketHasNoValue
		}
	}

	if len(blks) > 1 {
		sort.Slice(blks, func(i, j int) bool {
			return blks[i].b.Ticket.Compare(blks[j].b.Ticket) < 0
		})
		for i := 1; i < len(blks); i++ {
			if blks[i].b.Ticket.Compare(blks[i-1].b.Ticket) == 0 {
				return nil, ErrTicketsCollision
			}
		}
	}

	blocks := make([]*BlockHeader, len(blks))
	cids := make([]cid.Cid, len(blks))
	for i := range blks {
		blocks[i] = blks[i].b
		cids[i] = blks[i].c
	}

	return &TipSet{
		blocks: blocks,

		key:  NewTipSetKey(cids...),
		cids: cids,

		height: first.Height,

		parentsKey: first.Parents,
	}, nil
}

// NewTipSetFromKey builds a tipset from blocks and requires the resulting
// key to equal `key`.
func NewTipSetFromKey(key TipSetKey, bhs []*BlockHeader) (*TipSet, error) {
	ts, err := NewTipSet(bhs)
	if err != nil {
		return nil, err
	}
	if !ts.Key().Equals(key) {
		return nil, ErrBlockOrderFailure
	}
	return ts, nil
}

// Defined checks whether the tipset is defined.
// Invoking most other methods on an undefined tipset yields zero values.
func (ts *TipSet) Defined() bool {
	return ts != nil && len(ts.blocks) > 0
}

// Len returns the number of blocks in the tipset.
func (ts *TipSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.blocks)
}

// At returns the i'th block in the tipset's canonical order.
func (ts *TipSet) At(i int) *BlockHeader {
	return ts.blocks[i]
}

// Blocks returns the tipset's members in canonical order.
func (ts *TipSet) Blocks() []*BlockHeader {
	return ts.blocks
}

// Key returns a key for the tipset.
func (ts *TipSet) Key() TipSetKey {
	if ts == nil {
		return EmptyTSK
	}
	return ts.key
}

// Cids returns the member cids in canonical order.
func (ts *TipSet) Cids() []cid.Cid {
	if !ts.Defined() {
		return []cid.Cid{}
	}
	dst := make([]cid.Cid, len(ts.cids))
	copy(dst, ts.cids)
	return dst
}

// Height returns the height of a tipset; 0 for the undefined tipset.
func (ts *TipSet) Height() abi.ChainEpoch {
	if ts.Defined() {
		return ts.height
	}
	return 0
}

// Parents returns the key of the tipset's parent tipset.
func (ts *TipSet) Parents() TipSetKey {
	if ts.Defined() {
		return ts.parentsKey
	}
	return EmptyTSK
}

// ParentState returns the state root all members agree on.
func (ts *TipSet) ParentState() cid.Cid {
	if ts.Defined() {
		return ts.blocks[0].ParentStateRoot
	}
	return cid.Undef
}

// ParentMessageReceipts returns the receipts root all members agree on.
func (ts *TipSet) ParentMessageReceipts() cid.Cid {
	if ts.Defined() {
		return ts.blocks[0].ParentMessageReceipts
	}
	return cid.Undef
}

// ParentWeight returns the aggregate weight of the tipset's parents; zero
// for the undefined tipset.
func (ts *TipSet) ParentWeight() fbig.Int {
	if ts.Defined() {
		return ts.blocks[0].ParentWeight
	}
	return fbig.Zero()
}

// MinTicketBlock returns the deterministic representative member, the block
// with the smallest ticket.
func (ts *TipSet) MinTicketBlock() *BlockHeader {
	return ts.blocks[0]
}

// MinTicket returns the smallest ticket of all blocks in the tipset.
func (ts *TipSet) MinTicket() *Ticket {
	return ts.MinTicketBlock().Ticket
}

// MinTimestamp returns the smallest timestamp of all blocks in the tipset;
// 0 for the undefined tipset.
func (ts *TipSet) MinTimestamp() uint64 {
	if !ts.Defined() {
		return 0
	}
	min := ts.blocks[0].Timestamp
	for i := 1; i < len(ts.blocks); i++ {
		if ts.blocks[i].Timestamp < min {
			min = ts.blocks[i].Timestamp
		}
	}
	return min
}

// Contains reports whether the tipset has a member with the given cid.
func (ts *TipSet) Contains(c cid.Cid) bool {
	if !ts.Defined() {
		return false
	}
	for _, mc := range ts.cids {
		if mc.Equals(c) {
			return true
		}
	}
	return false
}

// Equals tests whether the tipset contains the same blocks as another.
// Equality is not tested deeply: two tipsets are equal if their keys are.
func (ts *TipSet) Equals(ots *TipSet) bool {
	if ts == nil && ots == nil {
		return true
	}
	if ts == nil || ots == nil {
		return false
	}
	if ts.height != ots.height {
		return false
	}
	if len(ts.cids) != len(ots.cids) {
		return false
	}
	for i, c := range ts.cids {
		if c != ots.cids[i] {
			return false
		}
	}
	return true
}

// String returns a formatted string of the CIDs in the TipSet.
// "{ <cid1> <cid2> <cid3> }"
func (ts TipSet) String() string {
	return ts.Key().String()
}

// ReverseTipSet reverses a slice of tipsets in place.
func ReverseTipSet(chain []*TipSet) {
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
}
