package types

import "github.com/ipfs/go-cid"

// BlockMessagesInfo contains messages for one block in a tipset.
type BlockMessagesInfo struct {
	BlsMessages   []ChainMsg
	SecpkMessages []ChainMsg
	Block         *BlockHeader
}

// FullBlock carries a block header and the message collections it references.
type FullBlock struct {
	Header       *BlockHeader
	BLSMessages  []*UnsignedMessage
	SECPMessages []*SignedMessage
}

// Cid returns the FullBlock's header's Cid.
func (fb *FullBlock) Cid() cid.Cid {
	return fb.Header.Cid()
}
