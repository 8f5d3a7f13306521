package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/crypto"
	blocks "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"

	"github.com/filecoin-project/venus-lite/pkg/constants"
)

// BlockHeader is a block in the blockchain.
type BlockHeader struct {
	// Miner is the address of the miner actor that mined this block.
	Miner address.Address `json:"miner"`

	// Ticket is the ticket submitted with this block. Every block except
	// genesis carries one.
	Ticket *Ticket `json:"ticket"`

	// ElectionProof is the vrf proof giving this block's miner authoring rights.
	ElectionProof *ElectionProof `json:"electionProof"`

	// BeaconEntries contain the verifiable oracle randomness used to elect
	// this block's author leader.
	BeaconEntries []*BeaconEntry `json:"beaconEntries"`

	// Parents is the set of parents this block was based on. Typically one,
	// but can be several in the case where there were multiple winning ticket-
	// holders for an epoch.
	Parents TipSetKey `json:"parents"`

	// ParentWeight is the aggregate chain weight of the parent set.
	ParentWeight fbig.Int `json:"parentWeight"`

	// Height is the chain height of this block.
	Height abi.ChainEpoch `json:"height"`

	// ParentStateRoot is the CID of the root of the state tree after
	// application of the messages in the parent tipset to the parent tipset's
	// state root.
	ParentStateRoot cid.Cid `json:"parentStateRoot,omitempty"`

	// ParentMessageReceipts is the root of the receipts corresponding to the
	// application of the messages in the parent tipset.
	ParentMessageReceipts cid.Cid `json:"parentMessageReceipts,omitempty"`

	// Messages is the TxMeta cid of the messages included in this block.
	Messages cid.Cid `json:"messages,omitempty"`

	// BLSAggregate is the aggregate signature of all BLS signed messages in the block.
	BLSAggregate *crypto.Signature `json:"BLSAggregate"`

	// Timestamp, in seconds since the Unix epoch, at which this block was created.
	Timestamp uint64 `json:"timestamp"`

	// BlockSig is the signature of the miner's worker key over the block.
	BlockSig *crypto.Signature `json:"blocksig"`

	// ForkSignaling is extra data used by miners to communicate.
	ForkSignaling uint64 `json:"forkSignaling"`

	cachedCid cid.Cid

	cachedBytes []byte
}

// DecodeBlock decodes raw cbor bytes into a BlockHeader.
func DecodeBlock(b []byte) (*BlockHeader, error) {
	var out BlockHeader
	if err := out.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	out.cachedBytes = b
	return &out, nil
}

// Cid returns the content id of this block.
func (b *BlockHeader) Cid() cid.Cid {
	if b.cachedCid == cid.Undef {
		if b.cachedBytes == nil {
			buf := new(bytes.Buffer)
			if err := b.MarshalCBOR(buf); err != nil {
				panic(err)
			}
			b.cachedBytes = buf.Bytes()
		}
		c, err := constants.DefaultCidBuilder.Sum(b.cachedBytes)
		if err != nil {
			panic(err)
		}

		b.cachedCid = c
	}

	return b.cachedCid
}

// Serialize serializes the block header to canonical cbor bytes.
func (b *BlockHeader) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := b.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToStorageBlock converts the header to a raw block carrying its cid.
func (b *BlockHeader) ToStorageBlock() (blocks.Block, error) {
	data, err := b.Serialize()
	if err != nil {
		return nil, err
	}
	c, err := constants.DefaultCidBuilder.Sum(data)
	if err != nil {
		return nil, err
	}
	return blocks.NewBlockWithCid(data, c)
}

// SignatureData returns the block's bytes with a nil signature field for
// signature creation and verification.
func (b *BlockHeader) SignatureData() ([]byte, error) {
	tmp := *b
	tmp.BlockSig = nil
	tmp.cachedBytes = nil
	tmp.cachedCid = cid.Undef
	return tmp.Serialize()
}

// Equals returns true if the BlockHeader is equal to other.
// Two headers are equal iff their CIDs match.
func (b *BlockHeader) Equals(other *BlockHeader) bool {
	return b.Cid().Equals(other.Cid())
}

// LastTicket returns the block's ticket.
func (b *BlockHeader) LastTicket() *Ticket {
	return b.Ticket
}

func (b *BlockHeader) String() string {
	errStr := "(error encoding BlockHeader)"
	js, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errStr
	}
	return fmt.Sprintf("BlockHeader cid=[%v]: %s", b.Cid(), string(js))
}
