package types

import (
	"bytes"

	blocks "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"

	"github.com/filecoin-project/venus-lite/pkg/constants"
)

// TxMeta tracks the merkleroots of both secp and bls messages separately.
// Its cid is what a block header's Messages field references.
type TxMeta struct {
	BLSRoot  cid.Cid `json:"blsRoot"`
	SecpRoot cid.Cid `json:"secpRoot"`
}

// Cid returns the canonical CID of the meta pair.
func (m *TxMeta) Cid() cid.Cid {
	blk, err := m.ToStorageBlock()
	if err != nil {
		panic(err)
	}
	return blk.Cid()
}

// ToStorageBlock serializes the meta pair into a raw block carrying its cid.
func (m *TxMeta) ToStorageBlock() (blocks.Block, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	data := buf.Bytes()
	c, err := constants.DefaultCidBuilder.Sum(data)
	if err != nil {
		return nil, err
	}
	return blocks.NewBlockWithCid(data, c)
}
