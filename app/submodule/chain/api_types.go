package chain

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// BlockMessages is the message content of one block, split by signature
// scheme.
type BlockMessages struct {
	BlsMessages   []*types.UnsignedMessage `json:"blsMessages"`
	SecpkMessages []*types.SignedMessage   `json:"secpkMessages"`
	Cids          []cid.Cid                `json:"cids"`
}

// APIMessage pairs a message with its cid for API consumers.
type APIMessage struct {
	Cid     cid.Cid                `json:"cid"`
	Message *types.UnsignedMessage `json:"message"`
}

// ActorState is the decoded state of one actor at a tipset.
type ActorState struct {
	Balance abi.TokenAmount `json:"balance"`
	Code    cid.Cid         `json:"code"`
	// State carries the actor's raw state blob, canonical cbor.
	State []byte `json:"state"`
}

// MessageMatch filters messages by sender and/or receiver; the zero address
// matches anything.
type MessageMatch struct {
	To   address.Address `json:"to"`
	From address.Address `json:"from"`
}

// MsgLookup reports where a message landed and with which receipt.
type MsgLookup struct {
	Message cid.Cid              `json:"message"`
	Receipt types.MessageReceipt `json:"receipt"`
	TipSet  types.TipSetKey      `json:"tipSet"`
	Height  abi.ChainEpoch       `json:"height"`
}
