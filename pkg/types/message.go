package types

import (
	"bytes"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/crypto"
	blocks "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"

	"github.com/filecoin-project/venus-lite/pkg/constants"
)

// UnsignedMessage is an exchange of information between two actors modeled
// as a function call.
type UnsignedMessage struct {
	Version uint64 `json:"version"`

	To   address.Address `json:"to"`
	From address.Address `json:"from"`
	// When receiving a message from a user account the nonce in the message
	// must match the expected nonce in the "from" actor. This prevents replay
	// attacks.
	Nonce uint64 `json:"nonce"`

	Value abi.TokenAmount `json:"value"`

	GasLimit   int64           `json:"gasLimit"`
	GasFeeCap  abi.TokenAmount `json:"gasFeeCap"`
	GasPremium abi.TokenAmount `json:"gasPremium"`

	Method abi.MethodNum `json:"method"`
	Params []byte        `json:"params"`
}

// SignedMessage contains a message and its signature.
type SignedMessage struct {
	Message   UnsignedMessage  `json:"message"`
	Signature crypto.Signature `json:"signature"`
}

// ChainMsg is implemented by both unsigned and signed messages; it abstracts
// listing and storing either kind.
type ChainMsg interface {
	Cid() cid.Cid
	VMMessage() *UnsignedMessage
	ToStorageBlock() (blocks.Block, error)
}

var _ ChainMsg = (*UnsignedMessage)(nil)
var _ ChainMsg = (*SignedMessage)(nil)

// Cid returns the canonical CID for the message.
func (msg *UnsignedMessage) Cid() cid.Cid {
	blk, err := msg.ToStorageBlock()
	if err != nil {
		panic(fmt.Errorf("failed to marshal message: %w", err))
	}
	return blk.Cid()
}

// ToStorageBlock serializes the message into a raw block carrying its cid.
func (msg *UnsignedMessage) ToStorageBlock() (blocks.Block, error) {
	data, err := msg.Serialize()
	if err != nil {
		return nil, err
	}
	c, err := constants.DefaultCidBuilder.Sum(data)
	if err != nil {
		return nil, err
	}
	return blocks.NewBlockWithCid(data, c)
}

// VMMessage returns the message itself.
func (msg *UnsignedMessage) VMMessage() *UnsignedMessage {
	return msg
}

// Serialize returns the canonical cbor bytes of the message.
func (msg *UnsignedMessage) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := msg.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msg *UnsignedMessage) String() string {
	return fmt.Sprintf("UnsignedMessage cid=[%v]: %s->%s nonce=%d value=%s method=%d",
		msg.Cid(), msg.From, msg.To, msg.Nonce, msg.Value, msg.Method)
}

// Equals tests whether two messages are equal by cid.
func (msg *UnsignedMessage) Equals(other *UnsignedMessage) bool {
	return msg.Cid().Equals(other.Cid())
}

// Cid returns the canonical CID for the signed message.
func (smsg *SignedMessage) Cid() cid.Cid {
	blk, err := smsg.ToStorageBlock()
	if err != nil {
		panic(fmt.Errorf("failed to marshal signed message: %w", err))
	}
	return blk.Cid()
}

// ToStorageBlock serializes the signed message into a raw block carrying its
// cid. BLS-signed messages are stored as their bare message; the signature
// is recoverable from the aggregate.
func (smsg *SignedMessage) ToStorageBlock() (blocks.Block, error) {
	if smsg.Signature.Type == crypto.SigTypeBLS {
		return smsg.Message.ToStorageBlock()
	}

	data, err := smsg.Serialize()
	if err != nil {
		return nil, err
	}
	c, err := constants.DefaultCidBuilder.Sum(data)
	if err != nil {
		return nil, err
	}
	return blocks.NewBlockWithCid(data, c)
}

// VMMessage returns the wrapped unsigned message.
func (smsg *SignedMessage) VMMessage() *UnsignedMessage {
	return &smsg.Message
}

// Serialize returns the canonical cbor bytes of the signed message.
func (smsg *SignedMessage) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := smsg.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
