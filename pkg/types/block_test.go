package types

import (
	"bytes"
	"testing"

	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockHeaderRoundTrip(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	blk := mkHeader(t, 3, parents, []byte{9})
	blk.BeaconEntries = []*BeaconEntry{{Round: 4, Data: []byte{0xde, 0xad}}}
	blk.ElectionProof = &ElectionProof{WinCount: 1, VRFProof: []byte{5}}

	data, err := blk.Serialize()
	require.NoError(t, err)

	decoded, err := DecodeBlock(data)
	require.NoError(t, err)

	assert.True(t, blk.Equals(decoded))
	assert.Equal(t, blk.Height, decoded.Height)
	assert.Equal(t, blk.Parents, decoded.Parents)
	assert.Equal(t, blk.BeaconEntries[0].Data, decoded.BeaconEntries[0].Data)

	// Re-encoding is byte identical.
	data2, err := decoded.Serialize()
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestBlockHeaderCidStability(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	blk := mkHeader(t, 3, parents, []byte{9})
	other := mkHeader(t, 3, parents, []byte{9})

	assert.Equal(t, blk.Cid(), other.Cid())

	// Cid() caches its first result, so the differing header is built
	// fresh rather than mutated after its CID was taken.
	changed := mkHeader(t, 3, parents, []byte{9})
	changed.Timestamp++
	assert.NotEqual(t, blk.Cid(), changed.Cid())
}

func TestBlockHeaderSignatureData(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	blk := mkHeader(t, 3, parents, []byte{9})

	unsigned, err := blk.SignatureData()
	require.NoError(t, err)

	blk.BlockSig = &crypto.Signature{Type: crypto.SigTypeSecp256k1, Data: []byte{1, 2, 3}}
	signedData, err := blk.SignatureData()
	require.NoError(t, err)

	// The signature never feeds its own input.
	assert.Equal(t, unsigned, signedData)

	serialized, err := blk.Serialize()
	require.NoError(t, err)
	assert.NotEqual(t, unsigned, serialized)
}

func TestMessageRoundTrip(t *testing.T) {
	msg := &UnsignedMessage{
		To:         newIDAddress(t, 101),
		From:       newIDAddress(t, 102),
		Nonce:      7,
		Value:      fbig.NewInt(42),
		GasFeeCap:  fbig.Zero(),
		GasPremium: fbig.Zero(),
		Method:     0,
	}

	data, err := msg.Serialize()
	require.NoError(t, err)

	var decoded UnsignedMessage
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(data)))
	assert.True(t, msg.Equals(&decoded))
	assert.Equal(t, msg.Cid(), decoded.Cid())
}

func TestReceiptRoundTrip(t *testing.T) {
	rcpt := &MessageReceipt{ExitCode: 0, ReturnValue: []byte{1}, GasUsed: 0}

	var buf bytes.Buffer
	require.NoError(t, rcpt.MarshalCBOR(&buf))

	var decoded MessageReceipt
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, *rcpt, decoded)
}
