package types

import (
	"bytes"
	"testing"

	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkHeader(t *testing.T, height int64, parents TipSetKey, ticket []byte) *BlockHeader {
	t.Helper()
	blk := &BlockHeader{
		Miner:                 newIDAddress(t, 100),
		Parents:               parents,
		ParentWeight:          fbig.NewInt(height * 10),
		Height:                abiEpoch(height),
		ParentStateRoot:       testCid(t, "state"),
		ParentMessageReceipts: testCid(t, "receipts"),
		Messages:              testCid(t, "messages"),
		Timestamp:             uint64(height * 30),
	}
	if ticket != nil {
		blk.Ticket = &Ticket{VRFProof: ticket}
	}
	return blk
}

func TestNewTipSetRejectsEmpty(t *testing.T) {
	_, err := NewTipSet(nil)
	assertTipsetErrCode(t, err, ErrCodeNoBlocks)
}

func TestNewTipSetSortsByTicket(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	b1 := mkHeader(t, 1, parents, []byte{3})
	b2 := mkHeader(t, 1, parents, []byte{1})
	b3 := mkHeader(t, 1, parents, []byte{2})

	ts, err := NewTipSet([]*BlockHeader{b1, b2, b3})
	require.NoError(t, err)

	require.Equal(t, 3, ts.Len())
	assert.True(t, ts.At(0).Equals(b2))
	assert.True(t, ts.At(1).Equals(b3))
	assert.True(t, ts.At(2).Equals(b1))
	assert.True(t, ts.MinTicketBlock().Equals(b2))

	// Key follows the canonical block order.
	assert.Equal(t, NewTipSetKey(b2.Cid(), b3.Cid(), b1.Cid()), ts.Key())
}

func TestNewTipSetTicketCollision(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	b1 := mkHeader(t, 1, parents, []byte{7})
	b2 := mkHeader(t, 1, parents, []byte{7})
	b2.Timestamp++ // distinct cid, identical ticket

	_, err := NewTipSet([]*BlockHeader{b1, b2})
	assertTipsetErrCode(t, err, ErrCodeTicketsCollision)
}

func TestNewTipSetMismatches(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	base := mkHeader(t, 1, parents, []byte{1})

	wrongHeight := mkHeader(t, 2, parents, []byte{2})
	_, err := NewTipSet([]*BlockHeader{base, wrongHeight})
	assertTipsetErrCode(t, err, ErrCodeMismatchingHeights)

	wrongParents := mkHeader(t, 1, NewTipSetKey(testCid(t, "other")), []byte{2})
	_, err = NewTipSet([]*BlockHeader{base, wrongParents})
	assertTipsetErrCode(t, err, ErrCodeMismatchingParents)

	noTicket := mkHeader(t, 1, parents, nil)
	_, err = NewTipSet([]*BlockHeader{base, noTicket})
	assertTipsetErrCode(t, err, ErrCodeTicketHasNoValue)
}

func TestNewTipSetFromKeyRoundTrip(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	b1 := mkHeader(t, 1, parents, []byte{2})
	b2 := mkHeader(t, 1, parents, []byte{1})

	ts, err := NewTipSet([]*BlockHeader{b1, b2})
	require.NoError(t, err)

	// Reconstructing from the key and the same blocks yields the same tipset.
	ts2, err := NewTipSetFromKey(ts.Key(), []*BlockHeader{b2, b1})
	require.NoError(t, err)
	assert.True(t, ts.Equals(ts2))

	// A foreign key is a block order failure.
	_, err = NewTipSetFromKey(NewTipSetKey(b1.Cid()), []*BlockHeader{b2, b1})
	assertTipsetErrCode(t, err, ErrCodeBlockOrderFailure)
}

func TestTipSetAccessors(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	b1 := mkHeader(t, 5, parents, []byte{1})
	b2 := mkHeader(t, 5, parents, []byte{2})
	b2.Timestamp = 3

	ts, err := NewTipSet([]*BlockHeader{b1, b2})
	require.NoError(t, err)

	assert.Equal(t, abiEpoch(5), ts.Height())
	assert.Equal(t, parents, ts.Parents())
	assert.Equal(t, b1.ParentStateRoot, ts.ParentState())
	assert.Equal(t, b1.ParentMessageReceipts, ts.ParentMessageReceipts())
	assert.Equal(t, fbig.NewInt(50), ts.ParentWeight())
	assert.Equal(t, uint64(3), ts.MinTimestamp())
	assert.True(t, ts.Contains(b1.Cid()))
	assert.False(t, ts.Contains(testCid(t, "unrelated")))
}

func TestUndefTipSet(t *testing.T) {
	assert.False(t, UndefTipSet.Defined())
	assert.Equal(t, abiEpoch(0), UndefTipSet.Height())
	assert.Equal(t, fbig.Zero(), UndefTipSet.ParentWeight())
	assert.Equal(t, uint64(0), UndefTipSet.MinTimestamp())
	assert.Equal(t, EmptyTSK, UndefTipSet.Key())
}

func TestTipSetCBORRoundTrip(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	b1 := mkHeader(t, 1, parents, []byte{2})
	b2 := mkHeader(t, 1, parents, []byte{1})

	ts, err := NewTipSet([]*BlockHeader{b1, b2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ts.MarshalCBOR(&buf))
	encoded := buf.Bytes()

	var decoded TipSet
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(encoded)))
	assert.True(t, ts.Equals(&decoded))

	// Re-encoding is byte identical.
	var buf2 bytes.Buffer
	require.NoError(t, decoded.MarshalCBOR(&buf2))
	assert.Equal(t, encoded, buf2.Bytes())
}

func TestTipSetCBORRejectsWrongOrder(t *testing.T) {
	parents := NewTipSetKey(testCid(t, "parent"))
	b1 := mkHeader(t, 1, parents, []byte{2})
	b2 := mkHeader(t, 1, parents, []byte{1})

	ts, err := NewTipSet([]*BlockHeader{b1, b2})
	require.NoError(t, err)

	// Flip the declared cid order in the wire tuple.
	cids := ts.Cids()
	ets := expTipSet{
		Cids:   []cid.Cid{cids[1], cids[0]},
		Blocks: ts.Blocks(),
		Height: ts.Height(),
	}
	var buf bytes.Buffer
	require.NoError(t, ets.MarshalCBOR(&buf))

	var decoded TipSet
	err = decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes()))
	assertTipsetErrCode(t, err, ErrCodeBlockOrderFailure)
}

func assertTipsetErrCode(t *testing.T, err error, code TipsetErrorCode) {
	t.Helper()
	require.Error(t, err)
	te, ok := AsTipsetError(err)
	require.True(t, ok, "expected tipset error, got %v", err)
	assert.Equal(t, code, te.Code)
}
