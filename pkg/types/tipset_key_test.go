package types

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipSetKeyPreservesOrder(t *testing.T) {
	c1 := testCid(t, "1")
	c2 := testCid(t, "2")
	c3 := testCid(t, "3")

	key := NewTipSetKey(c1, c2, c3)
	assert.Equal(t, []cid.Cid{c1, c2, c3}, key.Cids())

	reordered := NewTipSetKey(c2, c1, c3)
	assert.False(t, key.Equals(reordered))
	assert.True(t, key.Equals(NewTipSetKey(c1, c2, c3)))
}

func TestTipSetKeyEmpty(t *testing.T) {
	assert.True(t, EmptyTSK.IsEmpty())
	assert.Equal(t, 0, EmptyTSK.Len())
	assert.False(t, NewTipSetKey(testCid(t, "1")).IsEmpty())
}

func TestTipSetKeyBytesRoundTrip(t *testing.T) {
	key := NewTipSetKey(testCid(t, "1"), testCid(t, "2"))
	recovered, err := TipSetKeyFromBytes(key.Bytes())
	require.NoError(t, err)
	assert.True(t, key.Equals(recovered))

	_, err = TipSetKeyFromBytes([]byte("not a cid"))
	assert.Error(t, err)
}

func TestTipSetKeyContainsAll(t *testing.T) {
	c1 := testCid(t, "1")
	c2 := testCid(t, "2")
	c3 := testCid(t, "3")

	key := NewTipSetKey(c1, c2, c3)
	assert.True(t, key.ContainsAll(NewTipSetKey(c1, c3)))
	assert.True(t, key.ContainsAll(EmptyTSK))
	assert.False(t, key.ContainsAll(NewTipSetKey(testCid(t, "4"))))
	assert.True(t, key.Has(c2))
	assert.False(t, key.Has(testCid(t, "4")))
}

func TestTipSetKeyCBORRoundTrip(t *testing.T) {
	key := NewTipSetKey(testCid(t, "1"), testCid(t, "2"))

	var buf bytes.Buffer
	require.NoError(t, key.MarshalCBOR(&buf))

	var decoded TipSetKey
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	assert.True(t, key.Equals(decoded))

	var empty bytes.Buffer
	require.NoError(t, EmptyTSK.MarshalCBOR(&empty))
	var decodedEmpty TipSetKey
	require.NoError(t, decodedEmpty.UnmarshalCBOR(bytes.NewReader(empty.Bytes())))
	assert.True(t, decodedEmpty.IsEmpty())
}

func TestTipSetKeyJSONRoundTrip(t *testing.T) {
	key := NewTipSetKey(testCid(t, "1"), testCid(t, "2"))

	raw, err := json.Marshal(key)
	require.NoError(t, err)

	var decoded TipSetKey
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, key.Equals(decoded))
}
