package chain

import (
	"bytes"
	"context"

	"github.com/filecoin-project/specs-actors/actors/util/adt"
	blocks "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"
	blockstore "github.com/ipfs/go-ipfs-blockstore"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/pkg/errors"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// MessageProvider is an interface exposing the load methods of the
// MessageStore.
type MessageProvider interface {
	LoadTxMeta(ctx context.Context, c cid.Cid) (types.TxMeta, error)
	LoadMetaMessages(ctx context.Context, meta cid.Cid) ([]*types.SignedMessage, []*types.UnsignedMessage, error)
	ReadMsgMetaCids(ctx context.Context, meta cid.Cid) ([]cid.Cid, []cid.Cid, error)
	LoadUnsignedMessage(ctx context.Context, mid cid.Cid) (*types.UnsignedMessage, error)
	LoadSignedMessage(ctx context.Context, mid cid.Cid) (*types.SignedMessage, error)
	LoadMessage(ctx context.Context, mid cid.Cid) (types.ChainMsg, error)
	LoadReceipts(ctx context.Context, c cid.Cid) ([]types.MessageReceipt, error)
	LoadTipSetMessage(ctx context.Context, ts *types.TipSet) ([]types.BlockMessagesInfo, error)
}

// MessageWriter is an interface exposing the write methods of the
// MessageStore.
type MessageWriter interface {
	StoreMessages(ctx context.Context, secpMessages []*types.SignedMessage, blsMessages []*types.UnsignedMessage) (cid.Cid, error)
	StoreReceipts(ctx context.Context, receipts []types.MessageReceipt) (cid.Cid, error)
	StoreTxMeta(ctx context.Context, meta types.TxMeta) (cid.Cid, error)
}

// MessageStore stores and loads messages and receipts by their cid. Message
// collections ride addressable arrays (AMTs) whose roots the TxMeta pair and
// block headers reference.
type MessageStore struct {
	bs        blockstore.Blockstore
	cborStore cbor.IpldStore
}

var _ MessageProvider = (*MessageStore)(nil)
var _ MessageWriter = (*MessageStore)(nil)

// NewMessageStore creates and returns a new store.
func NewMessageStore(bs blockstore.Blockstore) *MessageStore {
	return &MessageStore{bs: bs, cborStore: cbor.NewCborStore(bs)}
}

// LoadTxMeta loads the secp and bls message roots referenced by a block
// header's Messages field.
func (ms *MessageStore) LoadTxMeta(ctx context.Context, c cid.Cid) (types.TxMeta, error) {
	metaBlock, err := ms.bs.Get(ctx, c)
	if err != nil {
		return types.TxMeta{}, errors.Wrapf(err, "failed to get tx meta %s", c)
	}

	var meta types.TxMeta
	if err := meta.UnmarshalCBOR(bytes.NewReader(metaBlock.RawData())); err != nil {
		return types.TxMeta{}, errors.Wrapf(err, "failed to decode tx meta %s", c)
	}
	return meta, nil
}

// StoreTxMeta writes the secp/bls message root pair to the store.
func (ms *MessageStore) StoreTxMeta(ctx context.Context, meta types.TxMeta) (cid.Cid, error) {
	return ms.storeBlock(ctx, &meta)
}

// ReadMsgMetaCids returns the bls and secp message cids carried by the AMTs
// under the given meta cid, in order.
func (ms *MessageStore) ReadMsgMetaCids(ctx context.Context, mmc cid.Cid) ([]cid.Cid, []cid.Cid, error) {
	meta, err := ms.LoadTxMeta(ctx, mmc)
	if err != nil {
		return nil, nil, err
	}

	blsCids, err := ms.loadAMTCids(ctx, meta.BLSRoot)
	if err != nil {
		return nil, nil, err
	}
	secpCids, err := ms.loadAMTCids(ctx, meta.SecpRoot)
	if err != nil {
		return nil, nil, err
	}
	return blsCids, secpCids, nil
}

// LoadMetaMessages loads the signed secp messages and unsigned bls messages
// referenced under the given meta cid.
func (ms *MessageStore) LoadMetaMessages(ctx context.Context, metaCid cid.Cid) ([]*types.SignedMessage, []*types.UnsignedMessage, error) {
	blsCids, secpCids, err := ms.ReadMsgMetaCids(ctx, metaCid)
	if err != nil {
		return nil, nil, err
	}

	blsMsgs, err := ms.LoadUnsignedMessagesFromCids(ctx, blsCids)
	if err != nil {
		return nil, nil, err
	}
	secpMsgs, err := ms.LoadSignedMessagesFromCids(ctx, secpCids)
	if err != nil {
		return nil, nil, err
	}

	return secpMsgs, blsMsgs, nil
}

// LoadMessage loads either kind of message, trying unsigned form first.
func (ms *MessageStore) LoadMessage(ctx context.Context, mid cid.Cid) (types.ChainMsg, error) {
	m, err := ms.LoadUnsignedMessage(ctx, mid)
	if err == nil {
		return m, nil
	}
	return ms.LoadSignedMessage(ctx, mid)
}

// LoadUnsignedMessage loads an unsigned message by cid.
func (ms *MessageStore) LoadUnsignedMessage(ctx context.Context, mid cid.Cid) (*types.UnsignedMessage, error) {
	messageBlock, err := ms.bs.Get(ctx, mid)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get bls message %s", mid)
	}
	message := &types.UnsignedMessage{}
	if err := message.UnmarshalCBOR(bytes.NewReader(messageBlock.RawData())); err != nil {
		return nil, errors.Wrapf(err, "could not decode bls message %s", mid)
	}
	return message, nil
}

// LoadSignedMessage loads a signed message by cid.
func (ms *MessageStore) LoadSignedMessage(ctx context.Context, mid cid.Cid) (*types.SignedMessage, error) {
	messageBlock, err := ms.bs.Get(ctx, mid)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get secp message %s", mid)
	}

	message := &types.SignedMessage{}
	if err := message.UnmarshalCBOR(bytes.NewReader(messageBlock.RawData())); err != nil {
		return nil, errors.Wrapf(err, "could not decode secp message %s", mid)
	}

	return message, nil
}

// LoadUnsignedMessagesFromCids loads unsigned messages in order.
func (ms *MessageStore) LoadUnsignedMessagesFromCids(ctx context.Context, blsCids []cid.Cid) ([]*types.UnsignedMessage, error) {
	blsMsgs := make([]*types.UnsignedMessage, len(blsCids))
	for i, c := range blsCids {
		message, err := ms.LoadUnsignedMessage(ctx, c)
		if err != nil {
			return nil, err
		}
		blsMsgs[i] = message
	}
	return blsMsgs, nil
}

// LoadSignedMessagesFromCids loads signed messages in order.
func (ms *MessageStore) LoadSignedMessagesFromCids(ctx context.Context, secpCids []cid.Cid) ([]*types.SignedMessage, error) {
	secpMsgs := make([]*types.SignedMessage, len(secpCids))
	for i, c := range secpCids {
		message, err := ms.LoadSignedMessage(ctx, c)
		if err != nil {
			return nil, err
		}
		secpMsgs[i] = message
	}
	return secpMsgs, nil
}

// StoreMessages puts the input messages to the store and returns the cid of
// the TxMeta referencing both AMT roots.
func (ms *MessageStore) StoreMessages(ctx context.Context, secpMessages []*types.SignedMessage, blsMessages []*types.UnsignedMessage) (cid.Cid, error) {
	var ret types.TxMeta
	var err error

	// Store bls messages.
	blsCids := make([]cid.Cid, len(blsMessages))
	for i, msg := range blsMessages {
		blsCids[i], err = ms.storeBlock(ctx, msg)
		if err != nil {
			return cid.Undef, err
		}
	}
	ret.BLSRoot, err = ms.storeAMTCids(ctx, blsCids)
	if err != nil {
		return cid.Undef, err
	}

	// Store secp messages.
	secpCids := make([]cid.Cid, len(secpMessages))
	for i, msg := range secpMessages {
		secpCids[i], err = ms.storeBlock(ctx, msg)
		if err != nil {
			return cid.Undef, err
		}
	}
	ret.SecpRoot, err = ms.storeAMTCids(ctx, secpCids)
	if err != nil {
		return cid.Undef, err
	}

	return ms.StoreTxMeta(ctx, ret)
}

// LoadReceipts loads the receipts carried by the AMT at c, in order.
func (ms *MessageStore) LoadReceipts(ctx context.Context, c cid.Cid) ([]types.MessageReceipt, error) {
	as := adt.WrapStore(ctx, ms.cborStore)
	arr, err := adt.AsArray(as, c)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load receipts amt %s", c)
	}

	var receipts []types.MessageReceipt
	var rcpt types.MessageReceipt
	if err := arr.ForEach(&rcpt, func(i int64) error {
		receipts = append(receipts, rcpt)
		return nil
	}); err != nil {
		return nil, err
	}

	return receipts, nil
}

// StoreReceipts puts the input receipts to an AMT and returns its root cid.
func (ms *MessageStore) StoreReceipts(ctx context.Context, receipts []types.MessageReceipt) (cid.Cid, error) {
	as := adt.WrapStore(ctx, ms.cborStore)
	arr := adt.MakeEmptyArray(as)

	for i := range receipts {
		if err := arr.AppendContinuous(&receipts[i]); err != nil {
			return cid.Undef, errors.Wrap(err, "appending receipt")
		}
	}

	return arr.Root()
}

// LoadTipSetMessage returns the messages of each block in the tipset, with
// message cids appearing in an earlier block of the same tipset elided.
func (ms *MessageStore) LoadTipSetMessage(ctx context.Context, ts *types.TipSet) ([]types.BlockMessagesInfo, error) {
	applied := make(map[cid.Cid]struct{})
	var out []types.BlockMessagesInfo

	for _, blk := range ts.Blocks() {
		secpMsgs, blsMsgs, err := ms.LoadMetaMessages(ctx, blk.Messages)
		if err != nil {
			return nil, errors.Wrapf(err, "syncing tip %s failed loading message list %s for block %s", ts.Key(), blk.Messages, blk.Cid())
		}

		var blsInfo, secpInfo []types.ChainMsg
		for _, msg := range blsMsgs {
			c := msg.Cid()
			if _, dup := applied[c]; dup {
				continue
			}
			applied[c] = struct{}{}
			blsInfo = append(blsInfo, msg)
		}
		for _, msg := range secpMsgs {
			c := msg.Cid()
			if _, dup := applied[c]; dup {
				continue
			}
			applied[c] = struct{}{}
			secpInfo = append(secpInfo, msg)
		}

		out = append(out, types.BlockMessagesInfo{
			BlsMessages:   blsInfo,
			SecpkMessages: secpInfo,
			Block:         blk,
		})
	}

	return out, nil
}

// MessagesForTipset flattens the deduplicated per-block message lists into a
// single ordered slice.
func (ms *MessageStore) MessagesForTipset(ctx context.Context, ts *types.TipSet) ([]types.ChainMsg, error) {
	bmsgs, err := ms.LoadTipSetMessage(ctx, ts)
	if err != nil {
		return nil, err
	}

	var out []types.ChainMsg
	for _, bm := range bmsgs {
		out = append(out, bm.BlsMessages...)
		out = append(out, bm.SecpkMessages...)
	}
	return out, nil
}

func (ms *MessageStore) storeBlock(ctx context.Context, data storable) (cid.Cid, error) {
	sblk, err := data.ToStorageBlock()
	if err != nil {
		return cid.Undef, err
	}

	if err := ms.bs.Put(ctx, sblk); err != nil {
		return cid.Undef, err
	}

	return sblk.Cid(), nil
}

type storable interface {
	ToStorageBlock() (blocks.Block, error)
}

func (ms *MessageStore) loadAMTCids(ctx context.Context, c cid.Cid) ([]cid.Cid, error) {
	as := adt.WrapStore(ctx, ms.cborStore)
	arr, err := adt.AsArray(as, c)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load amt %s", c)
	}

	var cids []cid.Cid
	var c2 cbg.CborCid
	if err := arr.ForEach(&c2, func(i int64) error {
		cids = append(cids, cid.Cid(c2))
		return nil
	}); err != nil {
		return nil, err
	}

	return cids, nil
}

func (ms *MessageStore) storeAMTCids(ctx context.Context, cids []cid.Cid) (cid.Cid, error) {
	as := adt.WrapStore(ctx, ms.cborStore)
	arr := adt.MakeEmptyArray(as)

	for i := range cids {
		c := cbg.CborCid(cids[i])
		if err := arr.AppendContinuous(&c); err != nil {
			return cid.Undef, errors.Wrap(err, "appending cid")
		}
	}

	return arr.Root()
}
