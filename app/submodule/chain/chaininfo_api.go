package chain

import (
	"context"

	"github.com/filecoin-project/go-state-types/abi"
	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// ChainHead returns the current heaviest tipset.
func (chainAPI *ChainSubmoduleAPI) ChainHead(ctx context.Context) (*types.TipSet, error) {
	head := chainAPI.chain.ChainReader.GetHead()
	if !head.Defined() {
		return nil, chain.ErrNoHead
	}
	return head, nil
}

// ChainGetTipSet loads the tipset with the given key from the store.
func (chainAPI *ChainSubmoduleAPI) ChainGetTipSet(ctx context.Context, key types.TipSetKey) (*types.TipSet, error) {
	return chainAPI.chain.ChainReader.GetTipSet(ctx, key)
}

// ChainGetTipSetByHeight resolves the tipset at (or just below) height h on
// the chain identified by tsk. Requesting a height in tsk's future errors.
func (chainAPI *ChainSubmoduleAPI) ChainGetTipSetByHeight(ctx context.Context, h abi.ChainEpoch, tsk types.TipSetKey) (*types.TipSet, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to load tipset %v", tsk)
	}
	return chainAPI.chain.ChainReader.GetTipSetByHeight(ctx, ts, h, true)
}

// ChainGetBlock gets a block by cid.
func (chainAPI *ChainSubmoduleAPI) ChainGetBlock(ctx context.Context, id cid.Cid) (*types.BlockHeader, error) {
	return chainAPI.chain.ChainReader.GetBlock(ctx, id)
}

// ChainGetMessage reads a (possibly signed) message from the blob store and
// returns its unsigned form.
func (chainAPI *ChainSubmoduleAPI) ChainGetMessage(ctx context.Context, msgID cid.Cid) (*types.UnsignedMessage, error) {
	msg, err := chainAPI.chain.MessageStore.LoadMessage(ctx, msgID)
	if err != nil {
		return nil, err
	}
	return msg.VMMessage(), nil
}

// ChainGetBlockMessages returns the messages included in the given block.
func (chainAPI *ChainSubmoduleAPI) ChainGetBlockMessages(ctx context.Context, bid cid.Cid) (*BlockMessages, error) {
	b, err := chainAPI.chain.ChainReader.GetBlock(ctx, bid)
	if err != nil {
		return nil, err
	}

	smsgs, bmsgs, err := chainAPI.chain.MessageStore.LoadMetaMessages(ctx, b.Messages)
	if err != nil {
		return nil, err
	}

	cids := make([]cid.Cid, len(bmsgs)+len(smsgs))

	for i, m := range bmsgs {
		cids[i] = m.Cid()
	}

	for i, m := range smsgs {
		cids[i+len(bmsgs)] = m.Cid()
	}

	return &BlockMessages{
		BlsMessages:   bmsgs,
		SecpkMessages: smsgs,
		Cids:          cids,
	}, nil
}

// ChainGetParentMessages returns the messages executed by the parent tipset
// of the given block, paired with their cids. Their receipts live under the
// block's ParentMessageReceipts root.
func (chainAPI *ChainSubmoduleAPI) ChainGetParentMessages(ctx context.Context, bcid cid.Cid) ([]APIMessage, error) {
	b, err := chainAPI.chain.ChainReader.GetBlock(ctx, bcid)
	if err != nil {
		return nil, err
	}

	// genesis block has no parent messages
	if b.Height == 0 {
		return nil, nil
	}

	parent, err := chainAPI.chain.ChainReader.GetTipSet(ctx, b.Parents)
	if err != nil {
		return nil, err
	}

	msgs, err := chainAPI.chain.MessageStore.MessagesForTipset(ctx, parent)
	if err != nil {
		return nil, err
	}

	out := make([]APIMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, APIMessage{
			Cid:     m.Cid(),
			Message: m.VMMessage(),
		})
	}

	return out, nil
}

// ChainGetParentReceipts returns the receipts of the messages executed by
// the parent tipset of the given block, in message order.
func (chainAPI *ChainSubmoduleAPI) ChainGetParentReceipts(ctx context.Context, bcid cid.Cid) ([]*types.MessageReceipt, error) {
	b, err := chainAPI.chain.ChainReader.GetBlock(ctx, bcid)
	if err != nil {
		return nil, err
	}

	if b.Height == 0 {
		return nil, nil
	}

	receipts, err := chainAPI.chain.MessageStore.LoadReceipts(ctx, b.ParentMessageReceipts)
	if err != nil {
		return nil, err
	}

	out := make([]*types.MessageReceipt, len(receipts))
	for i := range receipts {
		out[i] = &receipts[i]
	}
	return out, nil
}

// ChainGetGenesis returns the genesis tipset.
func (chainAPI *ChainSubmoduleAPI) ChainGetGenesis(ctx context.Context) (*types.TipSet, error) {
	genb, err := chainAPI.chain.ChainReader.GetGenesisBlock(ctx)
	if err != nil {
		return nil, err
	}

	return types.NewTipSet([]*types.BlockHeader{genb})
}

// ChainTipSetWeight computes the weight of the tipset with the given key.
func (chainAPI *ChainSubmoduleAPI) ChainTipSetWeight(ctx context.Context, tsk types.TipSetKey) (fbig.Int, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return fbig.Zero(), err
	}
	return chainAPI.chain.ChainReader.Weight(ctx, ts)
}

// ChainGetRandomnessFromTickets samples ticket-chain randomness at the given
// epoch below the given tipset.
func (chainAPI *ChainSubmoduleAPI) ChainGetRandomnessFromTickets(ctx context.Context, tsk types.TipSetKey, personalization crypto.DomainSeparationTag, randEpoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error) {
	rnd := chain.NewChainRandomnessSource(chainAPI.chain.ChainReader, tsk)
	return rnd.GetRandomnessFromTickets(ctx, personalization, randEpoch, entropy)
}

// ChainGetRandomnessFromBeacon samples beacon randomness at the given epoch
// below the given tipset.
func (chainAPI *ChainSubmoduleAPI) ChainGetRandomnessFromBeacon(ctx context.Context, tsk types.TipSetKey, personalization crypto.DomainSeparationTag, randEpoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error) {
	rnd := chain.NewChainRandomnessSource(chainAPI.chain.ChainReader, tsk)
	return rnd.GetRandomnessFromBeacon(ctx, personalization, randEpoch, entropy)
}

// ChainNotify subscribes to head changes. The first batch is a single
// HCCurrent event carrying the head at subscription time; each following
// batch linearizes one head transition as HCRevert then HCApply events.
func (chainAPI *ChainSubmoduleAPI) ChainNotify(ctx context.Context) <-chan []*types.HeadChange {
	return chainAPI.chain.ChainReader.SubHeadChanges(ctx)
}
