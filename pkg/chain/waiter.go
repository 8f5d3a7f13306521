package chain

import (
	"context"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// ChainMessage is the result of a message wait: the receipt and where it
// landed.
type ChainMessage struct {
	TS      *types.TipSet
	Message types.ChainMsg
	Receipt *types.MessageReceipt
}

// Waiter waits for a message to appear on chain. Found results are retained
// in a map keyed by message cid so repeated waits resolve immediately.
type Waiter struct {
	chainReader     *Store
	messageProvider MessageProvider

	mu      sync.Mutex
	results map[cid.Cid]*ChainMessage
}

// NewWaiter returns a new Waiter.
func NewWaiter(chainStore *Store, messages MessageProvider) *Waiter {
	return &Waiter{
		chainReader:     chainStore,
		messageProvider: messages,
		results:         make(map[cid.Cid]*ChainMessage),
	}
}

// Wait blocks until the message with the given cid has a receipt on the
// canonical chain, the lookback search finds it in history, or the context
// is cancelled. Cancellation drops the pending wait without error
// side-effects.
func (w *Waiter) Wait(ctx context.Context, msgCid cid.Cid, lookback uint64) (*ChainMessage, error) {
	w.mu.Lock()
	if res, ok := w.results[msgCid]; ok {
		w.mu.Unlock()
		return res, nil
	}
	w.mu.Unlock()

	// Subscribe before searching history so a message landing between the
	// search and the subscription is not missed.
	headCh := w.chainReader.SubHeadChanges(ctx)

	found, err := w.findInHistory(ctx, msgCid, lookback)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return w.remember(msgCid, found), nil
	}

	for {
		select {
		case changes, ok := <-headCh:
			if !ok {
				// The subscription also closes when ctx ends.
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return nil, errors.New("head change subscription closed")
			}
			for _, change := range changes {
				if change.Type == types.HCRevert {
					continue
				}
				res, err := w.receiptForTipset(ctx, change.Val, msgCid)
				if err != nil {
					log.Errorf("waiter failed to check tipset %s: %s", change.Val.Key(), err)
					continue
				}
				if res != nil {
					return w.remember(msgCid, res), nil
				}
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Results returns the receipt recorded for a message cid, if any.
func (w *Waiter) Results(msgCid cid.Cid) (*ChainMessage, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	res, ok := w.results[msgCid]
	return res, ok
}

func (w *Waiter) remember(msgCid cid.Cid, res *ChainMessage) *ChainMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results[msgCid] = res
	return res
}

func (w *Waiter) findInHistory(ctx context.Context, msgCid cid.Cid, lookback uint64) (*ChainMessage, error) {
	head := w.chainReader.GetHead()
	if !head.Defined() {
		return nil, nil
	}

	var searched uint64
	provider := TipSetProviderFromBlocks(ctx, w.chainReader)
	for iterator := IterAncestors(ctx, provider, head); !iterator.Complete() && searched < lookback; searched++ {
		res, err := w.receiptForTipset(ctx, iterator.Value(), msgCid)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
		if err := iterator.Next(ctx); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// receiptForTipset checks whether the tipset contains the message, and if so
// pairs it with the receipt its execution produced.
func (w *Waiter) receiptForTipset(ctx context.Context, ts *types.TipSet, msgCid cid.Cid) (*ChainMessage, error) {
	if !ts.Defined() {
		return nil, nil
	}

	blockMessageInfos, err := w.messageProvider.LoadTipSetMessage(ctx, ts)
	if err != nil {
		return nil, err
	}

	index := 0
	for _, bmi := range blockMessageInfos {
		for _, msg := range append(bmi.BlsMessages, bmi.SecpkMessages...) {
			if msg.Cid().Equals(msgCid) {
				receiptsRoot, err := w.chainReader.GetTipSetReceiptsRoot(ctx, ts)
				if err != nil {
					return nil, errors.Wrapf(err, "no receipts for tipset %s yet", ts.Key())
				}
				receipts, err := w.messageProvider.LoadReceipts(ctx, receiptsRoot)
				if err != nil {
					return nil, err
				}
				if index >= len(receipts) {
					return nil, errors.Errorf("receipt index %d out of range (%d receipts)", index, len(receipts))
				}
				return &ChainMessage{
					TS:      ts,
					Message: msg,
					Receipt: &receipts[index],
				}, nil
			}
			index++
		}
	}
	return nil, nil
}
