package consensus

import (
	"context"

	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
	"github.com/filecoin-project/venus-lite/pkg/vm"
)

var log = logging.Logger("consensus.expected")

// Expected implements the StateTransformer over the transfer VM: it applies
// a tipset's deduplicated messages, in canonical block order, to the
// tipset's parent state.
type Expected struct {
	cstore       cbor.IpldStore
	messageStore *chain.MessageStore
	processor    *vm.VM
}

var _ StateTransformer = (*Expected)(nil)
var _ CallApplier = (*Expected)(nil)

// NewExpected creates a state transformer over the given stores.
func NewExpected(cstore cbor.IpldStore, messageStore *chain.MessageStore) *Expected {
	return &Expected{
		cstore:       cstore,
		messageStore: messageStore,
		processor:    vm.NewVM(cstore),
	}
}

// RunStateTransition applies the tipset's messages to its parent state and
// returns the resulting state root and receipts root.
func (e *Expected) RunStateTransition(ctx context.Context, ts *types.TipSet) (cid.Cid, cid.Cid, error) {
	ctx, span := trace.StartSpan(ctx, "Expected.RunStateTransition")
	defer span.End()

	st, err := tree.LoadState(ctx, e.cstore, ts.ParentState())
	if err != nil {
		return cid.Undef, cid.Undef, errors.Wrapf(err, "loading parent state of %s", ts.Key())
	}

	blockMessageInfos, err := e.messageStore.LoadTipSetMessage(ctx, ts)
	if err != nil {
		return cid.Undef, cid.Undef, err
	}

	var receipts []types.MessageReceipt
	for _, bmi := range blockMessageInfos {
		for _, m := range append(bmi.BlsMessages, bmi.SecpkMessages...) {
			receipt, err := e.processor.ApplyMessage(ctx, st, m.VMMessage())
			if err != nil {
				return cid.Undef, cid.Undef, errors.Wrapf(err, "applying message %s", m.Cid())
			}
			receipts = append(receipts, *receipt)
		}
	}

	root, err := st.Flush(ctx)
	if err != nil {
		return cid.Undef, cid.Undef, errors.Wrap(err, "flushing state tree")
	}

	receiptsRoot, err := e.messageStore.StoreReceipts(ctx, receipts)
	if err != nil {
		return cid.Undef, cid.Undef, errors.Wrap(err, "storing receipts")
	}

	log.Debugf("state transition of %s: %d messages, root %s", ts.Key(), len(receipts), root)
	return root, receiptsRoot, nil
}

// CallMessage applies a single implicit, no-gas message against the given
// state root, discarding any state it produces.
func (e *Expected) CallMessage(ctx context.Context, stateRoot cid.Cid, msg *types.UnsignedMessage) (*types.MessageReceipt, error) {
	st, err := tree.LoadState(ctx, e.cstore, stateRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "loading state %s", stateRoot)
	}

	return e.processor.ApplyImplicitMessage(ctx, st, msg)
}
