package consensus

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// ErrStateRootMismatch is returned when the computed state root for a tipset
// does not match the root its children recorded.
var ErrStateRootMismatch = errors.New("computed state root doesn't match ParentStateRoot field in header")

// StateTransformer is the interpreter façade: a deterministic pure function
// of the tipset value and the CAS content reachable from it. Implementations
// must be side-effect free apart from CAS writes of the produced state.
type StateTransformer interface {
	RunStateTransition(ctx context.Context, ts *types.TipSet) (root cid.Cid, receipts cid.Cid, err error)
}

// CallApplier executes a single implicit message against an arbitrary state
// root, without mutating the chain. It backs the StateCall query.
type CallApplier interface {
	CallMessage(ctx context.Context, stateRoot cid.Cid, msg *types.UnsignedMessage) (*types.MessageReceipt, error)
}
