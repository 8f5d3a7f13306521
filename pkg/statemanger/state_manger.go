package statemanger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/trace"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/consensus"
	appstate "github.com/filecoin-project/venus-lite/pkg/state"
	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

var log = logging.Logger("statemanager")

// stateComputeResult pairs the outputs of one interpreter run.
type stateComputeResult struct {
	stateRoot, receipt cid.Cid
}

// Stmgr caches interpreter results keyed by tipset identity, guaranteeing
// at most one concurrent computation per key: the first caller installs a
// working channel, followers wait on it, and a failed run removes the entry
// so retries are possible.
type Stmgr struct {
	cs *chain.Store
	ms *chain.MessageStore
	cp consensus.StateTransformer

	caller consensus.CallApplier

	// Compute StateRoot parallel safe
	stCache      map[types.TipSetKey]stateComputeResult
	chsWorkingOn map[types.TipSetKey]chan struct{}
	stLk         sync.Mutex
}

// NewStateManager builds a state manager over the chain store and
// interpreter.
func NewStateManager(cs *chain.Store, ms *chain.MessageStore, cp consensus.StateTransformer, caller consensus.CallApplier) *Stmgr {
	return &Stmgr{
		cs:           cs,
		ms:           ms,
		cp:           cp,
		caller:       caller,
		stCache:      make(map[types.TipSetKey]stateComputeResult),
		chsWorkingOn: make(map[types.TipSetKey]chan struct{}, 1),
	}
}

// RunStateTransition returns the state root and receipts root resulting
// from executing the given tipset, computing them through the interpreter
// at most once per tipset key.
func (s *Stmgr) RunStateTransition(ctx context.Context, ts *types.TipSet) (root cid.Cid, receipts cid.Cid, err error) {
	ctx, span := trace.StartSpan(ctx, "Stmgr.RunStateTransition")
	defer span.End()

	key := ts.Key()
	s.stLk.Lock()

	workingCh, exist := s.chsWorkingOn[key]

	if exist {
		s.stLk.Unlock()
		waitDur := time.Second * 10
		i := 0
	longTimeWait:
		select {
		case <-workingCh:
			s.stLk.Lock()
		case <-ctx.Done():
			return cid.Undef, cid.Undef, ctx.Err()
		case <-time.After(waitDur):
			i++
			log.Warnf("waiting state transition(%d, %s) for %s", ts.Height(), ts.Key().String(), (waitDur * time.Duration(i)).String())
			goto longTimeWait
		}
	}

	if result, ok := s.stCache[key]; ok {
		s.stLk.Unlock()
		return result.stateRoot, result.receipt, nil
	}
	if meta, _ := s.cs.GetTipsetMetadata(ctx, ts); meta != nil {
		s.stLk.Unlock()
		return meta.TipSetStateRoot, meta.TipSetReceipts, nil
	}

	workingCh = make(chan struct{})
	s.chsWorkingOn[key] = workingCh
	s.stLk.Unlock()

	defer func() {
		s.stLk.Lock()
		delete(s.chsWorkingOn, key)
		if err == nil {
			s.stCache[key] = stateComputeResult{stateRoot: root, receipt: receipts}
			err = s.cs.PutTipSetMetadata(ctx, &chain.TipSetMetadata{
				TipSetStateRoot: root, TipSet: ts, TipSetReceipts: receipts,
			})
		}
		s.stLk.Unlock()
		close(workingCh)
	}()

	if ts.Height() == 0 {
		// The genesis tipset's state is the state its header carries; there
		// is nothing to execute below it.
		return ts.Blocks()[0].ParentStateRoot, ts.Blocks()[0].ParentMessageReceipts, nil
	}

	if root, receipts, err = s.cp.RunStateTransition(ctx, ts); err != nil {
		return cid.Undef, cid.Undef, err
	}

	return root, receipts, nil
}

// TipsetState returns the aggregate state tree after executing ts.
func (s *Stmgr) TipsetState(ctx context.Context, ts *types.TipSet) (*tree.State, error) {
	root, _, err := s.RunStateTransition(ctx, ts)
	if err != nil {
		return nil, err
	}
	return tree.LoadState(ctx, s.cs.ReadOnlyStateStore(), root)
}

// TipsetStateTsk resolves the tipset by key then returns its state.
func (s *Stmgr) TipsetStateTsk(ctx context.Context, tsk types.TipSetKey) (*types.TipSet, *tree.State, error) {
	ts, err := s.cs.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, nil, fmt.Errorf("load tipset(%s) failed: %v", tsk.String(), err)
	}
	stat, err := s.TipsetState(ctx, ts)
	if err != nil {
		return nil, nil, fmt.Errorf("load tipset(%s, %d) state failed: %v", ts.String(), ts.Height(), err)
	}
	return ts, stat, nil
}

// ParentState returns the tipset's parent and the state all members agree
// on, verifying the recorded parent state root reproduces.
func (s *Stmgr) ParentState(ctx context.Context, ts *types.TipSet) (*types.TipSet, *tree.State, error) {
	if ts == nil {
		ts = s.cs.GetHead()
	}
	if ts.Height() == 0 {
		state, err := tree.LoadState(ctx, s.cs.ReadOnlyStateStore(), ts.At(0).ParentStateRoot)
		return ts, state, err
	}

	parent, err := s.cs.GetTipSet(ctx, ts.Parents())
	if err != nil {
		return nil, nil, fmt.Errorf("find tipset(%s) parent failed: %w", ts.Key().String(), err)
	}

	if stateRoot, _, err := s.RunStateTransition(ctx, parent); err != nil {
		return nil, nil, fmt.Errorf("runstateTransition failed: %w", err)
	} else if !stateRoot.Equals(ts.At(0).ParentStateRoot) {
		return nil, nil, fmt.Errorf("runstateTransition error, %w", consensus.ErrStateRootMismatch)
	}

	state, err := tree.LoadState(ctx, s.cs.ReadOnlyStateStore(), ts.At(0).ParentStateRoot)
	return parent, state, err
}

// ParentStateTsk resolves the tipset by key then returns its parent state.
func (s *Stmgr) ParentStateTsk(ctx context.Context, tsk types.TipSetKey) (*types.TipSet, *tree.State, error) {
	ts, err := s.cs.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, nil, fmt.Errorf("loading tipset %s: %w", tsk, err)
	}
	return s.ParentState(ctx, ts)
}

// ParentStateView returns a read-only view over the tipset's parent state.
func (s *Stmgr) ParentStateView(ctx context.Context, ts *types.TipSet) (*types.TipSet, *appstate.View, error) {
	if ts == nil {
		ts = s.cs.GetHead()
	}
	return ts, appstate.NewView(s.cs.ReadOnlyStateStore(), ts.At(0).ParentStateRoot), nil
}

// GetActorAt returns the actor at a specified tipset's parent state.
func (s *Stmgr) GetActorAt(ctx context.Context, addr address.Address, ts *types.TipSet) (*types.Actor, error) {
	if addr.Empty() {
		return nil, types.ErrActorNotFound
	}

	_, state, err := s.ParentState(ctx, ts)
	if err != nil {
		return nil, err
	}

	actor, found, err := state.GetActor(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrActorNotFound
	}
	return actor, nil
}

// GetActorAtTsk resolves the tipset by key then looks up the actor.
func (s *Stmgr) GetActorAtTsk(ctx context.Context, addr address.Address, tsk types.TipSetKey) (*types.Actor, error) {
	ts, err := s.cs.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, err
	}
	return s.GetActorAt(ctx, addr, ts)
}

// LookupID resolves an address to ID form at the given tipset.
func (s *Stmgr) LookupID(ctx context.Context, addr address.Address, ts *types.TipSet) (address.Address, error) {
	_, state, err := s.ParentState(ctx, ts)
	if err != nil {
		return address.Undef, err
	}
	return state.LookupID(addr)
}

// ResolveToKeyAddr returns the key (signing) form of the given address at
// the given tipset.
func (s *Stmgr) ResolveToKeyAddr(ctx context.Context, addr address.Address, ts *types.TipSet) (address.Address, error) {
	switch addr.Protocol() {
	case address.BLS, address.SECP256K1:
		return addr, nil
	case address.Actor:
		return address.Undef, fmt.Errorf("cannot resolve actor address to key address")
	default:
	}

	_, view, err := s.ParentStateView(ctx, ts)
	if err != nil {
		return address.Undef, err
	}
	return view.ResolveToKeyAddr(ctx, addr)
}

// Call builds an ephemeral execution environment over the tipset's parent
// state root and applies a single implicit (unsigned, no-gas) message. VM
// failures are reported through the receipt's exit code; non-VM errors
// propagate.
func (s *Stmgr) Call(ctx context.Context, msg *types.UnsignedMessage, ts *types.TipSet) (*types.InvocResult, error) {
	if ts == nil {
		ts = s.cs.GetHead()
	}
	if !ts.Defined() {
		return nil, chain.ErrNoHead
	}

	receipt, err := s.caller.CallMessage(ctx, ts.ParentState(), msg)
	if err != nil {
		return nil, err
	}

	res := &types.InvocResult{
		MsgCid: msg.Cid(),
		Msg:    msg,
		MsgRct: receipt,
	}
	if !receipt.ExitCode.IsSuccess() {
		res.Error = fmt.Sprintf("message failed with exit code %d", receipt.ExitCode)
	}
	return res, nil
}

// Close releases the state manager's resources.
func (s *Stmgr) Close(ctx context.Context) {}
