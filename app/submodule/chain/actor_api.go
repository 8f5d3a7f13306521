package chain

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/constants"
	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// StateGetActor returns the actor record at addr as of the tipset with the
// given key. The address is normalized to ID form first.
func (chainAPI *ChainSubmoduleAPI) StateGetActor(ctx context.Context, addr address.Address, tsk types.TipSetKey) (*types.Actor, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, err
	}
	return chainAPI.chain.Stmgr.GetActorAt(ctx, addr, ts)
}

// StateReadState returns the raw state blob of the actor at addr.
func (chainAPI *ChainSubmoduleAPI) StateReadState(ctx context.Context, addr address.Address, tsk types.TipSetKey) (*ActorState, error) {
	actor, err := chainAPI.StateGetActor(ctx, addr, tsk)
	if err != nil {
		return nil, err
	}

	blk, err := chainAPI.chain.ChainReader.Blockstore().Get(ctx, actor.Head)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load state blob %s", actor.Head)
	}

	return &ActorState{
		Balance: actor.Balance,
		Code:    actor.Code,
		State:   blk.RawData(),
	}, nil
}

// StateAccountKey returns the public key (signing) address of the given
// address as of the tipset with the given key.
func (chainAPI *ChainSubmoduleAPI) StateAccountKey(ctx context.Context, addr address.Address, tsk types.TipSetKey) (address.Address, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return address.Undef, err
	}
	return chainAPI.chain.Stmgr.ResolveToKeyAddr(ctx, addr, ts)
}

// StateLookupID normalizes the given address to ID form as of the tipset
// with the given key.
func (chainAPI *ChainSubmoduleAPI) StateLookupID(ctx context.Context, addr address.Address, tsk types.TipSetKey) (address.Address, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return address.Undef, err
	}
	return chainAPI.chain.Stmgr.LookupID(ctx, addr, ts)
}

// StateListActors lists the addresses of every actor in the state of the
// tipset with the given key.
func (chainAPI *ChainSubmoduleAPI) StateListActors(ctx context.Context, tsk types.TipSetKey) ([]address.Address, error) {
	_, st, err := chainAPI.chain.Stmgr.ParentStateTsk(ctx, tsk)
	if err != nil {
		return nil, err
	}

	var out []address.Address
	err = st.ForEach(func(key tree.ActorKey, _ *types.Actor) error {
		out = append(out, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StateListMessages walks parents from the tipset with the given key down
// to toHeight and returns the cids of messages whose sender and receiver
// match the filter. Deduplication is per tipset; consumers that need global
// dedup across the walk must layer it themselves.
func (chainAPI *ChainSubmoduleAPI) StateListMessages(ctx context.Context, match *MessageMatch, tsk types.TipSetKey, toHeight abi.ChainEpoch) ([]cid.Cid, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, err
	}

	if match == nil || (match.To == address.Undef && match.From == address.Undef) {
		return nil, errors.New("must specify at least To or From in message filter")
	}

	matchFunc := func(msg *types.UnsignedMessage) bool {
		if match.To != address.Undef && match.To != msg.To {
			return false
		}
		if match.From != address.Undef && match.From != msg.From {
			return false
		}
		return true
	}

	var out []cid.Cid
	for ts.Height() >= toHeight {
		msgs, err := chainAPI.chain.MessageStore.MessagesForTipset(ctx, ts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed loading messages for tipset %s", ts.Key())
		}

		for _, msg := range msgs {
			if matchFunc(msg.VMMessage()) {
				out = append(out, msg.Cid())
			}
		}

		if ts.Height() == 0 {
			break
		}

		next, err := chainAPI.chain.ChainReader.GetTipSet(ctx, ts.Parents())
		if err != nil {
			return nil, errors.Wrapf(err, "loading next tipset %s", ts.Parents())
		}

		ts = next
	}

	return out, nil
}

// StateCall applies a single implicit message over the parent state of the
// tipset with the given key, without persisting any effects. VM failures
// are reported as exit codes in the result; non-VM errors propagate.
func (chainAPI *ChainSubmoduleAPI) StateCall(ctx context.Context, msg *types.UnsignedMessage, tsk types.TipSetKey) (*types.InvocResult, error) {
	ts, err := chainAPI.chain.ChainReader.GetTipSet(ctx, tsk)
	if err != nil {
		return nil, err
	}
	return chainAPI.chain.Stmgr.Call(ctx, msg, ts)
}

// StateWaitMsg blocks until the message with the given cid appears with a
// receipt on the canonical chain and reports where it landed.
func (chainAPI *ChainSubmoduleAPI) StateWaitMsg(ctx context.Context, mCid cid.Cid) (*MsgLookup, error) {
	chainMsg, err := chainAPI.chain.Waiter.Wait(ctx, mCid, constants.DefaultMessageWaitLookback)
	if err != nil {
		return nil, err
	}
	return &MsgLookup{
		Message: mCid,
		Receipt: *chainMsg.Receipt,
		TipSet:  chainMsg.TS.Key(),
		Height:  chainMsg.TS.Height(),
	}, nil
}
