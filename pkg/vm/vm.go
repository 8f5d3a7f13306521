package vm

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/specs-actors/actors/builtin"
	"github.com/filecoin-project/specs-actors/actors/builtin/account"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

var log = logging.Logger("vm")

// MethodSend is the universal transfer method number.
const MethodSend = 0

// VM applies messages against a state tree. Only the value-transfer subset
// of actor semantics lives here; richer actor logic belongs to interpreter
// implementations behind the consensus.StateTransformer seam.
type VM struct {
	store cbor.IpldStore
}

// NewVM creates a message applier over the given typed store.
func NewVM(store cbor.IpldStore) *VM {
	return &VM{store: store}
}

// ApplyMessage applies a single on-chain message to the tree and returns its
// receipt. Application failures are receipts, not errors; an error return
// means the tree itself could not be read or written.
func (v *VM) ApplyMessage(ctx context.Context, st *tree.State, msg *types.UnsignedMessage) (*types.MessageReceipt, error) {
	return v.applyMessage(ctx, st, msg, false)
}

// ApplyImplicitMessage applies a message without nonce or signer checks and
// without charging gas. This is the execution environment behind StateCall.
func (v *VM) ApplyImplicitMessage(ctx context.Context, st *tree.State, msg *types.UnsignedMessage) (*types.MessageReceipt, error) {
	return v.applyMessage(ctx, st, msg, true)
}

func (v *VM) applyMessage(ctx context.Context, st *tree.State, msg *types.UnsignedMessage, implicit bool) (*types.MessageReceipt, error) {
	sender, found, err := st.GetActor(ctx, msg.From)
	if err != nil {
		return nil, errors.Wrap(err, "loading sender actor")
	}
	if !found {
		return failedReceipt(exitcode.SysErrSenderInvalid), nil
	}
	if !sender.Code.Equals(builtin.AccountActorCodeID) {
		return failedReceipt(exitcode.SysErrSenderInvalid), nil
	}

	if !implicit {
		if msg.Nonce != sender.Nonce {
			return failedReceipt(exitcode.SysErrSenderStateInvalid), nil
		}
	}

	if sender.Balance.LessThan(msg.Value) {
		return failedReceipt(exitcode.SysErrInsufficientFunds), nil
	}

	receiver, err := v.resolveOrCreateReceiver(ctx, st, msg.To)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return failedReceipt(exitcode.ErrNotFound), nil
	}

	if msg.Method != MethodSend {
		// Actor method dispatch is interpreter territory; the transfer VM
		// rejects anything but a bare send.
		return failedReceipt(exitcode.SysErrInvalidMethod), nil
	}

	fromID, err := st.LookupID(msg.From)
	if err != nil {
		return nil, err
	}
	toID, err := st.LookupID(msg.To)
	if err != nil {
		return nil, err
	}

	if fromID != toID {
		sender.Balance = big.Sub(sender.Balance, msg.Value)
		receiver.Balance = big.Add(receiver.Balance, msg.Value)
	}
	if !implicit {
		sender.Nonce++
	}

	if err := st.SetActor(ctx, fromID, sender); err != nil {
		return nil, err
	}
	if fromID != toID {
		if err := st.SetActor(ctx, toID, receiver); err != nil {
			return nil, err
		}
	}

	return &types.MessageReceipt{
		ExitCode:    exitcode.Ok,
		ReturnValue: nil,
		GasUsed:     0,
	}, nil
}

// resolveOrCreateReceiver loads the receiver actor, instantiating an account
// actor when a key-form address has never been seen on chain. A nil return
// with nil error means the receiver cannot exist.
func (v *VM) resolveOrCreateReceiver(ctx context.Context, st *tree.State, to address.Address) (*types.Actor, error) {
	receiver, found, err := st.GetActor(ctx, to)
	if err != nil {
		return nil, errors.Wrap(err, "loading receiver actor")
	}
	if found {
		return receiver, nil
	}

	if to.Protocol() != address.BLS && to.Protocol() != address.SECP256K1 {
		return nil, nil
	}

	log.Debugf("creating account actor for %s", to)
	idAddr, err := st.RegisterNewAddress(to)
	if err != nil {
		return nil, errors.Wrap(err, "registering new address")
	}

	head, err := v.store.Put(ctx, &account.State{Address: to})
	if err != nil {
		return nil, err
	}

	act := types.NewActor(builtin.AccountActorCodeID, big.Zero(), head)
	if err := st.SetActor(ctx, idAddr, act); err != nil {
		return nil, err
	}
	return act, nil
}

func failedReceipt(code exitcode.ExitCode) *types.MessageReceipt {
	return &types.MessageReceipt{
		ExitCode:    code,
		ReturnValue: nil,
		GasUsed:     0,
	}
}
