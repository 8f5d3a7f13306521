package state

import (
	"context"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/specs-actors/actors/builtin"
	"github.com/filecoin-project/specs-actors/actors/builtin/account"
	notinit "github.com/filecoin-project/specs-actors/actors/builtin/init"
	"github.com/filecoin-project/specs-actors/actors/builtin/power"
	"github.com/filecoin-project/specs-actors/actors/util/adt"
	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/state/tree"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// Viewer builds state views from state root CIDs.
type Viewer struct {
	ipldStore cbor.IpldStore
}

// NewViewer creates a new state viewer.
func NewViewer(store cbor.IpldStore) *Viewer {
	return &Viewer{store}
}

// StateView returns a new state view rooted at root.
func (c *Viewer) StateView(root cid.Cid) *View {
	return NewView(c.ipldStore, root)
}

// PowerStateView is the power-table read surface the chain selector needs.
type PowerStateView interface {
	PowerNetworkTotal(ctx context.Context) (*NetworkPower, error)
}

// AccountView resolves addresses to key (signing) form.
type AccountView interface {
	ResolveToKeyAddr(ctx context.Context, address addr.Address) (addr.Address, error)
}

// NetworkPower is the aggregate power statement read from the power actor.
type NetworkPower struct {
	RawBytePower         abi.StoragePower
	QualityAdjustedPower abi.StoragePower
	MinerCount           int64
	MinPowerMinerCount   int64
}

// View is a read-only interface to a snapshot of application-level actor
// state. A view is a cheap handle; repeated reads at the same root are
// consistent regardless of interleaved head updates.
type View struct {
	ipldStore cbor.IpldStore
	root      cid.Cid
}

var _ PowerStateView = (*View)(nil)
var _ AccountView = (*View)(nil)

// NewView creates a new state view.
func NewView(store cbor.IpldStore, root cid.Cid) *View {
	return &View{
		ipldStore: store,
		root:      root,
	}
}

// Root returns the state root the view reads through.
func (v *View) Root() cid.Cid {
	return v.root
}

// InitNetworkName returns the network name from the init actor state.
func (v *View) InitNetworkName(ctx context.Context) (string, error) {
	initState, err := v.loadInitActor(ctx)
	if err != nil {
		return "", err
	}
	return initState.NetworkName, nil
}

// InitResolveAddress returns the ID address if a public key address is given.
func (v *View) InitResolveAddress(ctx context.Context, a addr.Address) (addr.Address, error) {
	if a.Protocol() == addr.ID {
		return a, nil
	}

	initState, err := v.loadInitActor(ctx)
	if err != nil {
		return addr.Undef, err
	}

	rAddr, found, err := initState.ResolveAddress(v.adtStore(ctx), a)
	if err != nil {
		return addr.Undef, err
	}
	if !found {
		return addr.Undef, types.ErrActorNotFound
	}
	return rAddr, nil
}

// ResolveToKeyAddr returns the public key (signing) address of the given
// address. BLS and secp addresses are returned as-is; ID and actor forms
// resolve through the account actor at that address.
func (v *View) ResolveToKeyAddr(ctx context.Context, a addr.Address) (addr.Address, error) {
	if a.Protocol() == addr.BLS || a.Protocol() == addr.SECP256K1 {
		return a, nil
	}

	accountState, err := v.loadAccountActor(ctx, a)
	if err != nil {
		return addr.Undef, err
	}

	return accountState.Address, nil
}

// PowerNetworkTotal returns the total power of the network as read from the
// power actor at the view's root.
func (v *View) PowerNetworkTotal(ctx context.Context) (*NetworkPower, error) {
	st, err := v.loadPowerActor(ctx)
	if err != nil {
		return nil, err
	}

	return &NetworkPower{
		RawBytePower:         st.TotalRawBytePower,
		QualityAdjustedPower: st.TotalQualityAdjPower,
		MinerCount:           st.MinerCount,
		MinPowerMinerCount:   st.MinerAboveMinPowerCount,
	}, nil
}

// LoadActor fetches the actor record at the (resolved) address.
func (v *View) LoadActor(ctx context.Context, a addr.Address) (*types.Actor, error) {
	st, err := tree.LoadState(ctx, v.ipldStore, v.root)
	if err != nil {
		return nil, err
	}
	actr, found, err := st.GetActor(ctx, a)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrActorNotFound
	}
	return actr, nil
}

// LoadActorState fetches the actor at a and decodes its head into out.
func (v *View) LoadActorState(ctx context.Context, a addr.Address, out interface{}) (*types.Actor, error) {
	actr, err := v.LoadActor(ctx, a)
	if err != nil {
		return nil, err
	}
	if err := v.ipldStore.Get(ctx, actr.Head, out); err != nil {
		return nil, errors.Wrapf(err, "failed to load state for actor %s", a)
	}
	return actr, nil
}

func (v *View) loadInitActor(ctx context.Context) (*notinit.State, error) {
	var state notinit.State
	if _, err := v.LoadActorState(ctx, builtin.InitActorAddr, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (v *View) loadAccountActor(ctx context.Context, a addr.Address) (*account.State, error) {
	resolved, err := v.InitResolveAddress(ctx, a)
	if err != nil {
		return nil, err
	}
	var state account.State
	if _, err := v.LoadActorState(ctx, resolved, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (v *View) loadPowerActor(ctx context.Context) (*power.State, error) {
	var state power.State
	if _, err := v.LoadActorState(ctx, builtin.StoragePowerActorAddr, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (v *View) adtStore(ctx context.Context) adt.Store {
	return adt.WrapStore(ctx, v.ipldStore)
}
