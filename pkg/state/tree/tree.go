package tree

import (
	"context"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/specs-actors/actors/builtin"
	init_ "github.com/filecoin-project/specs-actors/actors/builtin/init"
	"github.com/filecoin-project/specs-actors/actors/util/adt"
	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

var log = logging.Logger("statetree")

// ActorKey is the address form actors are indexed by.
type ActorKey = address.Address

// Root is the cid of a flushed state tree.
type Root = cid.Cid

// Tree is the interface of the state tree: a mapping from addresses to
// actors, rooted in a single HAMT cid. A tree loaded from a root is
// immutable through that root; mutations produce a new root on Flush.
type Tree interface {
	GetActor(ctx context.Context, addr ActorKey) (*types.Actor, bool, error)
	SetActor(ctx context.Context, addr ActorKey, act *types.Actor) error
	DeleteActor(ctx context.Context, addr ActorKey) error
	LookupID(addr ActorKey) (address.Address, error)

	Flush(ctx context.Context) (cid.Cid, error)

	ForEach(f func(ActorKey, *types.Actor) error) error
}

// State stores actors state by their ID address.
type State struct {
	root  *adt.Map
	Store cbor.IpldStore
}

var _ Tree = (*State)(nil)

// NewState creates a state tree with an empty address map.
func NewState(cst cbor.IpldStore) *State {
	return &State{
		root:  adt.MakeEmptyMap(adt.WrapStore(context.TODO(), cst)),
		Store: cst,
	}
}

// LoadState loads the state tree rooted at c.
func LoadState(ctx context.Context, cst cbor.IpldStore, c cid.Cid) (*State, error) {
	nd, err := adt.AsMap(adt.WrapStore(ctx, cst), c)
	if err != nil {
		log.Errorf("loading hamt node %s failed: %s", c, err)
		return nil, err
	}

	return &State{
		root:  nd,
		Store: cst,
	}, nil
}

// LookupID gets the ID address of this actor's `addr` stored in the InitActor.
func (st *State) LookupID(addr ActorKey) (address.Address, error) {
	if addr.Protocol() == address.ID {
		return addr, nil
	}

	act, found, err := st.getActorRaw(builtin.InitActorAddr)
	if !found || err != nil {
		return address.Undef, errors.Wrap(err, "getting init actor")
	}

	var ias init_.State
	if err := st.Store.Get(context.TODO(), act.Head, &ias); err != nil {
		return address.Undef, errors.Wrap(err, "loading init actor state")
	}

	a, found, err := ias.ResolveAddress(adt.WrapStore(context.TODO(), st.Store), addr)
	if err == nil && !found {
		err = types.ErrActorNotFound
	}
	if err != nil {
		return address.Undef, errors.Wrapf(err, "resolve address %s", addr)
	}

	return a, nil
}

// GetActor returns the actor from any type of `addr` provided.
func (st *State) GetActor(ctx context.Context, addr ActorKey) (*types.Actor, bool, error) {
	if addr == address.Undef {
		return nil, false, fmt.Errorf("GetActor called on undefined address")
	}

	// Transform `addr` to its ID format.
	iaddr, err := st.LookupID(addr)
	if err != nil {
		if errors.Is(err, types.ErrActorNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "address resolution for %s", addr)
	}

	return st.getActorRaw(iaddr)
}

func (st *State) getActorRaw(iaddr address.Address) (*types.Actor, bool, error) {
	var act types.Actor
	if found, err := st.root.Get(abi.AddrKey(iaddr), &act); err != nil {
		return nil, false, errors.Wrap(err, "hamt find failed")
	} else if !found {
		return nil, false, nil
	}

	return &act, true, nil
}

// SetActor writes the actor record at the resolved ID address.
func (st *State) SetActor(ctx context.Context, addr ActorKey, act *types.Actor) error {
	iaddr, err := st.LookupID(addr)
	if err != nil {
		return errors.Wrap(err, "ID lookup failed")
	}

	return st.root.Put(abi.AddrKey(iaddr), act)
}

// DeleteActor removes the actor record at the resolved ID address.
func (st *State) DeleteActor(ctx context.Context, addr ActorKey) error {
	iaddr, err := st.LookupID(addr)
	if err != nil {
		return errors.Wrap(err, "ID lookup failed")
	}

	_, found, err := st.getActorRaw(iaddr)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrActorNotFound
	}

	return st.root.Delete(abi.AddrKey(iaddr))
}

// RegisterNewAddress assigns a fresh ID address to addr through the init
// actor address map.
func (st *State) RegisterNewAddress(addr ActorKey) (address.Address, error) {
	act, found, err := st.getActorRaw(builtin.InitActorAddr)
	if !found || err != nil {
		return address.Undef, errors.Wrap(err, "getting init actor")
	}

	var ias init_.State
	if err := st.Store.Get(context.TODO(), act.Head, &ias); err != nil {
		return address.Undef, err
	}

	oaddr, err := ias.MapAddressToNewID(adt.WrapStore(context.TODO(), st.Store), addr)
	if err != nil {
		return address.Undef, err
	}

	ncid, err := st.Store.Put(context.TODO(), &ias)
	if err != nil {
		return address.Undef, err
	}

	act.Head = ncid
	if err := st.root.Put(abi.AddrKey(builtin.InitActorAddr), act); err != nil {
		return address.Undef, err
	}

	return oaddr, nil
}

// Flush writes the tree and returns its new root cid.
func (st *State) Flush(ctx context.Context) (cid.Cid, error) {
	return st.root.Root()
}

// ForEach visits every (address, actor) pair in the tree.
func (st *State) ForEach(f func(ActorKey, *types.Actor) error) error {
	var act types.Actor
	return st.root.ForEach(&act, func(k string) error {
		addr, err := address.NewFromBytes([]byte(k))
		if err != nil {
			return errors.Wrap(err, "invalid address key in state tree")
		}

		actCopy := act
		return f(addr, &actCopy)
	})
}
