package types

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
)

// ErrActorNotFound is returned when no actor exists at a looked-up address.
var ErrActorNotFound = errors.New("actor not found")

// Actor is the central abstraction of entities in the system.
//
// Both individual accounts and system-level contracts are represented as
// actors. An actor tracks a token balance, a replay-protection nonce, the
// code cid identifying its class and the head cid of its state blob.
type Actor struct {
	// Code is a CID identifying this actor's implementation.
	Code cid.Cid
	// Head is the CID of the root of the actor's state.
	Head cid.Cid
	// Nonce is the number expected on the next message from this actor.
	// Messages are processed in strict, contiguous order.
	Nonce uint64
	// Balance is the amount of attoFIL in the actor's account.
	Balance abi.TokenAmount
}

// NewActor constructs a new actor.
func NewActor(code cid.Cid, balance abi.TokenAmount, head cid.Cid) *Actor {
	return &Actor{
		Code:    code,
		Head:    head,
		Nonce:   0,
		Balance: balance,
	}
}

// Empty tests whether the actor's code is defined.
func (a *Actor) Empty() bool {
	return !a.Code.Defined()
}
