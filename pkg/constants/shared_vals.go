package constants

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// DefaultHashFunction is the multihash used for all chain and state CIDs.
const DefaultHashFunction = uint64(mh.BLAKE2B_MIN + 31)

// DefaultCidBuilder produces CIDv1 dag-cbor blake2b-256 content ids.
// Any deviation here forks the node off the network.
var DefaultCidBuilder = cid.V1Builder{Codec: cid.DagCBOR, MhType: DefaultHashFunction}

// constants for weight calculation
// The ratio of weight contributed by short-term vs long-term factors in a given round.
const (
	WRatioNum = int64(1)
	WRatioDen = uint64(2)
)

// ExpectedLeadersPerEpoch is the expected number of block producers in each epoch.
const ExpectedLeadersPerEpoch = int64(5)

// BlocksPerEpoch is an upper bound on blocks forming a single tipset.
const BlocksPerEpoch = uint64(10)

// Finality is the number of epochs after which a tipset is considered final.
const Finality = 900

// DefaultConfidence is the default number of epochs to wait on top of a
// message's inclusion tipset before reporting it.
const DefaultConfidence = uint64(5)

// DefaultMessageWaitLookback is how far back the waiter searches history for
// a message receipt before watching new tipsets.
const DefaultMessageWaitLookback = uint64(100)
