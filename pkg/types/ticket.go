package types

import (
	"bytes"
	"encoding/hex"

	"github.com/minio/blake2b-simd"
)

// VRFPi is the proof output of a verifiable random function.
type VRFPi []byte

// Digest returns the digest (hash) of a proof, for use generating challenges etc.
func (p VRFPi) Digest() [32]byte {
	return blake2b.Sum256(p)
}

// A Ticket is a marker of a tick of the blockchain's clock.  It is the source
// of randomness for proofs of storage and leader election.  It is generated
// by the miner of a block using a VRF.
type Ticket struct {
	// A proof output by running a VRF on the VRFProof of the parent ticket.
	VRFProof VRFPi
}

// String returns the string representation of the VRFProof of the ticket.
func (t Ticket) String() string {
	return hex.EncodeToString(t.VRFProof)
}

// SortKey returns the canonical byte ordering of the ticket.
func (t Ticket) SortKey() []byte {
	return t.VRFProof
}

// Compare orders tickets by the bytes of their VRF proofs.
func (t Ticket) Compare(other *Ticket) int {
	return bytes.Compare(t.VRFProof, other.VRFProof)
}

// ElectionProof proves that this block's miner won an election.
type ElectionProof struct {
	WinCount int64
	VRFProof VRFPi
}

// A BeaconEntry is a public random value from an external randomness beacon,
// attached to blocks at the round it was produced.
type BeaconEntry struct {
	Round uint64
	Data  []byte
}
