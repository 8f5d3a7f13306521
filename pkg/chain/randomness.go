package chain

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/minio/blake2b-simd"
	"github.com/pkg/errors"

	"github.com/filecoin-project/venus-lite/pkg/types"
)

// RandomSeed is raw chain entropy before domain separation.
type RandomSeed []byte

// RandomnessSource provides randomness to actors and consumers.
type RandomnessSource interface {
	GetRandomnessFromTickets(ctx context.Context, tag crypto.DomainSeparationTag, epoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error)
	GetRandomnessFromBeacon(ctx context.Context, tag crypto.DomainSeparationTag, epoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error)
}

// MakeRandomSeed computes a random seed from raw ticket bytes.
// A randomness seed is the VRF digest of the minimum ticket of the tipset at
// or before the requested epoch.
func MakeRandomSeed(rawVRFProof types.VRFPi) (RandomSeed, error) {
	digest := rawVRFProof.Digest()
	return digest[:], nil
}

// ChainRandomnessSource draws deterministic randomness from a chain walked
// through the given head.
type ChainRandomnessSource struct { //nolint
	reader *Store
	head   types.TipSetKey
}

var _ RandomnessSource = (*ChainRandomnessSource)(nil)

// NewChainRandomnessSource returns a randomness source rooted at head.
func NewChainRandomnessSource(reader *Store, head types.TipSetKey) *ChainRandomnessSource {
	return &ChainRandomnessSource{reader: reader, head: head}
}

// GetRandomnessFromTickets computes randomness seeded by the min ticket of
// the tipset at the sample epoch.
func (c *ChainRandomnessSource) GetRandomnessFromTickets(ctx context.Context, tag crypto.DomainSeparationTag, epoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error) {
	ts, err := c.sampleTipSet(ctx, epoch)
	if err != nil {
		return nil, err
	}

	ticket := ts.MinTicket()
	if ticket == nil {
		return nil, errors.New("sampled tipset has no ticket")
	}

	seed, err := MakeRandomSeed(ticket.VRFProof)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sample chain for randomness")
	}
	return BlendEntropy(tag, seed, epoch, entropy)
}

// GetRandomnessFromBeacon computes randomness seeded by the latest beacon
// entry at or before the sample epoch.
func (c *ChainRandomnessSource) GetRandomnessFromBeacon(ctx context.Context, tag crypto.DomainSeparationTag, epoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error) {
	ts, err := c.sampleTipSet(ctx, epoch)
	if err != nil {
		return nil, err
	}

	be, err := c.reader.GetLatestBeaconEntry(ctx, ts)
	if err != nil {
		return nil, err
	}

	return BlendEntropy(tag, be.Data, epoch, entropy)
}

func (c *ChainRandomnessSource) sampleTipSet(ctx context.Context, epoch abi.ChainEpoch) (*types.TipSet, error) {
	start, err := c.reader.GetTipSet(ctx, c.head)
	if err != nil {
		return nil, err
	}
	if epoch > start.Height() {
		return nil, errors.Errorf("cannot draw randomness from the future, epoch %d > head %d", epoch, start.Height())
	}
	if epoch < 0 {
		return nil, errors.Errorf("cannot sample chain at negative height %d", epoch)
	}
	return c.reader.GetTipSetByHeight(ctx, start, epoch, false)
}

// BlendEntropy derives the 32-byte randomness value:
// blake2b_256(tag_i64_be || seed || epoch_i64_be || entropy).
func BlendEntropy(tag crypto.DomainSeparationTag, seed RandomSeed, epoch abi.ChainEpoch, entropy []byte) (abi.Randomness, error) {
	buffer := bytes.Buffer{}
	if err := binary.Write(&buffer, binary.BigEndian, int64(tag)); err != nil {
		return nil, errors.Wrap(err, "failed to write tag for randomness")
	}
	if _, err := buffer.Write(seed); err != nil {
		return nil, errors.Wrap(err, "failed to write seed for randomness")
	}
	if err := binary.Write(&buffer, binary.BigEndian, int64(epoch)); err != nil {
		return nil, errors.Wrap(err, "failed to write epoch for randomness")
	}
	if _, err := buffer.Write(entropy); err != nil {
		return nil, errors.Wrap(err, "failed to write entropy for randomness")
	}
	bufHash := blake2b.Sum256(buffer.Bytes())
	return bufHash[:], nil
}
