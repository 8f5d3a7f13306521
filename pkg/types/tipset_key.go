package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ipfs/go-cid"
	xerrors "github.com/pkg/errors"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/venus-lite/pkg/constants"
)

// EmptyTSK is the zero-valued tipset key.
var EmptyTSK = TipSetKey{}

// The length of a block header CID in bytes.
var blockHeaderCIDLen int

func init() {
	// hash a large string of zeros so we don't estimate based on inlined CIDs.
	var buf [256]byte
	c, err := constants.DefaultCidBuilder.Sum(buf[:])
	if err != nil {
		panic(err)
	}
	blockHeaderCIDLen = len(c.Bytes())
}

// A TipSetKey is an immutable collection of CIDs forming a unique key for a
// tipset. The CIDs are assumed to be distinct and in the canonical order of
// their blocks (ascending by ticket). Two keys with the same CIDs in a
// different order are not considered equal.
// TipSetKey is a lightweight value type, and may be compared for equality
// with ==.
type TipSetKey struct {
	// The internal representation is a concatenation of the bytes of the
	// CIDs, which are self-describing, wrapped as a string.
	// These gymnastics make the TipSetKey usable as a map key.
	// The empty key has value "".
	value string
}

// NewTipSetKey builds a new key from a slice of CIDs.
// The CIDs are assumed to be ordered correctly.
func NewTipSetKey(cids ...cid.Cid) TipSetKey {
	encoded := encodeKey(cids)
	return TipSetKey{string(encoded)}
}

// TipSetKeyFromBytes wraps an encoded key, validating correct decoding.
func TipSetKeyFromBytes(encoded []byte) (TipSetKey, error) {
	if _, err := decodeKey(encoded); err != nil {
		return EmptyTSK, err
	}
	return TipSetKey{string(encoded)}, nil
}

// Cids returns a slice of the CIDs comprising this key.
func (tipsetKey TipSetKey) Cids() []cid.Cid {
	cids, err := decodeKey([]byte(tipsetKey.value))
	if err != nil {
		panic("invalid tipset key: " + err.Error())
	}
	return cids
}

// String returns a human-readable representation of the key.
func (tipsetKey TipSetKey) String() string {
	b := strings.Builder{}
	b.WriteString("{")
	for _, c := range tipsetKey.Cids() {
		b.WriteString(fmt.Sprintf(" %s", c.String()))
	}
	b.WriteString(" }")
	return b.String()
}

// Bytes returns a binary representation of the key.
func (tipsetKey TipSetKey) Bytes() []byte {
	return []byte(tipsetKey.value)
}

// IsEmpty checks whether the key is the empty key.
func (tipsetKey TipSetKey) IsEmpty() bool {
	return len(tipsetKey.value) == 0
}

// Equals checks whether the key contains exactly the same CIDs, in the same
// order, as another.
func (tipsetKey TipSetKey) Equals(other TipSetKey) bool {
	return tipsetKey.value == other.value
}

// Has checks whether the key contains `id`.
func (tipsetKey TipSetKey) Has(id cid.Cid) bool {
	for _, c := range tipsetKey.Cids() {
		if c == id {
			return true
		}
	}
	return false
}

// ContainsAll checks if another key is a subset of this one.
// We can assume that the relative order of members of one key is maintained
// in the other since all ids are sorted by corresponding block ticket value.
func (tipsetKey TipSetKey) ContainsAll(other TipSetKey) bool {
	// Since the ids have the same relative sorting we can perform one pass
	// over this set, advancing the other index whenever the values match.
	cids := tipsetKey.Cids()
	otherCids := other.Cids()
	otherIdx := 0
	for i := 0; i < len(cids) && otherIdx < len(otherCids); i++ {
		if cids[i].Equals(otherCids[otherIdx]) {
			otherIdx++
		}
	}
	// otherIdx is advanced the full length only if every element was found.
	return otherIdx == len(otherCids)
}

// Len returns the number of CIDs in the key.
func (tipsetKey TipSetKey) Len() int {
	return len(tipsetKey.Cids())
}

// MarshalJSON serializes the key as an array of CIDs.
func (tipsetKey TipSetKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(tipsetKey.Cids())
}

// UnmarshalJSON parses JSON into the key.
func (tipsetKey *TipSetKey) UnmarshalJSON(b []byte) error {
	var cids []cid.Cid
	if err := json.Unmarshal(b, &cids); err != nil {
		return err
	}
	tipsetKey.value = string(encodeKey(cids))
	return nil
}

// MarshalCBOR serializes the key as a cbor array of CIDs.
func (tipsetKey TipSetKey) MarshalCBOR(w io.Writer) error {
	cids := tipsetKey.Cids()
	if len(cids) > cbg.MaxLength {
		return xerrors.Errorf("slice value in tipset key was too long")
	}
	scratch := make([]byte, 9)

	if err := cbg.WriteMajorTypeHeaderBuf(scratch, w, cbg.MajArray, uint64(len(cids))); err != nil {
		return err
	}
	for _, v := range cids {
		if err := cbg.WriteCidBuf(scratch, w, v); err != nil {
			return xerrors.Errorf("failed writing cid in tipset key: %v", err)
		}
	}
	return nil
}

// UnmarshalCBOR parses a cbor array of CIDs into the key.
func (tipsetKey *TipSetKey) UnmarshalCBOR(r io.Reader) error {
	br := cbg.GetPeeker(r)
	scratch := make([]byte, 8)
	maj, extra, err := cbg.CborReadHeaderBuf(br, scratch)
	if err != nil {
		return err
	}

	if extra > cbg.MaxLength {
		return fmt.Errorf("tipset key: array too large (%d)", extra)
	}

	if maj != cbg.MajArray {
		return fmt.Errorf("expected cbor array")
	}

	tipsetKey.value = ""
	if extra > 0 {
		cids := make([]cid.Cid, extra)
		for i := 0; i < int(extra); i++ {
			c, err := cbg.ReadCid(br)
			if err != nil {
				return xerrors.Errorf("reading cid in tipset key failed: %v", err)
			}
			cids[i] = c
		}
		tipsetKey.value = string(encodeKey(cids))
	}
	return nil
}

func encodeKey(cids []cid.Cid) []byte {
	buffer := new(bytes.Buffer)
	for _, c := range cids {
		// bytes.Buffer.Write() err is documented to be always nil.
		_, _ = buffer.Write(c.Bytes())
	}
	return buffer.Bytes()
}

func decodeKey(encoded []byte) ([]cid.Cid, error) {
	// To avoid reallocation of the underlying array, estimate the number of
	// CIDs to be extracted by dividing the encoded length by the expected
	// CID length.
	estimatedCount := len(encoded) / blockHeaderCIDLen
	cids := make([]cid.Cid, 0, estimatedCount)
	nextIdx := 0
	for nextIdx < len(encoded) {
		nr, c, err := cid.CidFromBytes(encoded[nextIdx:])
		if err != nil {
			return nil, err
		}
		cids = append(cids, c)
		nextIdx += nr
	}
	return cids, nil
}
