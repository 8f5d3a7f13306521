package types

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/venus-lite/pkg/constants"
)

func testCid(t *testing.T, data string) cid.Cid {
	t.Helper()
	c, err := constants.DefaultCidBuilder.Sum([]byte(data))
	require.NoError(t, err)
	return c
}

func newIDAddress(t *testing.T, id uint64) address.Address {
	t.Helper()
	addr, err := address.NewIDAddress(id)
	require.NoError(t, err)
	return addr
}

func abiEpoch(h int64) abi.ChainEpoch {
	return abi.ChainEpoch(h)
}
