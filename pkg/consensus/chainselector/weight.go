package chainselector

// This implements the weight function of the Expected Consensus protocol
// See: https://github.com/filecoin-project/specs/blob/master/expected-consensus.md

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	fbig "github.com/filecoin-project/go-state-types/big"
	cbor "github.com/ipfs/go-ipld-cbor"

	"github.com/filecoin-project/venus-lite/pkg/constants"
	"github.com/filecoin-project/venus-lite/pkg/state"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// Weight returns the EC weight of this TipSet as a filecoin big int.
// It is a pure function of the tipset value and the power state reachable
// from its parent state root; monotone across parent to child.
func Weight(ctx context.Context, cborStore cbor.IpldStore, ts *types.TipSet) (fbig.Int, error) {
	pStateID := ts.At(0).ParentStateRoot
	if !pStateID.Defined() {
		return fbig.Zero(), errors.New("undefined state passed to chain selector new weight")
	}
	view := state.NewView(cborStore, pStateID)

	return weight(ctx, view, ts)
}

// weight is kept separate for tests against a fake power view.
func weight(ctx context.Context, view state.PowerStateView, ts *types.TipSet) (fbig.Int, error) {
	total, err := view.PowerNetworkTotal(ctx)
	if err != nil {
		return fbig.Zero(), err
	}
	networkPower := total.QualityAdjustedPower

	log2P := int64(0)
	if networkPower.GreaterThan(fbig.NewInt(0)) {
		log2P = int64(networkPower.Int.BitLen() - 1)
	} else {
		// Not really expect to be here ...
		return fbig.Zero(), fmt.Errorf("all power in the net is gone. Your network might be disconnected, or the net is dead")
	}

	parentWeight := ts.ParentWeight()
	out := new(big.Int).Set(parentWeight.Int)
	out.Add(out, big.NewInt(log2P<<8))

	// (wFunction(totalPowerAtTipset(ts)) * len(ts.blocks) * wRatio_num * 2^8) / (e * wRatio_den)
	totalJ := int64(ts.Len())

	eWeight := big.NewInt(log2P * constants.WRatioNum)
	eWeight = eWeight.Lsh(eWeight, 8)
	eWeight = eWeight.Mul(eWeight, new(big.Int).SetInt64(totalJ))
	eWeight = eWeight.Div(eWeight, big.NewInt(int64(uint64(constants.ExpectedLeadersPerEpoch)*constants.WRatioDen)))

	out = out.Add(out, eWeight)

	return fbig.Int{Int: out}, nil
}
