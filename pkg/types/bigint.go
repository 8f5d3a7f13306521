package types

import (
	fbig "github.com/filecoin-project/go-state-types/big"
)

// BigInt is the chain's arbitrary-precision integer: weights, balances and
// power all use the canonical minimal big-endian byte encoding.
type BigInt = fbig.Int

var (
	NewInt   = fbig.NewInt
	BigAdd   = fbig.Add
	BigSub   = fbig.Sub
	BigMul   = fbig.Mul
	BigDiv   = fbig.Div
	BigCmp   = fbig.Cmp
	ZeroFIL  = fbig.Zero
	EmptyInt = fbig.Int{}
)
