package types

import "fmt"

// TipsetErrorCode is the numeric category a tipset construction failure is
// reported under on the wire.
type TipsetErrorCode int

const (
	ErrCodeNoBlocks           TipsetErrorCode = 1
	ErrCodeMismatchingHeights TipsetErrorCode = 2
	ErrCodeMismatchingParents TipsetErrorCode = 3
	ErrCodeTicketHasNoValue   TipsetErrorCode = 4
	ErrCodeTicketsCollision   TipsetErrorCode = 5
	ErrCodeBlockOrderFailure  TipsetErrorCode = 6
)

// TipsetError is a recoverable tipset construction or decoding failure.
type TipsetError struct {
	Code TipsetErrorCode
	msg  string
}

func (e *TipsetError) Error() string {
	return e.msg
}

var (
	ErrNoBlocks           = &TipsetError{ErrCodeNoBlocks, "no blocks to create tipset"}
	ErrMismatchingHeights = &TipsetError{ErrCodeMismatchingHeights, "cannot create tipset, mismatching blocks heights"}
	ErrMismatchingParents = &TipsetError{ErrCodeMismatchingParents, "cannot create tipset, mismatching block parents"}
	ErrTicketHasNoValue   = &TipsetError{ErrCodeTicketHasNoValue, "an optional ticket is not initialized"}
	ErrTicketsCollision   = &TipsetError{ErrCodeTicketsCollision, "duplicate tickets in tipset"}
	ErrBlockOrderFailure  = &TipsetError{ErrCodeBlockOrderFailure, "wrong order of blocks in tipset"}
)

// AsTipsetError unwraps a tipset error category from err, if it carries one.
func AsTipsetError(err error) (*TipsetError, bool) {
	te, ok := err.(*TipsetError)
	return te, ok
}

var _ = fmt.Stringer(TipsetErrorCode(0))

func (c TipsetErrorCode) String() string {
	switch c {
	case ErrCodeNoBlocks:
		return "NO_BLOCKS"
	case ErrCodeMismatchingHeights:
		return "MISMATCHING_HEIGHTS"
	case ErrCodeMismatchingParents:
		return "MISMATCHING_PARENTS"
	case ErrCodeTicketHasNoValue:
		return "TICKET_HAS_NO_VALUE"
	case ErrCodeTicketsCollision:
		return "TICKETS_COLLISION"
	case ErrCodeBlockOrderFailure:
		return "BLOCK_ORDER_FAILURE"
	}
	return fmt.Sprintf("TIPSET_ERROR_%d", int(c))
}
