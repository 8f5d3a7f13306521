package types

import (
	"fmt"

	"github.com/filecoin-project/go-state-types/exitcode"
)

// MessageReceipt is the result of a message application, stored under the
// parent receipts root of the child tipset.
type MessageReceipt struct {
	ExitCode    exitcode.ExitCode `json:"exitCode"`
	ReturnValue []byte            `json:"return"`
	GasUsed     int64             `json:"gasUsed"`
}

func (r *MessageReceipt) String() string {
	return fmt.Sprintf("MessageReceipt: exit=%d gasUsed=%d returnLen=%d", r.ExitCode, r.GasUsed, len(r.ReturnValue))
}
