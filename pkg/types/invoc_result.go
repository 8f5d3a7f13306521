package types

import "github.com/ipfs/go-cid"

// InvocResult is the outcome of a (possibly implicit) message execution as
// reported to API consumers. VM failures surface as the receipt's exit code,
// and Error then describes the failure; non-VM errors are returned to the
// caller rather than recorded here.
type InvocResult struct {
	MsgCid cid.Cid          `json:"msgCid"`
	Msg    *UnsignedMessage `json:"msg"`
	MsgRct *MessageReceipt  `json:"msgRct"`
	Error  string           `json:"error"`
}
