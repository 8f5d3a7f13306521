package chain

import (
	"context"

	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/statemanger"
)

// ChainSubmodule enhances the node with chain and actor-state reading
// capability.
type ChainSubmodule struct { //nolint
	ChainReader  *chain.Store
	MessageStore *chain.MessageStore
	Stmgr        *statemanger.Stmgr
	Waiter       *chain.Waiter
}

// NewChainSubmodule creates a new chain submodule.
func NewChainSubmodule(chainReader *chain.Store, messageStore *chain.MessageStore, stmgr *statemanger.Stmgr) *ChainSubmodule {
	return &ChainSubmodule{
		ChainReader:  chainReader,
		MessageStore: messageStore,
		Stmgr:        stmgr,
		Waiter:       chain.NewWaiter(chainReader, messageStore),
	}
}

// API returns the query surface of the submodule.
func (chainSubmodule *ChainSubmodule) API() *ChainSubmoduleAPI {
	return &ChainSubmoduleAPI{chain: chainSubmodule}
}

// Stop releases the submodule's resources.
func (chainSubmodule *ChainSubmodule) Stop(ctx context.Context) {
	chainSubmodule.ChainReader.Stop()
}

// ChainSubmoduleAPI bundles the chain and state query methods the node
// serves.
type ChainSubmoduleAPI struct {
	chain *ChainSubmodule
}
