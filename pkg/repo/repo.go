package repo

import (
	"github.com/ipfs/go-datastore"
	blockstore "github.com/ipfs/go-ipfs-blockstore"

	"github.com/filecoin-project/venus-lite/pkg/config"
)

// Datastore is the datastore interface provided by the repo.
type Datastore interface {
	datastore.Batching
}

// Repo is a representation of all persistent data in a filecoin node.
type Repo interface {
	Config() *config.Config

	// Datastore is a general storage solution for chain metadata.
	Datastore() Datastore

	// Blockstore is the CAS blob storage all chain and state objects live in.
	Blockstore() blockstore.Blockstore

	// Close shuts down the repo.
	Close() error
}
