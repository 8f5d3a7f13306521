package repo

import (
	"sync"

	"github.com/ipfs/go-datastore"
	dss "github.com/ipfs/go-datastore/sync"
	blockstore "github.com/ipfs/go-ipfs-blockstore"

	"github.com/filecoin-project/venus-lite/pkg/config"
)

// MemRepo is an in-memory implementation of the repo interface.
type MemRepo struct {
	// lk guards the config
	lk      sync.RWMutex
	C       *config.Config
	D       blockstore.Blockstore
	ChainDs Datastore
}

var _ Repo = (*MemRepo)(nil)

// NewInMemoryRepo makes a new instance of MemRepo.
func NewInMemoryRepo() *MemRepo {
	return &MemRepo{
		C:       config.NewDefaultConfig(),
		D:       blockstore.NewBlockstore(dss.MutexWrap(datastore.NewMapDatastore())),
		ChainDs: dss.MutexWrap(datastore.NewMapDatastore()),
	}
}

// Config returns the configuration object.
func (mr *MemRepo) Config() *config.Config {
	mr.lk.RLock()
	defer mr.lk.RUnlock()

	return mr.C
}

// Datastore returns the chain metadata datastore.
func (mr *MemRepo) Datastore() Datastore {
	return mr.ChainDs
}

// Blockstore returns the blockstore backing the CAS.
func (mr *MemRepo) Blockstore() blockstore.Blockstore {
	return mr.D
}

// Close is a noop for in-memory repos.
func (mr *MemRepo) Close() error {
	return nil
}
