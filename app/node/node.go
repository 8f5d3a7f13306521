package node

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	chainapi "github.com/filecoin-project/venus-lite/app/submodule/chain"
	"github.com/filecoin-project/venus-lite/pkg/chain"
	"github.com/filecoin-project/venus-lite/pkg/consensus"
	"github.com/filecoin-project/venus-lite/pkg/consensus/chainselector"
	"github.com/filecoin-project/venus-lite/pkg/gen"
	"github.com/filecoin-project/venus-lite/pkg/repo"
	"github.com/filecoin-project/venus-lite/pkg/statemanger"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

var log = logging.Logger("node")

// Node assembles the chain core: repo, chain store, state manager and the
// query API served over JSON-RPC.
type Node struct {
	repo repo.Repo

	chainStore   *chain.Store
	messageStore *chain.MessageStore
	stmgr        *statemanger.Stmgr

	chainSubmodule *chainapi.ChainSubmodule
}

// New builds a node over the given repo, creating and persisting a genesis
// on first run.
func New(ctx context.Context, rep repo.Repo) (*Node, error) {
	bs := rep.Blockstore()
	ds := rep.Datastore()

	genCid, genBlk, err := loadOrMakeGenesis(ctx, rep)
	if err != nil {
		return nil, err
	}

	chainStore := chain.NewStore(ds, bs, genCid, chainselector.Weight)
	messageStore := chain.NewMessageStore(bs)
	transformer := consensus.NewExpected(chainStore.ReadOnlyStateStore(), messageStore)
	stmgr := statemanger.NewStateManager(chainStore, messageStore, transformer, transformer)

	if _, err := ds.Get(ctx, chain.HeadKey); err == nil {
		if err := chainStore.Load(ctx); err != nil {
			return nil, errors.Wrap(err, "loading chain store")
		}
	} else {
		genTS, err := types.NewTipSet([]*types.BlockHeader{genBlk})
		if err != nil {
			return nil, err
		}
		if err := chainStore.SetHead(ctx, genTS); err != nil {
			return nil, errors.Wrap(err, "setting genesis head")
		}
	}

	return &Node{
		repo:           rep,
		chainStore:     chainStore,
		messageStore:   messageStore,
		stmgr:          stmgr,
		chainSubmodule: chainapi.NewChainSubmodule(chainStore, messageStore, stmgr),
	}, nil
}

func loadOrMakeGenesis(ctx context.Context, rep repo.Repo) (cid.Cid, *types.BlockHeader, error) {
	ds := rep.Datastore()
	bs := rep.Blockstore()

	if raw, err := ds.Get(ctx, chain.GenesisKey); err == nil {
		genCid, err := cid.Cast(raw)
		if err != nil {
			return cid.Undef, nil, errors.Wrap(err, "corrupt genesis key")
		}
		blkData, err := bs.Get(ctx, genCid)
		if err != nil {
			return cid.Undef, nil, errors.Wrap(err, "loading genesis block")
		}
		genBlk, err := types.DecodeBlock(blkData.RawData())
		if err != nil {
			return cid.Undef, nil, err
		}
		return genCid, genBlk, nil
	} else if err != datastore.ErrNotFound {
		return cid.Undef, nil, err
	}

	cfg := gen.DefaultGenesisCfg()
	cfg.NetworkName = rep.Config().Chain.NetworkName

	genBlk, err := gen.MakeGenesis(ctx, bs, cfg)
	if err != nil {
		return cid.Undef, nil, errors.Wrap(err, "making genesis")
	}
	genCid := genBlk.Cid()
	log.Infof("created genesis %s", genCid)

	if err := ds.Put(ctx, chain.GenesisKey, genCid.Bytes()); err != nil {
		return cid.Undef, nil, err
	}
	return genCid, genBlk, nil
}

// Chain returns the chain submodule.
func (node *Node) Chain() *chainapi.ChainSubmodule {
	return node.chainSubmodule
}

// ChainStore returns the node's chain store.
func (node *Node) ChainStore() *chain.Store {
	return node.chainStore
}

// StateManager returns the node's state manager.
func (node *Node) StateManager() *statemanger.Stmgr {
	return node.stmgr
}

// Stop shuts the node down.
func (node *Node) Stop(ctx context.Context) {
	node.chainSubmodule.Stop(ctx)
	if err := node.repo.Close(); err != nil {
		log.Errorf("closing repo: %s", err)
	}
}
