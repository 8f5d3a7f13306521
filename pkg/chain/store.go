package chain

import (
	"bytes"
	"context"
	"runtime/debug"
	"sync"

	fbig "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/pubsub"
	lru "github.com/hashicorp/golang-lru"
	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	blockstore "github.com/ipfs/go-ipfs-blockstore"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filecoin-project/venus-lite/pkg/repo"
	"github.com/filecoin-project/venus-lite/pkg/types"
)

// GenesisKey is the key at which the genesis Cid is written in the datastore.
var GenesisKey = datastore.NewKey("/consensus/genesisCid")

var log = logging.Logger("chain.store")

// HeadKey is the key at which the head tipset cid's are written in the datastore.
var HeadKey = datastore.NewKey("/chain/heaviestTipSet")

// ErrNotifeeDone is returned by a reorg notifee that wants to be removed.
var ErrNotifeeDone = errors.New("notifee is done and should be removed")

// ErrNoHead is returned by operations that need a head before one is set.
var ErrNoHead = errors.New("chain store has no head")

// ReorgNotifee represents a callback that gets called upon reorgs.
type ReorgNotifee func(rev, app []*types.TipSet) error

// WeightFunc maps a tipset to its monotone chain weight.
type WeightFunc func(ctx context.Context, cborStore cbor.IpldStore, ts *types.TipSet) (fbig.Int, error)

// DefaultTipsetLruCacheSize bounds the reconstructed-tipset cache.
var DefaultTipsetLruCacheSize = 10000

type reorg struct {
	old []*types.TipSet
	new []*types.TipSet
}

// TSState is the persisted form of a tipset's computed state and receipts
// roots. Exported so the cbor gen tool can reach it.
type TSState struct {
	StateRoot cid.Cid
	Receipts  cid.Cid
}

// Store tracks the canonical chain: known block headers, the current
// heaviest tipset, the tipset-key to state-root index, and the head-change
// publishers. It is the single writer of the head pointer.
type Store struct {
	// stateAndBlockSource is a wrapper around ipld storage. It is used for
	// reading filecoin block and state objects kept by the node.
	stateAndBlockSource cbor.IpldStore

	bsstore blockstore.Blockstore

	// ds is the datastore for the chain's private metadata which consists
	// of the tipset key to state root cid mapping, and the heaviest tipset
	// key.
	ds repo.Datastore

	// genesis is the CID of the genesis block.
	genesis cid.Cid
	// head is the tipset at the head of the best known chain. A nil head
	// means no head has been set yet; this is distinct from a genesis head.
	head *types.TipSet
	// Protects head.
	mu sync.RWMutex

	// headEvents is a pubsub channel that publishes an event every time the
	// head changes. Events are delivered to subscribers in the order
	// discovered.
	headEvents *pubsub.PubSub

	// Caches each tipset's computed state root and receipts root.
	tipIndex *TipStateCache

	chainIndex *ChainIndex

	// siblings indexes known header cids by (parents, height) so arriving
	// blocks can expand existing tipsets.
	siblingsMu sync.Mutex
	siblings   map[string][]cid.Cid

	weight WeightFunc

	reorgCh        chan reorg
	reorgNotifeeCh chan ReorgNotifee

	// headChangeBufferSize bounds each SubHeadChanges subscriber channel.
	headChangeBufferSize int

	tsCache *lru.ARCCache
}

// NewStore constructs a new default store.
func NewStore(chainDs repo.Datastore,
	bsstore blockstore.Blockstore,
	genesisCid cid.Cid,
	weight WeightFunc,
) *Store {
	tsCache, _ := lru.NewARC(DefaultTipsetLruCacheSize)
	store := &Store{
		stateAndBlockSource: cbor.NewCborStore(bsstore),
		ds:                  chainDs,
		bsstore:             bsstore,
		headEvents:          pubsub.New(64),

		genesis:              genesisCid,
		siblings:             make(map[string][]cid.Cid),
		weight:               weight,
		reorgNotifeeCh:       make(chan ReorgNotifee),
		headChangeBufferSize: 16,
		tsCache:              tsCache,
	}
	store.tipIndex = NewTipStateCache(store)
	store.chainIndex = NewChainIndex(store.GetTipSet)

	store.reorgCh = store.reorgWorker(context.TODO())
	return store
}

// Load rebuilds the Store's caches by traversing backwards from the most
// recent head as stored in its datastore. Because Load uses a content
// addressed datastore it guarantees that parent blocks are correctly
// resolved from the datastore. Load DOES NOT validate state transitions; it
// assumes tipsets were only indexed after checking for valid transitions.
func (store *Store) Load(ctx context.Context) (err error) {
	ctx, span := trace.StartSpan(ctx, "Store.Load")
	defer span.End()

	var headTS *types.TipSet
	if headTS, err = store.loadHead(ctx); err != nil {
		return err
	}

	if headTS.Height() == 0 {
		return store.SetHead(ctx, headTS)
	}

	latestHeight := headTS.At(0).Height
	loopBack := latestHeight - abi.ChainEpoch(DefaultChainLoadback)
	log.Infof("start loading chain at tipset: %s, height: %d", headTS.Key(), headTS.Height())

	// Metadata of the head may not exist yet; its parent's surely does.
	headParent, err := store.GetTipSet(ctx, headTS.Parents())
	if err != nil {
		return err
	}

	// Provide tipsets directly from the block store, not from the tipset
	// index which is being rebuilt by this traversal.
	tipsetProvider := TipSetProviderFromBlocks(ctx, store)
	for iterator := IterAncestors(ctx, tipsetProvider, headParent); !iterator.Complete(); err = iterator.Next(ctx) {
		if err != nil {
			return err
		}
		ts := iterator.Value()

		tipSetMetadata, err := store.LoadTipsetMetadata(ctx, ts)
		if err != nil {
			return err
		}

		store.tipIndex.Put(tipSetMetadata)
		store.indexSiblings(ts)

		if ts.Height() <= loopBack {
			break
		}
	}
	log.Infof("finished loading %d tipsets from %s", latestHeight, headTS.String())

	// Set actual head.
	return store.SetHead(ctx, headTS)
}

// DefaultChainLoadback is how many epochs of index are rebuilt on Load.
var DefaultChainLoadback = 900

// loadHead loads the latest known head from disk.
func (store *Store) loadHead(ctx context.Context) (*types.TipSet, error) {
	tskBytes, err := store.ds.Get(ctx, HeadKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read HeadKey")
	}

	var tsk types.TipSetKey
	err = tsk.UnmarshalCBOR(bytes.NewReader(tskBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to cast headCids")
	}

	return store.GetTipSet(ctx, tsk)
}

// LoadTipsetMetadata loads a tipset's computed state root and receipts root
// from the metadata datastore.
func (store *Store) LoadTipsetMetadata(ctx context.Context, ts *types.TipSet) (*TipSetMetadata, error) {
	h := ts.Height()
	key := datastore.NewKey(makeKey(ts.String(), h))

	tsStateBytes, err := store.ds.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tipset key %s", ts.String())
	}

	var metadata TSState
	if err := metadata.UnmarshalCBOR(bytes.NewReader(tsStateBytes)); err != nil {
		return nil, errors.Wrapf(err, "failed to decode tip set metadata %s", ts.String())
	}
	return &TipSetMetadata{
		TipSet:          ts,
		TipSetStateRoot: metadata.StateRoot,
		TipSetReceipts:  metadata.Receipts,
	}, nil
}

// PutTipSetMetadata persists the tipset's computed state and updates the index.
func (store *Store) PutTipSetMetadata(ctx context.Context, tsm *TipSetMetadata) error {
	store.tipIndex.Put(tsm)

	return store.writeTipSetMetadata(ctx, tsm)
}

// GetBlock returns the block identified by `cid`.
func (store *Store) GetBlock(ctx context.Context, blockID cid.Cid) (*types.BlockHeader, error) {
	var block types.BlockHeader
	err := store.stateAndBlockSource.Get(ctx, blockID, &block)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get block %s", blockID.String())
	}
	return &block, nil
}

// PutObject writes a typed object to the CAS and returns its cid.
func (store *Store) PutObject(ctx context.Context, obj interface{}) (cid.Cid, error) {
	return store.stateAndBlockSource.Put(ctx, obj)
}

// GetTipSet returns the tipset identified by `key`. The empty key resolves
// to the current head.
func (store *Store) GetTipSet(ctx context.Context, key types.TipSetKey) (*types.TipSet, error) {
	if key.IsEmpty() {
		head := store.GetHead()
		if !head.Defined() {
			return nil, ErrNoHead
		}
		return head, nil
	}

	val, has := store.tsCache.Get(key)
	if has {
		return val.(*types.TipSet), nil
	}

	cids := key.Cids()
	blks := make([]*types.BlockHeader, len(cids))
	for idx, c := range cids {
		blk, err := store.GetBlock(ctx, c)
		if err != nil {
			return nil, err
		}

		blks[idx] = blk
	}

	ts, err := types.NewTipSetFromKey(key, blks)
	if err != nil {
		return nil, err
	}
	store.tsCache.Add(key, ts)

	return ts, nil
}

// GetTipSetByHeight looks back for a tipset at the specified epoch on the
// chain `ts` belongs to. If there are no blocks at the specified epoch, a
// tipset at an earlier epoch will be returned (or, with prev unset, the one
// just above it). Requesting a height above ts errors.
func (store *Store) GetTipSetByHeight(ctx context.Context, ts *types.TipSet, h abi.ChainEpoch, prev bool) (*types.TipSet, error) {
	if ts == nil {
		ts = store.GetHead()
	}
	if !ts.Defined() {
		return nil, ErrNoHead
	}

	if h > ts.Height() {
		return nil, errors.New("looking for tipset with height greater than start point")
	}

	if h == ts.Height() {
		return ts, nil
	}

	lbts, err := store.chainIndex.GetTipSetByHeight(ctx, ts, h)
	if err != nil {
		return nil, err
	}

	if lbts.Height() < h {
		log.Warnf("chain index returned the wrong tipset at height %d, using slow retrieval", h)
		lbts, err = store.chainIndex.GetTipsetByHeightWithoutCache(ctx, ts, h)
		if err != nil {
			return nil, err
		}
	}

	if lbts.Height() == h || !prev {
		return lbts, nil
	}

	return store.GetTipSet(ctx, lbts.Parents())
}

// GetGenesisBlock returns the genesis block held by the chain store.
func (store *Store) GetGenesisBlock(ctx context.Context) (*types.BlockHeader, error) {
	return store.GetBlock(ctx, store.GenesisCid())
}

// GetTipSetStateRoot returns the aggregate state root of the tipset
// identified by `key`.
func (store *Store) GetTipSetStateRoot(ctx context.Context, ts *types.TipSet) (cid.Cid, error) {
	return store.tipIndex.GetTipSetStateRoot(ctx, ts)
}

// GetTipSetReceiptsRoot returns the root CID of the message receipts for the
// given tipset.
func (store *Store) GetTipSetReceiptsRoot(ctx context.Context, ts *types.TipSet) (cid.Cid, error) {
	return store.tipIndex.GetTipSetReceiptsRoot(ctx, ts)
}

// GetTipsetMetadata returns the tipset's computed state and receipts roots.
func (store *Store) GetTipsetMetadata(ctx context.Context, ts *types.TipSet) (*TipSetMetadata, error) {
	tsStat, err := store.tipIndex.Get(ctx, ts)
	if err != nil {
		return nil, err
	}
	return &TipSetMetadata{
		TipSetStateRoot: tsStat.StateRoot,
		TipSet:          ts,
		TipSetReceipts:  tsStat.Receipts,
	}, nil
}

// HasTipSetAndState returns true iff the store's tipindex is indexing the
// given tipset.
func (store *Store) HasTipSetAndState(ctx context.Context, ts *types.TipSet) bool {
	return store.tipIndex.Has(ctx, ts)
}

// DeleteTipSetMetadata deletes the state root id from the datastore for the
// tipset key.
func (store *Store) DeleteTipSetMetadata(ctx context.Context, ts *types.TipSet) error {
	store.tipIndex.Del(ts)
	h := ts.Height()
	key := datastore.NewKey(makeKey(ts.String(), h))
	return store.ds.Delete(ctx, key)
}

// GetLatestBeaconEntry returns the latest beacon entry at or before ts,
// walking back at most 20 tipsets.
func (store *Store) GetLatestBeaconEntry(ctx context.Context, ts *types.TipSet) (*types.BeaconEntry, error) {
	cur := ts
	for i := 0; i < 20; i++ {
		cbe := cur.At(0).BeaconEntries
		if len(cbe) > 0 {
			return cbe[len(cbe)-1], nil
		}

		if cur.Height() == 0 {
			return nil, errors.New("made it back to genesis block without finding beacon entry")
		}

		next, err := store.GetTipSet(ctx, cur.Parents())
		if err != nil {
			return nil, errors.Wrap(err, "failed to load parents when searching back for latest beacon entry")
		}
		cur = next
	}

	return nil, errors.New("found NO beacon entries in the 20 blocks prior to given tipset")
}

// AddBlock ingests a new block header: it is written to the CAS, grouped
// with any known headers sharing its height and parents, and the resulting
// expanded tipset is weighed against the current head. A strictly heavier
// tipset (or an equally heavy one with byte-lexicographically smaller key)
// becomes the new head.
//
// Ingestion errors are recoverable: the block is dropped and the chain store
// is unchanged.
func (store *Store) AddBlock(ctx context.Context, blk *types.BlockHeader) error {
	if blk.Ticket == nil && blk.Height != 0 {
		return types.ErrTicketHasNoValue
	}

	// Write the header before any tipset referencing it can surface.
	if _, err := store.stateAndBlockSource.Put(ctx, blk); err != nil {
		return errors.Wrap(err, "failed to put block header")
	}

	candidate, err := store.expandTipset(ctx, blk)
	if err != nil {
		log.Infof("dropping block %s: %s", blk.Cid(), err)
		return err
	}

	return store.refreshHeaviestTipset(ctx, candidate)
}

// expandTipset groups the new header with all known compatible siblings and
// returns the widest well-formed tipset containing it.
func (store *Store) expandTipset(ctx context.Context, blk *types.BlockHeader) (*types.TipSet, error) {
	store.siblingsMu.Lock()
	defer store.siblingsMu.Unlock()

	key := makeKey(blk.Parents.String(), blk.Height)
	headers := []*types.BlockHeader{blk}
	known := false
	for _, c := range store.siblings[key] {
		if c.Equals(blk.Cid()) {
			known = true
			continue
		}
		sib, err := store.GetBlock(ctx, c)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load sibling %s", c)
		}
		headers = append(headers, sib)
	}

	ts, err := types.NewTipSet(headers)
	if err != nil {
		return nil, err
	}

	if !known {
		store.siblings[key] = append(store.siblings[key], blk.Cid())
	}
	return ts, nil
}

func (store *Store) indexSiblings(ts *types.TipSet) {
	store.siblingsMu.Lock()
	defer store.siblingsMu.Unlock()
	key := makeKey(ts.Parents().String(), ts.Height())
	store.siblings[key] = ts.Cids()
}

// refreshHeaviestTipset updates the head if candidate outweighs it.
func (store *Store) refreshHeaviestTipset(ctx context.Context, candidate *types.TipSet) error {
	head := store.GetHead()
	if !head.Defined() {
		return store.SetHead(ctx, candidate)
	}
	if head.Equals(candidate) {
		return nil
	}

	heavier, err := store.isHeavier(ctx, candidate, head)
	if err != nil {
		return err
	}
	if !heavier {
		log.Debugf("block retained but head unchanged at %s", head.Key())
		return nil
	}
	return store.SetHead(ctx, candidate)
}

// isHeavier reports whether a outweighs b, breaking exact weight ties with
// the byte-lexicographically smaller tipset key.
func (store *Store) isHeavier(ctx context.Context, a, b *types.TipSet) (bool, error) {
	aW, err := store.weight(ctx, store.stateAndBlockSource, a)
	if err != nil {
		return false, err
	}
	bW, err := store.weight(ctx, store.stateAndBlockSource, b)
	if err != nil {
		return false, err
	}

	if !aW.Equals(bW) {
		return aW.GreaterThan(bW), nil
	}

	return bytes.Compare(a.Key().Bytes(), b.Key().Bytes()) < 0, nil
}

// SetHead sets the passed in tipset as the new head of this chain.
func (store *Store) SetHead(ctx context.Context, newTS *types.TipSet) error {
	log.Infof("SetHead %s %d", newTS.String(), newTS.Height())
	// Guard against the empty sentinel escaping into head position.
	if !newTS.Defined() {
		log.Errorf("publishing empty tipset")
		log.Error(debug.Stack())
		return nil
	}

	dropped, added, update, err := func() ([]*types.TipSet, []*types.TipSet, bool, error) {
		var dropped []*types.TipSet
		var added []*types.TipSet
		var err error
		store.mu.Lock()
		defer store.mu.Unlock()

		if store.head != nil {
			if store.head.Equals(newTS) {
				return nil, nil, false, nil
			}
			// reorg
			oldHead := store.head
			dropped, added, err = CollectTipsToCommonAncestor(ctx, store, oldHead, newTS)
			if err != nil {
				return nil, nil, false, err
			}
		} else {
			added = []*types.TipSet{newTS}
		}

		// Ensure consistency by storing this new head on disk.
		if errInner := store.writeHead(ctx, newTS.Key()); errInner != nil {
			return nil, nil, false, errors.Wrap(errInner, "failed to write new Head to datastore")
		}
		store.head = newTS
		return dropped, added, true, nil
	}()
	if err != nil {
		return err
	}

	if !update {
		return nil
	}

	// added is collected child-to-parent; the publisher applies
	// parent-to-child.
	Reverse(added)

	store.reorgCh <- reorg{
		old: dropped,
		new: added,
	}
	return nil
}

func (store *Store) reorgWorker(ctx context.Context) chan reorg {
	headChangeNotifee := func(rev, app []*types.TipSet) error {
		notif := make([]*types.HeadChange, len(rev)+len(app))
		for i, revert := range rev {
			notif[i] = &types.HeadChange{
				Type: types.HCRevert,
				Val:  revert,
			}
		}

		for i, apply := range app {
			notif[i+len(rev)] = &types.HeadChange{
				Type: types.HCApply,
				Val:  apply,
			}
		}

		// Publish an event that we have a new head.
		store.headEvents.Pub(notif, types.HeadChangeTopic)
		return nil
	}

	out := make(chan reorg, 32)
	notifees := []ReorgNotifee{headChangeNotifee}

	go func() {
		defer log.Warn("reorgWorker quit")
		for {
			select {
			case n := <-store.reorgNotifeeCh:
				notifees = append(notifees, n)

			case r := <-out:
				var toremove map[int]struct{}
				for i, hcf := range notifees {
					err := hcf(r.old, r.new)

					switch err {
					case nil:

					case ErrNotifeeDone:
						if toremove == nil {
							toremove = make(map[int]struct{})
						}
						toremove[i] = struct{}{}

					default:
						log.Error("head change func errored (BAD): ", err)
					}
				}

				if len(toremove) > 0 {
					newNotifees := make([]ReorgNotifee, 0, len(notifees)-len(toremove))
					for i, hcf := range notifees {
						if _, remove := toremove[i]; remove {
							continue
						}
						newNotifees = append(newNotifees, hcf)
					}
					notifees = newNotifees
				}

			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// SubHeadChanges returns a channel of linearized head updates. The first
// message is guaranteed to be of len == 1 and type HCCurrent. Subsequent
// batches carry the HCRevert events (child to parent) followed by the
// HCApply events (parent to child) for one head transition, in head-update
// order. A subscriber that cannot keep up with its bounded buffer is
// disconnected and its channel closed.
func (store *Store) SubHeadChanges(ctx context.Context) chan []*types.HeadChange {
	store.mu.RLock()
	subCh := store.headEvents.Sub(types.HeadChangeTopic)
	head := store.head
	store.mu.RUnlock()

	out := make(chan []*types.HeadChange, store.headChangeBufferSize)
	out <- []*types.HeadChange{{
		Type: types.HCCurrent,
		Val:  head,
	}}

	go func() {
		defer close(out)
		var unsubOnce sync.Once

		for {
			select {
			case val, ok := <-subCh:
				if !ok {
					log.Warn("chain head sub exit loop")
					return
				}

				select {
				case out <- val.([]*types.HeadChange):
				default:
					log.Errorf("closing head change subscription due to slow reader")
					return
				}
				if len(out) > 5 {
					log.Warnf("head change sub is slow, has %d buffered entries", len(out))
				}
			case <-ctx.Done():
				unsubOnce.Do(func() {
					go store.headEvents.Unsub(subCh)
				})
				return
			}
		}
	}()
	return out
}

// SubscribeHeadChanges registers a reorg callback invoked on each head
// transition with the reverted and applied tipsets.
func (store *Store) SubscribeHeadChanges(f ReorgNotifee) {
	store.reorgNotifeeCh <- f
}

// writeHead writes the given cid set as head to disk.
func (store *Store) writeHead(ctx context.Context, cids types.TipSetKey) error {
	log.Debugf("WriteHead %s", cids.String())
	buf := new(bytes.Buffer)
	if err := cids.MarshalCBOR(buf); err != nil {
		return err
	}

	return store.ds.Put(ctx, HeadKey, buf.Bytes())
}

// writeTipSetMetadata writes the tipset key and the state root id to the
// datastore.
func (store *Store) writeTipSetMetadata(ctx context.Context, tsm *TipSetMetadata) error {
	if tsm.TipSetStateRoot == cid.Undef {
		return errors.New("attempting to write state root cid.Undef")
	}

	if tsm.TipSetReceipts == cid.Undef {
		return errors.New("attempting to write receipts cid.Undef")
	}

	metadata := TSState{
		StateRoot: tsm.TipSetStateRoot,
		Receipts:  tsm.TipSetReceipts,
	}
	buf := new(bytes.Buffer)
	if err := metadata.MarshalCBOR(buf); err != nil {
		return err
	}
	// datastore keeps key:stateRoot (k,v) pairs.
	h := tsm.TipSet.Height()
	key := datastore.NewKey(makeKey(tsm.TipSet.String(), h))

	return store.ds.Put(ctx, key, buf.Bytes())
}

// GetHead returns the current head tipset. Before any head is set the
// undefined sentinel is returned.
func (store *Store) GetHead() *types.TipSet {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if !store.head.Defined() {
		return types.UndefTipSet
	}

	return store.head
}

// HasHead reports whether a head has been established.
func (store *Store) HasHead() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.head.Defined()
}

// GenesisCid returns the genesis cid of the chain tracked by the store.
func (store *Store) GenesisCid() cid.Cid {
	return store.genesis
}

// GenesisRootCid returns the state root the genesis block carries.
func (store *Store) GenesisRootCid() cid.Cid {
	genesis, _ := store.GetBlock(context.TODO(), store.GenesisCid())
	return genesis.ParentStateRoot
}

// ReorgOps takes two tipsets (which can be at different heights), and walks
// their corresponding chains backwards one step at a time until we find a
// common ancestor. It then returns the respective chain segments that fork
// from the identified ancestor, in reverse order, where the first element of
// each slice is the supplied tipset, and the last element is just above the
// common ancestor.
func (store *Store) ReorgOps(ctx context.Context, a, b *types.TipSet) ([]*types.TipSet, []*types.TipSet, error) {
	return ReorgOps(ctx, store.GetTipSet, a, b)
}

// ReorgOps is the bare version of Store.ReorgOps over any tipset loader.
func ReorgOps(ctx context.Context, lts func(context.Context, types.TipSetKey) (*types.TipSet, error), a, b *types.TipSet) ([]*types.TipSet, []*types.TipSet, error) {
	left := a
	right := b

	var leftChain, rightChain []*types.TipSet
	for !left.Equals(right) {
		if left.Height() > right.Height() {
			leftChain = append(leftChain, left)
			par, err := lts(ctx, left.Parents())
			if err != nil {
				return nil, nil, err
			}

			left = par
		} else {
			rightChain = append(rightChain, right)
			par, err := lts(ctx, right.Parents())
			if err != nil {
				log.Infof("failed to fetch right.Parents: %s", err)
				return nil, nil, err
			}

			right = par
		}
	}

	return leftChain, rightChain, nil
}

// PutMessage puts a message in the blob store.
func (store *Store) PutMessage(ctx context.Context, m storable) (cid.Cid, error) {
	sblk, err := m.ToStorageBlock()
	if err != nil {
		return cid.Undef, err
	}
	if err := store.bsstore.Put(ctx, sblk); err != nil {
		return cid.Undef, err
	}
	return sblk.Cid(), nil
}

// Blockstore returns the local blob store.
func (store *Store) Blockstore() blockstore.Blockstore {
	return store.bsstore
}

// ReadOnlyStateStore exposes the typed CAS handle backing the store.
func (store *Store) ReadOnlyStateStore() cbor.IpldStore {
	return store.stateAndBlockSource
}

// Weight computes the weight of an arbitrary tipset with the store's
// configured weight function.
func (store *Store) Weight(ctx context.Context, ts *types.TipSet) (fbig.Int, error) {
	return store.weight(ctx, store.stateAndBlockSource, ts)
}

// Stop stops all activities and cleans up.
func (store *Store) Stop() {
	store.headEvents.Shutdown()
}
