// Package host runs the hub the way a chain would: one message at a time,
// followed by its effects, all of it committed or rolled back together.
package host

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/hub"
	"github.com/babylonchain/lsthub/ledger"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

// MaxCallDepth bounds nested self calls.
const MaxCallDepth = 10

var ErrCallDepthExceeded = errors.New("call depth exceeded")

// ExecutedEffect is one effect of a message, in execution order.
type ExecutedEffect struct {
	Depth  int          `json:"depth"`
	Type   string       `json:"type"`
	Effect types.Effect `json:"effect"`
}

// Result is what a committed message produced.
type Result struct {
	Effects []ExecutedEffect `json:"effects"`
	Events  sdk.Events       `json:"events"`
}

// Executor owns the hub store, the ledger and the clock. It is safe for
// concurrent use; messages are executed one at a time.
type Executor struct {
	mu     sync.Mutex
	hub    *hub.Hub
	ledger *ledger.Ledger
	cms    storetypes.CommitMultiStore
	logger *zap.SugaredLogger

	now    uint64
	height int64
}

// New mounts a fresh hub store named after the hub and connects it to l.
func New(hubAddr string, l *ledger.Ledger, startTime uint64, parentLogger *zap.Logger, m *metrics.HubMetrics) (*Executor, error) {
	key := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "failed to load hub store")
	}

	h, err := hub.New(runtime.NewKVStoreService(key), hubAddr, l, parentLogger, m)
	if err != nil {
		return nil, err
	}

	return &Executor{
		hub:    h,
		ledger: l,
		cms:    cms,
		logger: parentLogger.With(zap.String("module", "host")).Sugar(),
		now:    startTime,
		height: 1,
	}, nil
}

func (e *Executor) Hub() *hub.Hub {
	return e.hub
}

func (e *Executor) Ledger() *ledger.Ledger {
	return e.ledger
}

// Now is the current block time in seconds.
func (e *Executor) Now() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Advance moves the clock forward and releases matured unbondings.
func (e *Executor) Advance(seconds uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now += seconds
	e.height++
	if n := e.ledger.ProcessUnbondings(e.now); n > 0 {
		e.logger.Debugw("released unbondings", "count", n, "time", e.now)
	}
}

func (e *Executor) newContext(ms storetypes.MultiStore) sdk.Context {
	header := cmtproto.Header{
		Height: e.height,
		Time:   time.Unix(int64(e.now), 0).UTC(),
	}
	return sdk.NewContext(ms, header, false, log.NewNopLogger())
}

// Execute sends funds from sender to the hub, runs msg and then every effect
// it returns, depth first. On any failure nothing of it is kept.
func (e *Executor) Execute(sender string, funds sdk.Coins, msg types.Msg) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := e.ledger.Snapshot()
	txStore := e.cms.CacheMultiStore()
	ctx := e.newContext(txStore)

	res := &Result{}
	if err := e.call(ctx, sender, funds, msg, 0, res); err != nil {
		e.ledger.Restore(snapshot)
		e.logger.Debugw("message rolled back", "type", msg.Type(), "sender", sender, "error", err)
		return nil, err
	}

	txStore.Write()
	e.cms.Commit()
	res.Events = ctx.EventManager().Events()
	return res, nil
}

func (e *Executor) call(ctx sdk.Context, sender string, funds sdk.Coins, msg types.Msg, depth int, res *Result) error {
	if depth > MaxCallDepth {
		return errors.Wrapf(ErrCallDepthExceeded, "%s at depth %d", msg.Type(), depth)
	}
	if !funds.IsZero() {
		if err := e.ledger.Send(sender, e.hub.Address(), funds); err != nil {
			return errors.Wrapf(err, "failed to send funds for %s", msg.Type())
		}
	}

	out, err := e.hub.Handle(ctx, types.MessageInfo{Sender: sender, Funds: funds}, msg)
	if err != nil {
		return err
	}

	for _, effect := range out.Effects {
		res.Effects = append(res.Effects, ExecutedEffect{Depth: depth, Type: effect.EffectType(), Effect: effect})

		if self, ok := effect.(types.SelfCall); ok {
			if err := e.call(ctx, e.hub.Address(), nil, self.Msg, depth+1, res); err != nil {
				return errors.Wrapf(err, "self call %s", self.Msg.Type())
			}
			continue
		}
		if err := e.ledger.Apply(e.hub.Address(), effect, e.now); err != nil {
			return errors.Wrapf(err, "effect %s of %s", effect.EffectType(), msg.Type())
		}
	}
	return nil
}

// Query runs q against the committed hub state.
func (e *Executor) Query(q types.Query) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx := e.newContext(e.cms.CacheMultiStore())
	return e.hub.Query(ctx, q)
}

// QueryJSON is Query with the answer encoded as indented JSON.
func (e *Executor) QueryJSON(q types.Query) ([]byte, error) {
	res, err := e.Query(q)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(res, "", "  ")
}

// Context returns a read-only context over the committed state.
func (e *Executor) Context() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.newContext(e.cms.CacheMultiStore())
}
