package hub_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/hub"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

const (
	hubAddr      = "hub"
	owner        = "owner"
	operatorAddr = "operator"
	feeRecipient = "fee-collector"
	baseDenom    = "ukuji"
	stakeDenom   = "factory/hub/ampKUJI"
	genesisTime  = 10000
	epochPeriod  = 50
	unbondPeriod = 100
)

var validators = []string{"valA", "valB", "valC"}

// fakeLedger is the hub's view of the chain. The mock adapter reads from it
// and testHub applies effects to it.
type fakeLedger struct {
	balances    map[string]sdkmath.Uint
	delegations map[string]sdkmath.Uint
	rewards     map[string]sdkmath.Uint
	validators  map[string]bool
	unbonding   sdkmath.Uint
}

func newFakeLedger() *fakeLedger {
	f := &fakeLedger{
		balances:    map[string]sdkmath.Uint{},
		delegations: map[string]sdkmath.Uint{},
		rewards:     map[string]sdkmath.Uint{},
		validators:  map[string]bool{},
		unbonding:   sdkmath.ZeroUint(),
	}
	for _, v := range append(validators, "valD") {
		f.validators[v] = true
	}
	return f
}

func (f *fakeLedger) balance(denom string) sdkmath.Uint {
	if b, ok := f.balances[denom]; ok {
		return b
	}
	return sdkmath.ZeroUint()
}

func (f *fakeLedger) delegation(validator string) sdkmath.Uint {
	if d, ok := f.delegations[validator]; ok {
		return d
	}
	return sdkmath.ZeroUint()
}

func (f *fakeLedger) credit(denom string, amount sdkmath.Uint) {
	f.balances[denom] = f.balance(denom).Add(amount)
}

func (f *fakeLedger) debit(denom string, amount sdkmath.Uint) {
	f.balances[denom] = f.balance(denom).Sub(amount)
}

// release pays out everything unbonding, minus lost.
func (f *fakeLedger) release(lost uint64) {
	f.credit(baseDenom, f.unbonding.Sub(sdkmath.NewUint(lost)))
	f.unbonding = sdkmath.ZeroUint()
}

func (f *fakeLedger) reward(validator string, amount uint64) {
	f.rewards[validator] = sdkmath.NewUint(amount)
}

func (f *fakeLedger) bonded() sdkmath.Uint {
	total := sdkmath.ZeroUint()
	for _, d := range f.delegations {
		total = total.Add(d)
	}
	return total
}

func (f *fakeLedger) expect(m *hub.MockLedgerAdapter) {
	m.EXPECT().Delegations(gomock.Any(), hubAddr, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, vals []string) ([]types.Delegation, error) {
			res := make([]types.Delegation, 0, len(vals))
			for _, v := range vals {
				res = append(res, types.NewDelegation(v, f.delegation(v)))
			}
			return res, nil
		}).AnyTimes()
	m.EXPECT().AllDelegations(gomock.Any(), hubAddr).DoAndReturn(
		func(context.Context, string) ([]types.Delegation, error) {
			vals := make([]string, 0, len(f.delegations))
			for v, d := range f.delegations {
				if !d.IsZero() {
					vals = append(vals, v)
				}
			}
			sort.Strings(vals)
			res := make([]types.Delegation, 0, len(vals))
			for _, v := range vals {
				res = append(res, types.NewDelegation(v, f.delegations[v]))
			}
			return res, nil
		}).AnyTimes()
	m.EXPECT().Delegation(gomock.Any(), hubAddr, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, v string) (types.Delegation, error) {
			return types.NewDelegation(v, f.delegation(v)), nil
		}).AnyTimes()
	m.EXPECT().Balance(gomock.Any(), hubAddr, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, denom string) (sdkmath.Uint, error) {
			return f.balance(denom), nil
		}).AnyTimes()
	m.EXPECT().AllBalances(gomock.Any(), hubAddr).DoAndReturn(
		func(context.Context, string) (sdk.Coins, error) {
			coins := sdk.NewCoins()
			for denom, amount := range f.balances {
				if !amount.IsZero() {
					coins = coins.Add(sdk.NewCoin(denom, types.UintToInt(amount)))
				}
			}
			return coins, nil
		}).AnyTimes()
	m.EXPECT().ValidatorExists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, v string) (bool, error) {
			return f.validators[v], nil
		}).AnyTimes()
}

func (f *fakeLedger) apply(effect types.Effect) {
	switch e := effect.(type) {
	case types.Delegate:
		f.debit(baseDenom, e.Amount)
		f.delegations[e.Validator] = f.delegation(e.Validator).Add(e.Amount)
	case types.Undelegate:
		f.delegations[e.Validator] = f.delegation(e.Validator).Sub(e.Amount)
		f.unbonding = f.unbonding.Add(e.Amount)
	case types.Redelegate:
		f.delegations[e.Src] = f.delegation(e.Src).Sub(e.Amount)
		f.delegations[e.Dst] = f.delegation(e.Dst).Add(e.Amount)
	case types.WithdrawReward:
		if r, ok := f.rewards[e.Validator]; ok {
			f.credit(baseDenom, r)
			delete(f.rewards, e.Validator)
		}
	case types.Transfer:
		for _, c := range e.Coins {
			f.debit(c.Denom, sdkmath.NewUintFromBigInt(c.Amount.BigInt()))
		}
	case types.Burn:
		f.debit(e.Denom, e.Amount)
	case types.VaultWithdraw:
		f.debit(e.Denom, e.Amount)
		f.credit(baseDenom, e.Amount)
	case types.Swap:
		// every offered denom converts 1:1 into base token
		for _, c := range e.Offer {
			if c.Denom != baseDenom {
				amount := sdkmath.NewUintFromBigInt(c.Amount.BigInt())
				f.debit(c.Denom, amount)
				f.credit(baseDenom, amount)
			}
		}
	}
}

type testHub struct {
	t *testing.T
	*hub.Hub
	fake    *fakeLedger
	cms     storetypes.CommitMultiStore
	metrics *metrics.HubMetrics
	now     uint64

	effects []types.Effect
	events  sdk.Events
}

func newTestHub(t *testing.T) *testHub {
	key := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	require.NoError(t, cms.LoadLatestVersion())

	ctrl := gomock.NewController(t)
	mockLedger := hub.NewMockLedgerAdapter(ctrl)
	fake := newFakeLedger()
	fake.expect(mockLedger)

	m := metrics.NewHubMetrics()
	h, err := hub.New(runtime.NewKVStoreService(key), hubAddr, mockLedger, zap.NewNop(), m)
	require.NoError(t, err)

	return &testHub{t: t, Hub: h, fake: fake, cms: cms, metrics: m, now: genesisTime}
}

func instantiateMsg() types.MsgInstantiate {
	return types.MsgInstantiate{
		Owner:         owner,
		Operator:      operatorAddr,
		BaseDenom:     baseDenom,
		StakeSubdenom: "ampKUJI",
		EpochPeriod:   epochPeriod,
		UnbondPeriod:  unbondPeriod,
		Validators:    validators,
		FeeRecipient:  feeRecipient,
		RewardFee:     sdkmath.LegacyNewDecWithPrec(5, 2),
		SwapRouter:    "router",
	}
}

// setupHub returns an instantiated hub.
func setupHub(t *testing.T) *testHub {
	th := newTestHub(t)
	_, err := th.exec(owner, nil, instantiateMsg())
	require.NoError(t, err)
	return th
}

func (th *testHub) ctx() sdk.Context {
	header := cmtproto.Header{Height: 1, Time: time.Unix(int64(th.now), 0).UTC()}
	return sdk.NewContext(th.cms, header, false, log.NewNopLogger())
}

func (th *testHub) advance(seconds uint64) {
	th.now += seconds
}

// exec runs msg and its effects the way a host would, executing self calls
// depth first with the hub as sender. Effects applied before a failure are
// not reverted; tests only rely on that for the failing call itself.
func (th *testHub) exec(sender string, funds sdk.Coins, msg types.Msg) (*types.Response, error) {
	th.effects = nil
	ctx := th.ctx()
	res, err := th.call(ctx, sender, funds, msg)
	th.events = ctx.EventManager().Events()
	return res, err
}

func (th *testHub) call(ctx sdk.Context, sender string, funds sdk.Coins, msg types.Msg) (*types.Response, error) {
	for _, c := range funds {
		th.fake.credit(c.Denom, sdkmath.NewUintFromBigInt(c.Amount.BigInt()))
	}
	res, err := th.Handle(ctx, types.MessageInfo{Sender: sender, Funds: funds}, msg)
	if err != nil {
		return nil, err
	}
	for _, effect := range res.Effects {
		th.effects = append(th.effects, effect)
		if self, ok := effect.(types.SelfCall); ok {
			if _, err := th.call(ctx, hubAddr, nil, self.Msg); err != nil {
				return nil, err
			}
			continue
		}
		th.fake.apply(effect)
	}
	return res, nil
}

func (th *testHub) state() types.StateResponse {
	th.t.Helper()
	state, err := th.State(th.ctx())
	require.NoError(th.t, err)
	return state
}

func (th *testHub) stakeSupply() sdkmath.Uint {
	th.t.Helper()
	stake, err := th.StakeToken.Get(th.ctx())
	require.NoError(th.t, err)
	return stake.TotalSupply
}

func (th *testHub) bond(sender string, amount uint64) {
	th.t.Helper()
	_, err := th.exec(sender, coins(amount, baseDenom), types.MsgBond{})
	require.NoError(th.t, err)
}

func (th *testHub) queueUnbond(sender string, shares uint64) {
	th.t.Helper()
	_, err := th.exec(sender, coins(shares, stakeDenom), types.MsgQueueUnbond{})
	require.NoError(th.t, err)
}

func coins(amount uint64, denom string) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(denom, sdkmath.NewIntFromUint64(amount)))
}

func requireUint(t *testing.T, expected uint64, actual sdkmath.Uint) {
	t.Helper()
	require.Equal(t, sdkmath.NewUint(expected).String(), actual.String())
}

// effectsOf filters the effects of the last exec by type.
func effectsOf[T types.Effect](th *testHub) []T {
	var res []T
	for _, e := range th.effects {
		if v, ok := e.(T); ok {
			res = append(res, v)
		}
	}
	return res
}

func eventOf(th *testHub, eventType string) (sdk.Event, bool) {
	for _, e := range th.events {
		if e.Type == eventType {
			return e, true
		}
	}
	return sdk.Event{}, false
}

func attribute(e sdk.Event, key string) string {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}
