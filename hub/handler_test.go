package hub_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/lsthub/types"
)

func TestInstantiate(t *testing.T) {
	th := newTestHub(t)

	msg := instantiateMsg()
	msg.Validators = []string{"valA", "valB", "valA", "valC"}
	res, err := th.exec(owner, nil, msg)
	require.NoError(t, err)
	require.Equal(t, []types.Effect{types.CreateDenom{Subdenom: "ampKUJI"}}, res.Effects)

	ev, ok := eventOf(th, types.EventTypeInstantiated)
	require.True(t, ok)
	require.Equal(t, stakeDenom, attribute(ev, types.AttributeKeyStakeDenom))

	cfg, err := th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, owner, cfg.Owner)
	require.Equal(t, operatorAddr, cfg.Operator)
	require.Equal(t, stakeDenom, cfg.StakeToken)
	require.Equal(t, validators, cfg.Validators)
	require.Equal(t, types.UniformStrategy(), cfg.DelegationStrategy)
	require.True(t, cfg.AllowDonations)

	pending, err := th.QueryPendingBatch(th.ctx())
	require.NoError(t, err)
	require.Equal(t, uint64(1), pending.ID)
	require.Equal(t, uint64(genesisTime+epochPeriod), pending.EstUnbondStartTime)

	_, err = th.exec(owner, nil, instantiateMsg())
	require.ErrorIs(t, err, types.ErrAlreadyInstantiated)
}

func TestInstantiateValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*types.MsgInstantiate)
		err    error
	}{
		{"fee above cap", func(m *types.MsgInstantiate) { m.RewardFee = sdkmath.LegacyNewDecWithPrec(11, 2) }, types.ErrRewardFeeTooHigh},
		{"zero epoch", func(m *types.MsgInstantiate) { m.EpochPeriod = 0 }, types.ErrCantBeZero},
		{"zero unbond period", func(m *types.MsgInstantiate) { m.UnbondPeriod = 0 }, types.ErrCantBeZero},
		{"no validators", func(m *types.MsgInstantiate) { m.Validators = nil }, types.ErrNoValidators},
		{"unknown validator", func(m *types.MsgInstantiate) { m.Validators = []string{"valA", "ghost"} }, types.ErrValidatorNotFound},
		{"empty operator", func(m *types.MsgInstantiate) { m.Operator = " " }, types.ErrInvalidRequest},
		{"bad base denom", func(m *types.MsgInstantiate) { m.BaseDenom = "1" }, types.ErrInvalidRequest},
		{"preset swaps base token", func(m *types.MsgInstantiate) {
			m.StagesPreset = []types.Stage{{{Pair: "pool", Denom: baseDenom}}}
		}, types.ErrSwapFromNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			th := newTestHub(t)
			msg := instantiateMsg()
			tc.mutate(&msg)
			_, err := th.exec(owner, nil, msg)
			require.ErrorIs(t, err, tc.err)

			has, err := th.Owner.Has(th.ctx())
			require.NoError(t, err)
			require.False(t, has)
		})
	}
}

func TestMessagesRequireInstantiation(t *testing.T) {
	th := newTestHub(t)
	_, err := th.exec("alice", coins(100, baseDenom), types.MsgBond{})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestCallbacksRequireSelf(t *testing.T) {
	th := setupHub(t)

	callbacks := []types.Msg{
		types.MsgClaimFunds{},
		types.MsgSwap{Sender: operatorAddr},
		types.MsgCheckReceivedCoin{Snapshot: sdk.NewInt64Coin(baseDenom, 0), SnapshotStake: sdk.NewInt64Coin(stakeDenom, 0)},
		types.MsgReinvest{},
	}
	for _, msg := range callbacks {
		for _, sender := range []string{owner, operatorAddr, "alice"} {
			_, err := th.exec(sender, nil, msg)
			require.ErrorIs(t, err, types.ErrCallbackNotSelf, "%s from %s", msg.Type(), sender)
			require.Equal(t, types.KindAuthorization, types.KindOf(err))
		}
	}

	failed := testutil.ToFloat64(th.metrics.FailedOperationsCounter.WithLabelValues("reinvest", "authorization"))
	require.Equal(t, float64(3), failed)
}

func TestFailedCallLeavesNoTrace(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 1000)

	before := th.state()

	// at a rate far above one, bonding 1 rounds to zero shares
	th.fake.delegations["valA"] = sdkmath.NewUint(1_000_000)
	_, err := th.exec("bob", coins(1, baseDenom), types.MsgBond{})
	require.ErrorIs(t, err, types.ErrCantBeZero)
	require.Empty(t, th.events)

	requireUint(t, 1000, th.stakeSupply())
	after := th.state()
	require.Equal(t, before.TotalStake.String(), after.TotalStake.String())
}

func TestSuccessfulCallsAreCounted(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 10)
	th.bond("bob", 20)

	require.Equal(t, float64(2), testutil.ToFloat64(th.metrics.OperationsCounterVec.WithLabelValues("bond")))
	// each bond ends with a balance check
	require.Equal(t, float64(2), testutil.ToFloat64(th.metrics.OperationsCounterVec.WithLabelValues("check_received_coin")))
	require.Equal(t, float64(30), testutil.ToFloat64(th.metrics.MintedStakeCounter))
}
