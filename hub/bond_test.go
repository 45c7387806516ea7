package hub_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/lsthub/types"
)

func TestBondPicksLeastDelegatedValidator(t *testing.T) {
	th := setupHub(t)

	steps := []struct {
		sender    string
		amount    uint64
		validator string
	}{
		{"alice", 300, "valA"},
		{"bob", 600, "valB"},
		{"carol", 100, "valC"},
		{"dave", 200, "valC"},
		// valA and valC tie at 300, the first one wins
		{"erin", 1, "valA"},
	}
	for _, s := range steps {
		th.bond(s.sender, s.amount)
		delegates := effectsOf[types.Delegate](th)
		require.Len(t, delegates, 1)
		require.Equal(t, s.validator, delegates[0].Validator, s.sender)
		requireUint(t, s.amount, delegates[0].Amount)
	}

	requireUint(t, 1201, th.stakeSupply())
	state := th.state()
	requireUint(t, 1201, state.TotalBonded)
	require.True(t, state.ExchangeRate.Equal(sdkmath.LegacyOneDec()))
}

func TestBondMintsAtExchangeRate(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 1000)

	// delegations grew without new shares
	th.fake.delegations["valA"] = sdkmath.NewUint(1100)

	res, err := th.exec("bob", coins(110, baseDenom), types.MsgBond{Receiver: "carol"})
	require.NoError(t, err)
	require.Len(t, res.Effects, 3)

	mints := effectsOf[types.Mint](th)
	require.Len(t, mints, 1)
	require.Equal(t, "carol", mints[0].Recipient)
	require.Equal(t, stakeDenom, mints[0].Denom)
	requireUint(t, 100, mints[0].Amount)

	ev, ok := eventOf(th, types.EventTypeBonded)
	require.True(t, ok)
	require.Equal(t, "carol", attribute(ev, types.AttributeKeyReceiver))
	require.Equal(t, "110", attribute(ev, types.AttributeKeyTokenBonded))
	require.Equal(t, "100", attribute(ev, types.AttributeKeyStakeMinted))

	requireUint(t, 1100, th.stakeSupply())
}

func TestBondRejectsInvalidFunds(t *testing.T) {
	th := setupHub(t)

	testCases := []struct {
		name  string
		funds sdk.Coins
	}{
		{"no funds", nil},
		{"wrong denom", coins(10, "uatom")},
		{"several coins", coins(10, baseDenom).Add(sdk.NewInt64Coin("uatom", 5))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := th.exec("alice", tc.funds, types.MsgBond{})
			require.ErrorIs(t, err, types.ErrInvalidFunds)
		})
	}
	require.True(t, th.stakeSupply().IsZero())
}

func TestDonate(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 1000)

	_, err := th.exec("bob", coins(100, baseDenom), types.MsgDonate{})
	require.NoError(t, err)
	require.Empty(t, effectsOf[types.Mint](th))
	require.Len(t, effectsOf[types.Delegate](th), 1)

	state := th.state()
	requireUint(t, 1000, state.TotalStake)
	requireUint(t, 1100, state.TotalBonded)
	require.True(t, state.ExchangeRate.Equal(sdkmath.LegacyMustNewDecFromStr("1.1")))

	disabled := false
	_, err = th.exec(owner, nil, types.MsgUpdateConfig{AllowDonations: &disabled})
	require.NoError(t, err)

	_, err = th.exec("bob", coins(100, baseDenom), types.MsgDonate{})
	require.ErrorIs(t, err, types.ErrDonationsDisabled)
	requireUint(t, 1100, th.fake.bonded())
}

func TestDefinedStrategyKeepsToStakedValidators(t *testing.T) {
	th := setupHub(t)

	strategy := types.DefinedStrategy(
		types.ValidatorShare{Validator: "valA", Weight: 1},
		types.ValidatorShare{Validator: "valB", Weight: 1},
	)
	_, err := th.exec(owner, nil, types.MsgUpdateConfig{DelegationStrategy: &strategy})
	require.NoError(t, err)

	// nothing staked yet: the first whitelisted validator
	th.bond("alice", 100)
	require.Equal(t, "valA", effectsOf[types.Delegate](th)[0].Validator)

	th.fake.delegations["valB"] = sdkmath.NewUint(50)
	th.bond("alice", 60)
	require.Equal(t, "valB", effectsOf[types.Delegate](th)[0].Validator)

	th.bond("alice", 10)
	require.Equal(t, "valA", effectsOf[types.Delegate](th)[0].Validator)
	require.True(t, th.fake.delegation("valC").IsZero())
}

func TestStrayStakeTokenIsBurned(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 1000)

	// stake token sent to the hub while the call was running
	th.fake.credit(stakeDenom, sdkmath.NewUint(100))
	_, err := th.exec(hubAddr, nil, types.MsgCheckReceivedCoin{
		Snapshot:      sdk.NewInt64Coin(baseDenom, 0),
		SnapshotStake: sdk.NewInt64Coin(stakeDenom, 0),
	})
	require.NoError(t, err)

	burns := effectsOf[types.Burn](th)
	require.Len(t, burns, 1)
	requireUint(t, 100, burns[0].Amount)
	requireUint(t, 900, th.stakeSupply())

	ev, ok := eventOf(th, types.EventTypeReceived)
	require.True(t, ok)
	require.Equal(t, "100", attribute(ev, types.AttributeKeyStakeBurned))
}

func TestReceivedBaseTokenIsUnlocked(t *testing.T) {
	th := setupHub(t)

	th.fake.credit(baseDenom, sdkmath.NewUint(42))
	_, err := th.exec(hubAddr, nil, types.MsgCheckReceivedCoin{
		Snapshot:      sdk.NewInt64Coin(baseDenom, 0),
		SnapshotStake: sdk.NewInt64Coin(stakeDenom, 0),
	})
	require.NoError(t, err)

	state := th.state()
	require.Equal(t, "42ukuji", state.UnlockedCoins.String())
	requireUint(t, 42, state.Available)

	_, err = th.exec(hubAddr, nil, types.MsgCheckReceivedCoin{
		Snapshot:      sdk.NewInt64Coin("uatom", 0),
		SnapshotStake: sdk.NewInt64Coin(stakeDenom, 0),
	})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}
