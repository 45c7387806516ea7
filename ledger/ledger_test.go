package ledger_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/lsthub/ledger"
	"github.com/babylonchain/lsthub/types"
)

const (
	denom = "ukuji"
	alice = "alice"
	valA  = "valA"
	valB  = "valB"
)

func coins(amount int64) sdk.Coins {
	return sdk.NewCoins(sdk.NewInt64Coin(denom, amount))
}

func newLedger(t *testing.T) *ledger.Ledger {
	l := ledger.New(ledger.Config{BondDenom: denom, UnbondingTime: 100})
	require.NoError(t, l.AddValidator(valA))
	require.NoError(t, l.AddValidator(valB))
	require.NoError(t, l.Fund(alice, coins(1000)))
	return l
}

func TestDelegateAndQuery(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Delegate(alice, valB, sdkmath.NewUint(300)))
	require.NoError(t, l.Delegate(alice, valA, sdkmath.NewUint(200)))

	all, err := l.AllDelegations(ctx, alice)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, valA, all[0].Validator)
	require.Equal(t, "200", all[0].Amount.String())
	require.Equal(t, "300", all[1].Amount.String())

	listed, err := l.Delegations(ctx, alice, []string{valB, "valC"})
	require.NoError(t, err)
	require.Equal(t, "300", listed[0].Amount.String())
	require.True(t, listed[1].Amount.IsZero())

	require.Equal(t, int64(500), l.GetBalance(alice, denom).Int64())

	err = l.Delegate(alice, "valC", sdkmath.NewUint(1))
	require.ErrorIs(t, err, ledger.ErrUnknownValidator)
	err = l.Delegate(alice, valA, sdkmath.NewUint(501))
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestRewardsAreWithdrawnOnRedelegate(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Delegate(alice, valA, sdkmath.NewUint(400)))
	require.NoError(t, l.AccrueRewards(valA, coins(40)))
	require.Equal(t, "40ukuji", l.PendingRewards(alice, valA).String())

	require.NoError(t, l.Redelegate(alice, valA, valB, sdkmath.NewUint(100)))
	require.True(t, l.PendingRewards(alice, valA).IsZero())
	require.Equal(t, int64(640), l.GetBalance(alice, denom).Int64())
}

func TestUnbondingMaturesAfterUnbondingTime(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Delegate(alice, valA, sdkmath.NewUint(400)))
	require.NoError(t, l.Undelegate(alice, valA, sdkmath.NewUint(150), 1000))
	require.Equal(t, "150", l.Unbonding(alice).String())

	require.Zero(t, l.ProcessUnbondings(1099))
	require.Equal(t, int64(600), l.GetBalance(alice, denom).Int64())

	require.Equal(t, 1, l.ProcessUnbondings(1100))
	require.Equal(t, int64(750), l.GetBalance(alice, denom).Int64())
	require.True(t, l.Unbonding(alice).IsZero())

	err := l.Undelegate(alice, valA, sdkmath.NewUint(251), 1200)
	require.ErrorIs(t, err, ledger.ErrNoDelegation)
}

func TestSlashCutsDelegationsAndUnbondings(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Delegate(alice, valA, sdkmath.NewUint(500)))
	require.NoError(t, l.Undelegate(alice, valA, sdkmath.NewUint(100), 0))
	require.NoError(t, l.Slash(valA, sdkmath.LegacyNewDecWithPrec(1, 1)))

	d, err := l.Delegation(ctx, alice, valA)
	require.NoError(t, err)
	require.Equal(t, "360", d.Amount.String())
	require.Equal(t, "90", l.Unbonding(alice).String())
	require.Equal(t, int64(950), l.Supply(denom).Int64())
}

func TestTokenFactory(t *testing.T) {
	l := newLedger(t)

	stake, err := l.CreateDenom("hub", "ampKUJI")
	require.NoError(t, err)
	require.Equal(t, "factory/hub/ampKUJI", stake)

	_, err = l.CreateDenom("hub", "ampKUJI")
	require.ErrorIs(t, err, ledger.ErrDenomExists)

	require.ErrorIs(t, l.MintTo(alice, stake, sdkmath.NewUint(5), alice), ledger.ErrNotDenomAdmin)
	require.NoError(t, l.MintTo("hub", stake, sdkmath.NewUint(5), alice))
	require.NoError(t, l.Send(alice, "hub", sdk.NewCoins(sdk.NewInt64Coin(stake, 2))))
	require.NoError(t, l.BurnFrom("hub", stake, sdkmath.NewUint(2)))
	require.Equal(t, int64(3), l.Supply(stake).Int64())
}

func TestSnapshotRestore(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Delegate(alice, valA, sdkmath.NewUint(100)))
	snap := l.Snapshot()

	require.NoError(t, l.Delegate(alice, valA, sdkmath.NewUint(100)))
	require.NoError(t, l.Send(alice, "bob", coins(50)))
	require.NoError(t, l.Undelegate(alice, valA, sdkmath.NewUint(10), 0))

	l.Restore(snap)

	d, err := l.Delegation(ctx, alice, valA)
	require.NoError(t, err)
	require.Equal(t, "100", d.Amount.String())
	require.Equal(t, int64(900), l.GetBalance(alice, denom).Int64())
	require.True(t, l.GetBalance("bob", denom).IsZero())
	require.True(t, l.Unbonding(alice).IsZero())
}

func TestApplyVaultWithdrawAndSwap(t *testing.T) {
	l := newLedger(t)
	const hub = "hub"

	require.NoError(t, l.AddVault(ledger.Vault{
		Address: "bow1", Kind: types.VaultBow, ShareDenom: "bow/lp", Underlying: "uusdc",
		Rate: sdkmath.LegacyNewDec(2),
	}))
	require.NoError(t, l.AddPair(ledger.Pair{
		Address: "pair1", OfferDenom: "uusdc", AskDenom: denom, Price: sdkmath.LegacyNewDecWithPrec(5, 1),
	}))
	l.AddRouter("router")

	require.NoError(t, l.Fund("bow1", sdk.NewCoins(sdk.NewInt64Coin("uusdc", 1000))))
	require.NoError(t, l.Fund("pair1", coins(1000)))
	require.NoError(t, l.Fund(hub, sdk.NewCoins(sdk.NewInt64Coin("bow/lp", 30))))

	require.NoError(t, l.Apply(hub, types.VaultWithdraw{
		Kind: types.VaultBow, Vault: "bow1", Denom: "bow/lp", Amount: sdkmath.NewUint(30),
	}, 0))
	require.Equal(t, int64(60), l.GetBalance(hub, "uusdc").Int64())

	err := l.Apply(hub, types.Swap{
		Router: "router",
		Stages: []types.Stage{{{Pair: "pair1", Denom: "uusdc"}}},
		Offer:  l.GetAllBalances(hub),
	}, 0)
	require.NoError(t, err)
	require.True(t, l.GetBalance(hub, "uusdc").IsZero())
	require.Equal(t, int64(30), l.GetBalance(hub, denom).Int64())

	err = l.Apply(hub, types.SelfCall{Msg: types.MsgReinvest{}}, 0)
	require.ErrorIs(t, err, ledger.ErrUnsupportedEffect)
}
