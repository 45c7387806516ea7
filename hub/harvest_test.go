package hub_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/lsthub/types"
)

const (
	vaultShare = "factory/vault-1/share"
	usdc       = "uusdc"
)

func setupBonded(t *testing.T) *testHub {
	th := setupHub(t)
	th.bond("alice", 1000)
	th.bond("bob", 500)
	return th
}

func TestHarvestReinvestsRewards(t *testing.T) {
	th := setupBonded(t)
	th.fake.reward("valA", 100)
	th.fake.reward("valB", 40)

	res, err := th.exec("anyone", nil, types.MsgHarvest{})
	require.NoError(t, err)

	var kinds []string
	for _, e := range res.Effects {
		kinds = append(kinds, e.EffectType())
	}
	require.Equal(t, []string{"withdraw_reward", "withdraw_reward", "self_call", "self_call", "self_call"}, kinds)
	require.Empty(t, effectsOf[types.Swap](th))

	delegates := effectsOf[types.Delegate](th)
	require.Len(t, delegates, 1)
	require.Equal(t, "valC", delegates[0].Validator)
	requireUint(t, 133, delegates[0].Amount)
	requireTransfer(t, th, feeRecipient, "7ukuji")

	ev, ok := eventOf(th, types.EventTypeHarvested)
	require.True(t, ok)
	require.Equal(t, "133", attribute(ev, types.AttributeKeyTokenBonded))
	require.Equal(t, "7", attribute(ev, types.AttributeKeyProtocolFee))
	ev, ok = eventOf(th, types.EventTypeReceived)
	require.True(t, ok)
	require.Equal(t, "140ukuji", attribute(ev, types.AttributeKeyReceivedCoin))

	state := th.state()
	require.True(t, state.UnlockedCoins.IsZero())
	requireUint(t, 1633, state.TotalBonded)
	requireUint(t, 1500, state.TotalStake)
}

func TestHarvestWithoutRewardsFails(t *testing.T) {
	th := setupBonded(t)

	_, err := th.exec("anyone", nil, types.MsgHarvest{})
	require.ErrorIs(t, err, types.ErrNoTokensAvailable)
	require.Equal(t, types.KindState, types.KindOf(err))
}

func TestHarvestClaimsVaultFunds(t *testing.T) {
	th := setupBonded(t)
	th.fake.credit(vaultShare, sdkmath.NewUint(50))

	_, err := th.exec("anyone", nil, types.MsgHarvest{
		Withdrawals: []types.Withdrawal{
			{Kind: types.VaultBow, Vault: "vault-1", Denom: vaultShare},
			// nothing held, skipped
			{Kind: types.VaultBlackWhale, Vault: "vault-2", Denom: "factory/vault-2/share"},
		},
	})
	require.NoError(t, err)

	withdrawals := effectsOf[types.VaultWithdraw](th)
	require.Len(t, withdrawals, 1)
	require.Equal(t, "vault-1", withdrawals[0].Vault)
	requireUint(t, 50, withdrawals[0].Amount)

	// 50 claimed, 2 of it to the fee recipient
	requireTransfer(t, th, feeRecipient, "2ukuji")
	requireUint(t, 48, th.fake.delegation("valC"))

	_, err = th.exec("anyone", nil, types.MsgHarvest{
		Withdrawals: []types.Withdrawal{{Kind: "moon", Vault: "vault-3", Denom: vaultShare}},
	})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestHarvestCustomStages(t *testing.T) {
	th := setupBonded(t)
	th.fake.credit(usdc, sdkmath.NewUint(20))
	stages := []types.Stage{{{Pair: "usdc-kuji", Denom: usdc}}}

	_, err := th.exec("alice", nil, types.MsgHarvest{Stages: stages})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotOperator)

	_, err = th.exec(operatorAddr, nil, types.MsgHarvest{Stages: []types.Stage{{{Pair: "p", Denom: baseDenom}}}})
	require.ErrorIs(t, err, types.ErrSwapFromNotAllowed)
	_, err = th.exec(operatorAddr, nil, types.MsgHarvest{Stages: []types.Stage{{{Pair: "p", Denom: stakeDenom}}}})
	require.ErrorIs(t, err, types.ErrSwapFromNotAllowed)

	_, err = th.exec(operatorAddr, nil, types.MsgHarvest{Stages: stages})
	require.NoError(t, err)

	swaps := effectsOf[types.Swap](th)
	require.Len(t, swaps, 1)
	require.Equal(t, "router", swaps[0].Router)
	require.Equal(t, stages, swaps[0].Stages)
	require.Equal(t, "20uusdc", swaps[0].Offer.String())
	requireUint(t, 19, th.fake.delegation("valC"))
}

func TestSwapCallbackChecksOriginalSender(t *testing.T) {
	th := setupBonded(t)

	_, err := th.exec(hubAddr, nil, types.MsgSwap{Stages: []types.Stage{}, Sender: "alice"})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotOperator)

	// the preset route is open to anyone
	_, err = th.exec(hubAddr, nil, types.MsgSwap{Sender: "alice"})
	require.NoError(t, err)
}

func TestHarvestUsesStagesPreset(t *testing.T) {
	th := setupBonded(t)
	preset := []types.Stage{{{Pair: "usdc-kuji", Denom: usdc}}}
	_, err := th.exec(owner, nil, types.MsgUpdateConfig{StagesPreset: preset})
	require.NoError(t, err)

	th.fake.credit(usdc, sdkmath.NewUint(100))
	_, err = th.exec("anyone", nil, types.MsgHarvest{})
	require.NoError(t, err)

	swaps := effectsOf[types.Swap](th)
	require.Len(t, swaps, 1)
	require.Equal(t, preset, swaps[0].Stages)
	requireTransfer(t, th, feeRecipient, "5ukuji")
}
