package hub_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/lsthub/types"
)

func TestOwnershipTransfer(t *testing.T) {
	th := setupHub(t)

	_, err := th.exec("mallory", nil, types.MsgTransferOwnership{NewOwner: "mallory"})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotOwner)

	_, err = th.exec("carol", nil, types.MsgAcceptOwnership{})
	require.ErrorIs(t, err, types.ErrNoOwnerProposal)

	_, err = th.exec(owner, nil, types.MsgTransferOwnership{NewOwner: "carol"})
	require.NoError(t, err)
	cfg, err := th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, "carol", cfg.NewOwner)

	_, err = th.exec(owner, nil, types.MsgDropOwnershipProposal{})
	require.NoError(t, err)
	_, err = th.exec("carol", nil, types.MsgAcceptOwnership{})
	require.ErrorIs(t, err, types.ErrNoOwnerProposal)

	_, err = th.exec(owner, nil, types.MsgTransferOwnership{NewOwner: "carol"})
	require.NoError(t, err)
	_, err = th.exec("dave", nil, types.MsgAcceptOwnership{})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotNewOwner)

	_, err = th.exec("carol", nil, types.MsgAcceptOwnership{})
	require.NoError(t, err)
	ev, ok := eventOf(th, types.EventTypeOwnershipTransferred)
	require.True(t, ok)
	require.Equal(t, "carol", attribute(ev, types.AttributeKeyNewOwner))
	require.Equal(t, owner, attribute(ev, types.AttributeKeyPreviousOwner))

	// the previous owner lost its rights
	_, err = th.exec(owner, nil, types.MsgAddValidator{Validator: "valD"})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotOwner)
	_, err = th.exec("carol", nil, types.MsgAddValidator{Validator: "valD"})
	require.NoError(t, err)
}

func TestAddValidator(t *testing.T) {
	th := setupHub(t)

	testCases := []struct {
		name      string
		sender    string
		validator string
		err       error
	}{
		{"not owner", "alice", "valD", types.ErrUnauthorizedNotOwner},
		{"unknown to the ledger", owner, "ghost", types.ErrValidatorNotFound},
		{"already whitelisted", owner, "valB", types.ErrValidatorAlreadyWhitelisted},
		{"added", owner, "valD", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := th.exec(tc.sender, nil, types.MsgAddValidator{Validator: tc.validator})
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
		})
	}

	cfg, err := th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, []string{"valA", "valB", "valC", "valD"}, cfg.Validators)

	// new stake goes to the empty newcomer
	th.bond("alice", 100)
	th.bond("alice", 100)
	th.bond("alice", 100)
	th.bond("alice", 100)
	requireUint(t, 100, th.fake.delegation("valD"))
}

func TestRemoveValidatorRedelegates(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 600)
	th.bond("bob", 300)

	_, err := th.exec(owner, nil, types.MsgRemoveValidator{Validator: "valD"})
	require.ErrorIs(t, err, types.ErrValidatorNotWhitelisted)

	_, err = th.exec(owner, nil, types.MsgRemoveValidator{Validator: "valA"})
	require.NoError(t, err)

	redelegations := effectsOf[types.Redelegate](th)
	require.Len(t, redelegations, 2)
	require.Equal(t, "valB", redelegations[0].Dst)
	requireUint(t, 150, redelegations[0].Amount)
	require.Equal(t, "valC", redelegations[1].Dst)
	requireUint(t, 450, redelegations[1].Amount)

	require.True(t, th.fake.delegation("valA").IsZero())
	requireUint(t, 450, th.fake.delegation("valB"))
	requireUint(t, 450, th.fake.delegation("valC"))

	cfg, err := th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, []string{"valB", "valC"}, cfg.Validators)

	_, err = th.exec(owner, nil, types.MsgRemoveValidator{Validator: "valB"})
	require.NoError(t, err)
	_, err = th.exec(owner, nil, types.MsgRemoveValidator{Validator: "valC"})
	require.ErrorIs(t, err, types.ErrNoValidators)
}

func TestRemoveValidatorUnderDefinedStrategy(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 600)

	strategy := types.DefinedStrategy(
		types.ValidatorShare{Validator: "valA", Weight: 2},
		types.ValidatorShare{Validator: "valB", Weight: 1},
	)
	_, err := th.exec(owner, nil, types.MsgUpdateConfig{DelegationStrategy: &strategy})
	require.NoError(t, err)

	_, err = th.exec(owner, nil, types.MsgRemoveValidator{Validator: "valA"})
	require.NoError(t, err)
	require.Empty(t, effectsOf[types.Redelegate](th))

	cfg, err := th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, []types.ValidatorShare{{Validator: "valB", Weight: 1}}, cfg.DelegationStrategy.Shares)

	// stake left behind still counts
	requireUint(t, 600, th.state().TotalBonded)
}

func TestRebalance(t *testing.T) {
	th := setupHub(t)
	th.bond("alice", 600)
	th.bond("bob", 300)

	_, err := th.exec("alice", nil, types.MsgRebalance{})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotOwner)

	threshold := sdkmath.NewUint(301)
	_, err = th.exec(owner, nil, types.MsgRebalance{MinRedelegation: &threshold})
	require.NoError(t, err)
	require.Empty(t, th.effects)
	ev, ok := eventOf(th, types.EventTypeRebalanced)
	require.True(t, ok)
	require.Equal(t, "0", attribute(ev, types.AttributeKeyTokenMoved))

	_, err = th.exec(owner, nil, types.MsgRebalance{})
	require.NoError(t, err)
	redelegations := effectsOf[types.Redelegate](th)
	require.Len(t, redelegations, 1)
	require.Equal(t, "valA", redelegations[0].Src)
	require.Equal(t, "valC", redelegations[0].Dst)
	requireUint(t, 300, redelegations[0].Amount)
	require.Len(t, effectsOf[types.SelfCall](th), 1)

	for _, v := range validators {
		requireUint(t, 300, th.fake.delegation(v))
	}
}

func TestUpdateConfig(t *testing.T) {
	th := setupHub(t)

	recipient := "treasury"
	fee := sdkmath.LegacyNewDecWithPrec(1, 2)
	newOperator := "bot"
	_, err := th.exec(owner, nil, types.MsgUpdateConfig{
		FeeRecipient: &recipient,
		RewardFee:    &fee,
		Operator:     &newOperator,
	})
	require.NoError(t, err)

	ev, ok := eventOf(th, types.EventTypeConfigUpdated)
	require.True(t, ok)
	require.Len(t, ev.Attributes, 4)

	cfg, err := th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, "treasury", cfg.FeeConfig.FeeRecipient)
	require.True(t, cfg.FeeConfig.RewardFee.Equal(fee))
	require.Equal(t, "bot", cfg.Operator)

	// a later invalid field discards the earlier valid ones
	other := "other"
	unknown := types.DefinedStrategy(types.ValidatorShare{Validator: "ghost", Weight: 1})
	_, err = th.exec(owner, nil, types.MsgUpdateConfig{Operator: &other, DelegationStrategy: &unknown})
	require.ErrorIs(t, err, types.ErrValidatorNotWhitelisted)

	tooHigh := sdkmath.LegacyNewDecWithPrec(2, 1)
	_, err = th.exec(owner, nil, types.MsgUpdateConfig{Operator: &other, RewardFee: &tooHigh})
	require.ErrorIs(t, err, types.ErrRewardFeeTooHigh)

	cfg, err = th.Config(th.ctx())
	require.NoError(t, err)
	require.Equal(t, "bot", cfg.Operator)

	_, err = th.exec(operatorAddr, nil, types.MsgUpdateConfig{Operator: &other})
	require.ErrorIs(t, err, types.ErrUnauthorizedNotOwner)
}
