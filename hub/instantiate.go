package hub

import (
	"context"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

// Instantiate sets up a fresh hub and creates its stake denom.
func (h *Hub) Instantiate(ctx context.Context, msg types.MsgInstantiate) (*types.Response, error) {
	if has, err := h.Owner.Has(ctx); err != nil {
		return nil, err
	} else if has {
		return nil, types.ErrAlreadyInstantiated
	}

	feeConfig := types.FeeConfig{FeeRecipient: msg.FeeRecipient, RewardFee: msg.RewardFee}
	if err := feeConfig.Validate(); err != nil {
		return nil, err
	}
	if msg.EpochPeriod == 0 {
		return nil, errorsmod.Wrap(types.ErrCantBeZero, "epoch_period")
	}
	if msg.UnbondPeriod == 0 {
		return nil, errorsmod.Wrap(types.ErrCantBeZero, "unbond_period")
	}
	for name, value := range map[string]string{
		"owner":          msg.Owner,
		"operator":       msg.Operator,
		"fee_recipient":  msg.FeeRecipient,
		"stake_subdenom": msg.StakeSubdenom,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "%s can't be empty", name)
		}
	}
	if err := sdk.ValidateDenom(msg.BaseDenom); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "base denom: %v", err)
	}

	validators := dedupe(msg.Validators)
	if len(validators) == 0 {
		return nil, types.ErrNoValidators
	}
	for _, v := range validators {
		if err := h.assertValidatorExists(ctx, v); err != nil {
			return nil, err
		}
	}

	stakeDenom := types.StakeDenom(h.self, msg.StakeSubdenom)
	if err := sdk.ValidateDenom(stakeDenom); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "stake denom: %v", err)
	}
	preset := msg.StagesPreset
	if preset == nil {
		preset = []types.Stage{}
	}
	if err := types.ValidateStages(preset, msg.BaseDenom, stakeDenom); err != nil {
		return nil, err
	}

	now := blockTime(ctx)
	params := types.Params{
		BaseDenom:    msg.BaseDenom,
		EpochPeriod:  msg.EpochPeriod,
		UnbondPeriod: msg.UnbondPeriod,
		SwapRouter:   msg.SwapRouter,
	}

	for _, set := range []func() error{
		func() error { return h.Owner.Set(ctx, msg.Owner) },
		func() error { return h.Operator.Set(ctx, msg.Operator) },
		func() error { return h.Params.Set(ctx, params) },
		func() error {
			return h.StakeToken.Set(ctx, types.StakeToken{Denom: stakeDenom, TotalSupply: sdkmath.ZeroUint()})
		},
		func() error { return h.PendingBatch.Set(ctx, types.NewPendingBatch(1, now+msg.EpochPeriod)) },
		func() error { return h.Validators.Set(ctx, validators) },
		func() error { return h.FeeConfig.Set(ctx, feeConfig) },
		func() error { return h.UnlockedCoins.Set(ctx, sdk.NewCoins()) },
		func() error { return h.StagesPreset.Set(ctx, preset) },
		func() error { return h.DelegationStrategy.Set(ctx, types.UniformStrategy()) },
		func() error { return h.AllowDonations.Set(ctx, true) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}

	emit(ctx, types.EventTypeInstantiated,
		sdk.NewAttribute(types.AttributeKeyStakeDenom, stakeDenom),
		sdk.NewAttribute(types.AttributeKeyStartTime, strconv.FormatUint(now+msg.EpochPeriod, 10)),
	)

	return types.NewResponse(types.CreateDenom{Subdenom: msg.StakeSubdenom}), nil
}

func (h *Hub) assertValidatorExists(ctx context.Context, validator string) error {
	exists, err := h.ledger.ValidatorExists(ctx, validator)
	if err != nil {
		return err
	}
	if !exists {
		return errorsmod.Wrapf(types.ErrValidatorNotFound, "%s", validator)
	}
	return nil
}

// dedupe keeps the first occurrence of every entry.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	res := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		res = append(res, item)
	}
	return res
}
