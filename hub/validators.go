package hub

import (
	"context"
	"slices"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/hub/rebalancer"
	"github.com/babylonchain/lsthub/types"
)

// Rebalance moves stake from over-delegated to under-delegated validators,
// skipping moves smaller than the optional minimum.
func (h *Hub) Rebalance(ctx context.Context, info types.MessageInfo, msg types.MsgRebalance) (*types.Response, error) {
	if err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	validators, err := h.Validators.Get(ctx)
	if err != nil {
		return nil, err
	}
	delegations, err := h.querier.Delegations(ctx, validators)
	if err != nil {
		return nil, err
	}

	redelegations, err := rebalancer.RedelegationsForRebalancing(delegations)
	if err != nil {
		return nil, err
	}
	threshold := sdkmath.ZeroUint()
	if msg.MinRedelegation != nil {
		threshold = *msg.MinRedelegation
	}
	redelegations = rebalancer.FilterRedelegations(redelegations, threshold)

	res, moved, err := h.redelegate(ctx, redelegations)
	if err != nil {
		return nil, err
	}

	emit(ctx, types.EventTypeRebalanced, sdk.NewAttribute(types.AttributeKeyTokenMoved, moved.String()))

	return res, nil
}

// AddValidator whitelists a validator known to the ledger.
func (h *Hub) AddValidator(ctx context.Context, info types.MessageInfo, msg types.MsgAddValidator) (*types.Response, error) {
	if err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	if err := h.assertValidatorExists(ctx, msg.Validator); err != nil {
		return nil, err
	}
	validators, err := h.Validators.Get(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(validators, msg.Validator) {
		return nil, errorsmod.Wrapf(types.ErrValidatorAlreadyWhitelisted, "%s", msg.Validator)
	}
	if err := h.Validators.Set(ctx, append(validators, msg.Validator)); err != nil {
		return nil, err
	}

	emit(ctx, types.EventTypeValidatorAdded, sdk.NewAttribute(types.AttributeKeyValidator, msg.Validator))

	return types.NewResponse(), nil
}

// RemoveValidator takes a validator off the whitelist. Under the uniform
// strategy its stake is spread over the remaining validators; under the
// defined strategy it keeps its stake and loses its share.
func (h *Hub) RemoveValidator(ctx context.Context, info types.MessageInfo, msg types.MsgRemoveValidator) (*types.Response, error) {
	if err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	validators, err := h.Validators.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(validators, msg.Validator) {
		return nil, errorsmod.Wrapf(types.ErrValidatorNotWhitelisted, "%s", msg.Validator)
	}
	if len(validators) == 1 {
		return nil, errorsmod.Wrap(types.ErrNoValidators, "can't remove the last validator")
	}
	remaining := slices.DeleteFunc(slices.Clone(validators), func(v string) bool { return v == msg.Validator })
	if err := h.Validators.Set(ctx, remaining); err != nil {
		return nil, err
	}

	strategy, err := h.DelegationStrategy.Get(ctx)
	if err != nil {
		return nil, err
	}

	res := types.NewResponse()
	switch strategy.Kind {
	case types.StrategyDefined:
		strategy.Shares = slices.DeleteFunc(strategy.Shares, func(s types.ValidatorShare) bool {
			return s.Validator == msg.Validator
		})
		if err := h.DelegationStrategy.Set(ctx, strategy); err != nil {
			return nil, err
		}
	default:
		removed, err := h.ledger.Delegation(ctx, h.self, msg.Validator)
		if err != nil {
			return nil, err
		}
		current, err := h.querier.Delegations(ctx, remaining)
		if err != nil {
			return nil, err
		}
		redelegations, err := rebalancer.RedelegationsForRemoval(removed, current)
		if err != nil {
			return nil, err
		}
		if res, _, err = h.redelegate(ctx, redelegations); err != nil {
			return nil, err
		}
	}

	emit(ctx, types.EventTypeValidatorRemoved, sdk.NewAttribute(types.AttributeKeyValidator, msg.Validator))

	return res, nil
}

// redelegate turns moves into effects, followed by a balance check when any
// move happens since redelegating withdraws pending rewards.
func (h *Hub) redelegate(ctx context.Context, redelegations []types.Redelegation) (*types.Response, sdkmath.Uint, error) {
	res := types.NewResponse()
	moved := sdkmath.ZeroUint()
	if len(redelegations) == 0 {
		return res, moved, nil
	}
	for _, rd := range redelegations {
		var err error
		if moved, err = types.SafeAdd(moved, rd.Amount); err != nil {
			return nil, moved, err
		}
		res.Add(rd.Effect())
	}

	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, moved, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, moved, err
	}
	check, err := h.checkReceivedCoinMsg(ctx, params.BaseDenom, stake.Denom, sdkmath.ZeroUint())
	if err != nil {
		return nil, moved, err
	}
	return res.Add(check), moved, nil
}
