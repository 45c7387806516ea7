package hub

import (
	"context"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

// UpdateConfig applies the fields set in msg. Either all of them are applied
// or, on a validation error, none.
func (h *Hub) UpdateConfig(ctx context.Context, info types.MessageInfo, msg types.MsgUpdateConfig) (*types.Response, error) {
	if err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}

	var updated []string

	if msg.FeeRecipient != nil || msg.RewardFee != nil {
		feeConfig, err := h.FeeConfig.Get(ctx)
		if err != nil {
			return nil, err
		}
		if msg.FeeRecipient != nil {
			if strings.TrimSpace(*msg.FeeRecipient) == "" {
				return nil, errorsmod.Wrap(types.ErrInvalidRequest, "fee recipient can't be empty")
			}
			feeConfig.FeeRecipient = *msg.FeeRecipient
			updated = append(updated, "fee_recipient")
		}
		if msg.RewardFee != nil {
			feeConfig.RewardFee = *msg.RewardFee
			updated = append(updated, "reward_fee")
		}
		if err := feeConfig.Validate(); err != nil {
			return nil, err
		}
		if err := h.FeeConfig.Set(ctx, feeConfig); err != nil {
			return nil, err
		}
	}

	if msg.Operator != nil {
		if strings.TrimSpace(*msg.Operator) == "" {
			return nil, errorsmod.Wrap(types.ErrInvalidRequest, "operator can't be empty")
		}
		if err := h.Operator.Set(ctx, *msg.Operator); err != nil {
			return nil, err
		}
		updated = append(updated, "operator")
	}

	if msg.StagesPreset != nil {
		params, err := h.Params.Get(ctx)
		if err != nil {
			return nil, err
		}
		stake, err := h.StakeToken.Get(ctx)
		if err != nil {
			return nil, err
		}
		if err := types.ValidateStages(msg.StagesPreset, params.BaseDenom, stake.Denom); err != nil {
			return nil, err
		}
		if err := h.StagesPreset.Set(ctx, msg.StagesPreset); err != nil {
			return nil, err
		}
		updated = append(updated, "stages_preset")
	}

	if msg.DelegationStrategy != nil {
		validators, err := h.Validators.Get(ctx)
		if err != nil {
			return nil, err
		}
		if err := msg.DelegationStrategy.Validate(validators); err != nil {
			return nil, err
		}
		if err := h.DelegationStrategy.Set(ctx, *msg.DelegationStrategy); err != nil {
			return nil, err
		}
		updated = append(updated, "delegation_strategy")
	}

	if msg.AllowDonations != nil {
		if err := h.AllowDonations.Set(ctx, *msg.AllowDonations); err != nil {
			return nil, err
		}
		updated = append(updated, "allow_donations")
	}

	attrs := make([]sdk.Attribute, 0, len(updated))
	for _, field := range updated {
		attrs = append(attrs, sdk.NewAttribute("updated", field))
	}
	emit(ctx, types.EventTypeConfigUpdated, attrs...)

	return types.NewResponse(), nil
}
