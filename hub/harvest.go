package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/hub/accounting"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

// Harvest withdraws staking rewards and schedules the rest of the reward
// pipeline as callbacks: claim vault funds, swap, diff balances, reinvest.
func (h *Hub) Harvest(ctx context.Context, info types.MessageInfo, msg types.MsgHarvest) (*types.Response, error) {
	for _, w := range msg.Withdrawals {
		if err := w.Kind.Validate(); err != nil {
			return nil, errorsmod.Wrap(types.ErrInvalidRequest, err.Error())
		}
	}
	if msg.Stages != nil {
		if err := h.assertOperator(ctx, info.Sender); err != nil {
			return nil, err
		}
	}

	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, err
	}
	delegations, err := h.querier.AllDelegations(ctx)
	if err != nil {
		return nil, err
	}

	res := types.NewResponse()
	for _, d := range delegations {
		res.Add(types.WithdrawReward{Validator: d.Validator})
	}
	if len(msg.Withdrawals) > 0 {
		res.Add(types.SelfCall{Msg: types.MsgClaimFunds{Withdrawals: msg.Withdrawals}})
	}
	res.Add(types.SelfCall{Msg: types.MsgSwap{Stages: msg.Stages, Sender: info.Sender}})

	check, err := h.checkReceivedCoinMsg(ctx, params.BaseDenom, stake.Denom, sdkmath.ZeroUint())
	if err != nil {
		return nil, err
	}
	res.Add(check, types.SelfCall{Msg: types.MsgReinvest{}})

	return res, nil
}

// ClaimFunds redeems every requested vault position the hub holds.
func (h *Hub) ClaimFunds(ctx context.Context, msg types.MsgClaimFunds) (*types.Response, error) {
	res := types.NewResponse()
	if len(msg.Withdrawals) == 0 {
		return res, nil
	}

	balances, err := h.ledger.AllBalances(ctx, h.self)
	if err != nil {
		return nil, err
	}
	for _, w := range msg.Withdrawals {
		if err := w.Kind.Validate(); err != nil {
			return nil, errorsmod.Wrap(types.ErrInvalidRequest, err.Error())
		}
		amount := balances.AmountOf(w.Denom)
		if !amount.IsPositive() {
			continue
		}
		res.Add(types.VaultWithdraw{
			Kind:   w.Kind,
			Vault:  w.Vault,
			Denom:  w.Denom,
			Amount: sdkmath.NewUintFromBigInt(amount.BigInt()),
		})
	}
	return res, nil
}

// Swap offers every balance to the router along the given stages, or along
// the preset if none are given. Custom stages are reserved to the operator.
func (h *Hub) Swap(ctx context.Context, msg types.MsgSwap) (*types.Response, error) {
	stages := msg.Stages
	if stages != nil {
		if err := h.assertOperator(ctx, msg.Sender); err != nil {
			return nil, err
		}
	} else {
		preset, err := h.StagesPreset.Get(ctx)
		if err != nil {
			return nil, err
		}
		stages = preset
	}

	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateStages(stages, params.BaseDenom, stake.Denom); err != nil {
		return nil, err
	}

	res := types.NewResponse()
	if len(stages) == 0 {
		return res, nil
	}

	balances, err := h.ledger.AllBalances(ctx, h.self)
	if err != nil {
		return nil, err
	}
	return res.Add(types.Swap{Router: params.SwapRouter, Stages: stages, Offer: balances}), nil
}

// CheckReceivedCoin folds base token received since the snapshot into the
// unlocked pool and burns any stake token the hub received.
func (h *Hub) CheckReceivedCoin(ctx context.Context, msg types.MsgCheckReceivedCoin) (*types.Response, error) {
	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, err
	}
	if msg.Snapshot.Denom != params.BaseDenom || msg.SnapshotStake.Denom != stake.Denom {
		return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "snapshot denoms %s/%s", msg.Snapshot.Denom, msg.SnapshotStake.Denom)
	}

	res := types.NewResponse()
	var attrs []sdk.Attribute

	received, err := h.balanceIncrease(ctx, msg.Snapshot)
	if err != nil {
		return nil, err
	}
	if !received.IsZero() {
		unlocked, err := h.UnlockedCoins.Get(ctx)
		if err != nil {
			return nil, err
		}
		coin := coinOf(params.BaseDenom, received)
		if err := h.UnlockedCoins.Set(ctx, unlocked.Add(coin)); err != nil {
			return nil, err
		}
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyReceivedCoin, coin.String()))
	}

	stray, err := h.balanceIncrease(ctx, msg.SnapshotStake)
	if err != nil {
		return nil, err
	}
	if !stray.IsZero() {
		if stake.TotalSupply, err = types.SafeSub(stake.TotalSupply, stray); err != nil {
			return nil, err
		}
		if err := h.StakeToken.Set(ctx, stake); err != nil {
			return nil, err
		}
		res.Add(types.Burn{Denom: stake.Denom, Amount: stray})
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyStakeBurned, stray.String()))
		h.metrics.StrayStakeBurnedCounter.Add(metrics.AmountToFloat(stray))
		h.logger.Infow("burning stake token received by the hub", "amount", stray.String(), "denom", stake.Denom)
	}

	emit(ctx, types.EventTypeReceived, attrs...)

	return res, nil
}

// balanceIncrease is how much the hub's balance of snapshot's denom grew.
func (h *Hub) balanceIncrease(ctx context.Context, snapshot sdk.Coin) (sdkmath.Uint, error) {
	current, err := h.ledger.Balance(ctx, h.self, snapshot.Denom)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	before, err := types.IntToUint(snapshot.Amount)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	return types.SaturatingSub(current, before), nil
}

// Reinvest delegates the unlocked base token, less the protocol fee.
func (h *Hub) Reinvest(ctx context.Context) (*types.Response, error) {
	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}
	feeConfig, err := h.FeeConfig.Get(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := h.UnlockedCoins.Get(ctx)
	if err != nil {
		return nil, err
	}

	available, err := types.IntToUint(unlocked.AmountOf(params.BaseDenom))
	if err != nil {
		return nil, err
	}
	if available.IsZero() {
		return nil, errorsmod.Wrapf(types.ErrNoTokensAvailable, "%s", params.BaseDenom)
	}

	fee, err := accounting.ProtocolFee(feeConfig.RewardFee, available)
	if err != nil {
		return nil, err
	}
	toBond := types.SaturatingSub(available, fee)

	selection, err := h.selectDelegation(ctx, toBond)
	if err != nil {
		return nil, err
	}

	remaining := sdk.NewCoins()
	for _, c := range unlocked {
		if c.Denom != params.BaseDenom {
			remaining = remaining.Add(c)
		}
	}
	if err := h.UnlockedCoins.Set(ctx, remaining); err != nil {
		return nil, err
	}

	res := types.NewResponse(selection.Delegation.DelegateEffect())
	if !fee.IsZero() {
		res.Add(types.Transfer{
			To:    feeConfig.FeeRecipient,
			Coins: sdk.NewCoins(coinOf(params.BaseDenom, fee)),
		})
		h.metrics.ProtocolFeeCounter.Add(metrics.AmountToFloat(fee))
	}

	emit(ctx, types.EventTypeHarvested,
		sdk.NewAttribute(types.AttributeKeyTokenBonded, toBond.String()),
		sdk.NewAttribute(types.AttributeKeyProtocolFee, fee.String()),
	)

	return res, nil
}
