package hub

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/hub/accounting"
	"github.com/babylonchain/lsthub/hub/selector"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

// Bond delegates the attached base token and mints stake token to the receiver.
func (h *Hub) Bond(ctx context.Context, info types.MessageInfo, msg types.MsgBond) (*types.Response, error) {
	receiver := msg.Receiver
	if receiver == "" {
		receiver = info.Sender
	}
	return h.bond(ctx, info, receiver, false)
}

// Donate delegates the attached base token without minting, raising the exchange rate.
func (h *Hub) Donate(ctx context.Context, info types.MessageInfo) (*types.Response, error) {
	return h.bond(ctx, info, info.Sender, true)
}

func (h *Hub) bond(ctx context.Context, info types.MessageInfo, receiver string, donate bool) (*types.Response, error) {
	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := parseReceivedFund(info.Funds, params.BaseDenom)
	if err != nil {
		return nil, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, err
	}

	selection, err := h.selectDelegation(ctx, amount)
	if err != nil {
		return nil, err
	}

	minted := sdkmath.ZeroUint()
	if donate {
		allowed, err := h.AllowDonations.Get(ctx)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return nil, err
		}
		if err == nil && !allowed {
			return nil, types.ErrDonationsDisabled
		}
	} else {
		minted, err = accounting.MintAmount(stake.TotalSupply, amount, selection.Snapshot)
		if err != nil {
			return nil, err
		}
		if minted.IsZero() {
			return nil, errorsmod.Wrap(types.ErrCantBeZero, "stake token to mint")
		}
		if stake.TotalSupply, err = types.SafeAdd(stake.TotalSupply, minted); err != nil {
			return nil, err
		}
		if err := h.StakeToken.Set(ctx, stake); err != nil {
			return nil, err
		}
	}

	res := types.NewResponse(selection.Delegation.DelegateEffect())
	if !donate {
		res.Add(types.Mint{Denom: stake.Denom, Amount: minted, Recipient: receiver})
	}

	check, err := h.checkReceivedCoinMsg(ctx, params.BaseDenom, stake.Denom, amount)
	if err != nil {
		return nil, err
	}
	res.Add(check)

	emit(ctx, types.EventTypeBonded,
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyTokenBonded, amount.String()),
		sdk.NewAttribute(types.AttributeKeyStakeMinted, minted.String()),
	)

	if !donate {
		h.metrics.MintedStakeCounter.Add(metrics.AmountToFloat(minted))
	}

	return res, nil
}

// selectDelegation picks the validator for amount under the current strategy.
func (h *Hub) selectDelegation(ctx context.Context, amount sdkmath.Uint) (selector.Selection, error) {
	strategy, err := h.DelegationStrategy.Get(ctx)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return selector.Selection{}, err
		}
		strategy = types.UniformStrategy()
	}
	validators, err := h.Validators.Get(ctx)
	if err != nil {
		return selector.Selection{}, err
	}
	return selector.Select(ctx, h.querier, strategy, validators, amount)
}

// checkReceivedCoinMsg snapshots the hub's balances, minus offset of base
// token that arrived with the current call, for a later diff.
func (h *Hub) checkReceivedCoinMsg(ctx context.Context, baseDenom, stakeDenom string, offset sdkmath.Uint) (types.SelfCall, error) {
	base, err := h.ledger.Balance(ctx, h.self, baseDenom)
	if err != nil {
		return types.SelfCall{}, err
	}
	base, err = types.SafeSub(base, offset)
	if err != nil {
		return types.SelfCall{}, err
	}
	stake, err := h.ledger.Balance(ctx, h.self, stakeDenom)
	if err != nil {
		return types.SelfCall{}, err
	}
	return types.SelfCall{Msg: types.MsgCheckReceivedCoin{
		Snapshot:      coinOf(baseDenom, base),
		SnapshotStake: coinOf(stakeDenom, stake),
	}}, nil
}
