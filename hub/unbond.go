package hub

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/hub/accounting"
	"github.com/babylonchain/lsthub/hub/rebalancer"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

// QueueUnbond adds the attached stake token to the pending batch, submitting
// the batch right away if it is due.
func (h *Hub) QueueUnbond(ctx context.Context, info types.MessageInfo, msg types.MsgQueueUnbond) (*types.Response, error) {
	receiver := msg.Receiver
	if receiver == "" {
		receiver = info.Sender
	}

	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, err
	}
	shares, err := parseReceivedFund(info.Funds, stake.Denom)
	if err != nil {
		return nil, err
	}

	pending, err := h.PendingBatch.Get(ctx)
	if err != nil {
		return nil, err
	}
	if pending.SharesToBurn, err = types.SafeAdd(pending.SharesToBurn, shares); err != nil {
		return nil, err
	}
	if err := h.PendingBatch.Set(ctx, pending); err != nil {
		return nil, err
	}

	key := collections.Join(pending.ID, receiver)
	request, err := h.UnbondRequests.Get(ctx, key)
	switch {
	case errors.Is(err, collections.ErrNotFound):
		request = types.UnbondRequest{BatchID: pending.ID, User: receiver, Shares: sdkmath.ZeroUint()}
	case err != nil:
		return nil, err
	}
	if request.Shares, err = types.SafeAdd(request.Shares, shares); err != nil {
		return nil, err
	}
	if err := h.UnbondRequests.Set(ctx, key, request); err != nil {
		return nil, err
	}

	res := types.NewResponse()
	startTime := strconv.FormatUint(pending.EstUnbondStartTime, 10)
	if blockTime(ctx) >= pending.EstUnbondStartTime {
		startTime = types.AttributeValueImmediateTime
		res.Add(types.SelfCall{Msg: types.MsgSubmitBatch{}})
	}

	emit(ctx, types.EventTypeUnbondQueued,
		sdk.NewAttribute(types.AttributeKeyStartTime, startTime),
		sdk.NewAttribute(types.AttributeKeyID, strconv.FormatUint(pending.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyStakeToBurn, shares.String()),
	)

	return res, nil
}

// SubmitBatch turns the pending batch into an unbonding batch and
// undelegates its base token value.
func (h *Hub) SubmitBatch(ctx context.Context) (*types.Response, error) {
	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := h.PendingBatch.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := blockTime(ctx)
	if now < pending.EstUnbondStartTime {
		return nil, errorsmod.Wrapf(types.ErrSubmitBatchTooEarly, "submit batch after %d", pending.EstUnbondStartTime)
	}

	delegations, err := h.querier.AllDelegations(ctx)
	if err != nil {
		return nil, err
	}
	toUnbond, err := accounting.UnbondAmount(stake.TotalSupply, pending.SharesToBurn, delegations)
	if err != nil {
		return nil, err
	}

	res := types.NewResponse()
	if !toUnbond.IsZero() {
		undelegations, err := rebalancer.Undelegations(toUnbond, delegations)
		if err != nil {
			return nil, err
		}
		for _, u := range undelegations {
			res.Add(u.Effect())
		}
	}

	batch := types.Batch{
		ID:               pending.ID,
		Reconciled:       false,
		TotalShares:      pending.SharesToBurn,
		UnclaimedAmount:  toUnbond,
		EstUnbondEndTime: now + params.UnbondPeriod,
	}
	if err := h.Batches.Set(ctx, batch.ID, batch); err != nil {
		return nil, err
	}
	if err := h.PendingBatch.Set(ctx, types.NewPendingBatch(pending.ID+1, now+params.EpochPeriod)); err != nil {
		return nil, err
	}

	if stake.TotalSupply, err = types.SafeSub(stake.TotalSupply, pending.SharesToBurn); err != nil {
		return nil, err
	}
	if err := h.StakeToken.Set(ctx, stake); err != nil {
		return nil, err
	}
	if !pending.SharesToBurn.IsZero() {
		res.Add(types.Burn{Denom: stake.Denom, Amount: pending.SharesToBurn})
	}

	check, err := h.checkReceivedCoinMsg(ctx, params.BaseDenom, stake.Denom, sdkmath.ZeroUint())
	if err != nil {
		return nil, err
	}
	res.Add(check)

	emit(ctx, types.EventTypeUnbondSubmitted,
		sdk.NewAttribute(types.AttributeKeyID, strconv.FormatUint(batch.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyTokenUnbonded, toUnbond.String()),
		sdk.NewAttribute(types.AttributeKeyStakeBurned, pending.SharesToBurn.String()),
	)

	h.metrics.BurnedStakeCounter.Add(metrics.AmountToFloat(pending.SharesToBurn))
	h.metrics.SubmittedBatchGauge.Set(float64(batch.ID))

	return res, nil
}

// WithdrawUnbonded refunds the sender's share of every reconciled batch that
// finished unbonding.
func (h *Hub) WithdrawUnbonded(ctx context.Context, info types.MessageInfo, msg types.MsgWithdrawUnbonded) (*types.Response, error) {
	user := info.Sender
	receiver := msg.Receiver
	if receiver == "" {
		receiver = user
	}

	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}

	keys, err := h.requestKeysOf(ctx, user)
	if err != nil {
		return nil, err
	}

	now := blockTime(ctx)
	refund := sdkmath.ZeroUint()
	var ids []string
	for _, key := range keys {
		batch, err := h.Batches.Get(ctx, key.K1())
		if errors.Is(err, collections.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		if !batch.Reconciled || batch.EstUnbondEndTime >= now {
			continue
		}

		request, err := h.UnbondRequests.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		amount, err := accounting.MulRatio(batch.UnclaimedAmount, request.Shares, batch.TotalShares)
		if err != nil {
			return nil, err
		}
		if refund, err = types.SafeAdd(refund, amount); err != nil {
			return nil, err
		}
		if batch.TotalShares, err = types.SafeSub(batch.TotalShares, request.Shares); err != nil {
			return nil, err
		}
		if batch.UnclaimedAmount, err = types.SafeSub(batch.UnclaimedAmount, amount); err != nil {
			return nil, err
		}

		if batch.TotalShares.IsZero() {
			err = h.Batches.Remove(ctx, batch.ID)
		} else {
			err = h.Batches.Set(ctx, batch.ID, batch)
		}
		if err != nil {
			return nil, err
		}
		if err := h.UnbondRequests.Remove(ctx, key); err != nil {
			return nil, err
		}
		ids = append(ids, strconv.FormatUint(batch.ID, 10))
	}

	if refund.IsZero() {
		return nil, errorsmod.Wrap(types.ErrCantBeZero, "withdrawable amount")
	}

	emit(ctx, types.EventTypeUnbondedWithdrawn,
		sdk.NewAttribute(types.AttributeKeyIDs, strings.Join(ids, ",")),
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyTokenRefunded, refund.String()),
	)

	h.metrics.RefundedTokenCounter.Add(metrics.AmountToFloat(refund))

	return types.NewResponse(types.Transfer{
		To:    receiver,
		Coins: sdk.NewCoins(coinOf(params.BaseDenom, refund)),
	}), nil
}

// requestKeysOf lists the keys of user's unbond requests in batch id order.
func (h *Hub) requestKeysOf(ctx context.Context, user string) ([]RequestKey, error) {
	iter, err := h.UnbondRequests.Indexes.User.MatchExact(ctx, user)
	if err != nil {
		return nil, err
	}
	return iter.PrimaryKeys()
}
