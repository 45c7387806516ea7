package hub

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

// Handle executes msg on behalf of info.Sender. State writes and events of
// the call are committed only if it succeeds.
func (h *Hub) Handle(ctx context.Context, info types.MessageInfo, msg types.Msg) (*types.Response, error) {
	if _, ok := msg.(types.Callback); ok {
		if err := h.assertSelf(info.Sender); err != nil {
			h.recordFailure(msg, err)
			return nil, err
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cms := sdkCtx.MultiStore().CacheMultiStore()
	em := sdk.NewEventManager()
	cacheCtx := sdkCtx.WithMultiStore(cms).WithEventManager(em)

	start := time.Now()
	res, err := h.dispatch(cacheCtx, info, msg)
	if err != nil {
		h.recordFailure(msg, err)
		h.logger.Debugw("hub operation rejected", "type", msg.Type(), "sender", info.Sender, "error", err)
		return nil, err
	}

	cms.Write()
	sdkCtx.EventManager().EmitEvents(em.Events())

	h.metrics.OperationsCounterVec.WithLabelValues(msg.Type()).Inc()
	h.logger.Debugw("hub operation executed", "type", msg.Type(), "sender", info.Sender,
		"effects", len(res.Effects), "took", time.Since(start))

	return res, nil
}

func (h *Hub) recordFailure(msg types.Msg, err error) {
	h.metrics.FailedOperationsCounter.WithLabelValues(msg.Type(), types.KindOf(err).String()).Inc()
}

func (h *Hub) dispatch(ctx sdk.Context, info types.MessageInfo, msg types.Msg) (*types.Response, error) {
	if _, ok := msg.(types.MsgInstantiate); !ok {
		if has, err := h.Owner.Has(ctx); err != nil {
			return nil, err
		} else if !has {
			return nil, errorsmod.Wrap(types.ErrInvalidRequest, "hub is not instantiated")
		}
	}

	switch m := msg.(type) {
	case types.MsgInstantiate:
		return h.Instantiate(ctx, m)
	case types.MsgBond:
		return h.Bond(ctx, info, m)
	case types.MsgDonate:
		return h.Donate(ctx, info)
	case types.MsgQueueUnbond:
		return h.QueueUnbond(ctx, info, m)
	case types.MsgSubmitBatch:
		return h.SubmitBatch(ctx)
	case types.MsgReconcile:
		return h.Reconcile(ctx)
	case types.MsgWithdrawUnbonded:
		return h.WithdrawUnbonded(ctx, info, m)
	case types.MsgHarvest:
		return h.Harvest(ctx, info, m)
	case types.MsgRebalance:
		return h.Rebalance(ctx, info, m)
	case types.MsgAddValidator:
		return h.AddValidator(ctx, info, m)
	case types.MsgRemoveValidator:
		return h.RemoveValidator(ctx, info, m)
	case types.MsgTransferOwnership:
		return h.TransferOwnership(ctx, info, m)
	case types.MsgDropOwnershipProposal:
		return h.DropOwnershipProposal(ctx, info)
	case types.MsgAcceptOwnership:
		return h.AcceptOwnership(ctx, info)
	case types.MsgUpdateConfig:
		return h.UpdateConfig(ctx, info, m)
	case types.MsgClaimFunds:
		return h.ClaimFunds(ctx, m)
	case types.MsgSwap:
		return h.Swap(ctx, m)
	case types.MsgCheckReceivedCoin:
		return h.CheckReceivedCoin(ctx, m)
	case types.MsgReinvest:
		return h.Reinvest(ctx)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnknownMsg, "%T", msg)
	}
}
