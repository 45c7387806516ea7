package hub

import (
	"context"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/hub/reconciler"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

// Reconcile settles every matured batch against the base token the hub
// actually holds, deducting any shortfall from those batches.
func (h *Hub) Reconcile(ctx context.Context) (*types.Response, error) {
	params, err := h.Params.Get(ctx)
	if err != nil {
		return nil, err
	}

	unreconciled, err := h.unreconciledBatches(ctx)
	if err != nil {
		return nil, err
	}
	candidates := reconciler.Candidates(unreconciled, blockTime(ctx))
	if len(candidates) == 0 {
		return types.NewResponse(), nil
	}

	unlockedCoins, err := h.UnlockedCoins.Get(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := types.IntToUint(unlockedCoins.AmountOf(params.BaseDenom))
	if err != nil {
		return nil, err
	}
	actual, err := h.ledger.Balance(ctx, h.self, params.BaseDenom)
	if err != nil {
		return nil, err
	}

	result, err := reconciler.Reconcile(candidates, unlocked, actual)
	if err != nil {
		return nil, err
	}
	if len(result.Batches) == 0 {
		return types.NewResponse(), nil
	}

	ids := make([]string, 0, len(result.Batches))
	for _, b := range result.Batches {
		if err := h.Batches.Set(ctx, b.ID, b); err != nil {
			return nil, err
		}
		ids = append(ids, strconv.FormatUint(b.ID, 10))
	}

	emit(ctx, types.EventTypeReconciled,
		sdk.NewAttribute(types.AttributeKeyIDs, strings.Join(ids, ",")),
		sdk.NewAttribute(types.AttributeKeyTokenDeducted, result.Deducted.String()),
	)

	if result.Deducted.IsZero() {
		h.logger.Debugw("reconciled batches", "ids", ids)
	} else {
		h.logger.Infow("reconciled batches with a shortfall", "ids", ids, "expected", result.Expected.String(),
			"actual", result.Actual.String(), "deducted", result.Deducted.String())
	}
	h.metrics.ReconciledBatchesCounter.Add(float64(len(result.Batches)))
	h.metrics.ReconciliationDeficitHist.Observe(metrics.AmountToFloat(result.Deducted))

	return types.NewResponse(), nil
}

func (h *Hub) unreconciledBatches(ctx context.Context) ([]types.Batch, error) {
	iter, err := h.Batches.Indexes.Reconciled.MatchExact(ctx, false)
	if err != nil {
		return nil, err
	}
	ids, err := iter.PrimaryKeys()
	if err != nil {
		return nil, err
	}
	batches := make([]types.Batch, 0, len(ids))
	for _, id := range ids {
		b, err := h.Batches.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
