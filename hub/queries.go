package hub

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/jinzhu/copier"

	"github.com/babylonchain/lsthub/hub/accounting"
	"github.com/babylonchain/lsthub/types"
)

func clampLimit(limit uint32) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return int(limit)
	}
}

// Config returns the hub's configuration.
func (h *Hub) Config(ctx context.Context) (types.ConfigResponse, error) {
	var res types.ConfigResponse

	params, err := h.Params.Get(ctx)
	if err != nil {
		return res, err
	}
	if err := copier.Copy(&res, &params); err != nil {
		return res, err
	}

	if res.Owner, err = h.Owner.Get(ctx); err != nil {
		return res, err
	}
	if res.NewOwner, err = h.NewOwner.Get(ctx); err != nil && !errors.Is(err, collections.ErrNotFound) {
		return res, err
	}
	if res.Operator, err = h.Operator.Get(ctx); err != nil {
		return res, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return res, err
	}
	res.StakeToken = stake.Denom
	if res.Validators, err = h.Validators.Get(ctx); err != nil {
		return res, err
	}
	if res.FeeConfig, err = h.FeeConfig.Get(ctx); err != nil {
		return res, err
	}
	if res.StagesPreset, err = h.StagesPreset.Get(ctx); err != nil {
		return res, err
	}
	if res.DelegationStrategy, err = h.DelegationStrategy.Get(ctx); err != nil {
		return res, err
	}
	if res.AllowDonations, err = h.AllowDonations.Get(ctx); err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return res, err
		}
		res.AllowDonations = true
	}
	return res, nil
}

// State returns the aggregate accounting of the hub.
func (h *Hub) State(ctx context.Context) (types.StateResponse, error) {
	var res types.StateResponse

	params, err := h.Params.Get(ctx)
	if err != nil {
		return res, err
	}
	stake, err := h.StakeToken.Get(ctx)
	if err != nil {
		return res, err
	}
	delegations, err := h.querier.AllDelegations(ctx)
	if err != nil {
		return res, err
	}
	bonded, err := types.SumDelegations(delegations)
	if err != nil {
		return res, err
	}
	unlocked, err := h.UnlockedCoins.Get(ctx)
	if err != nil {
		return res, err
	}
	available, err := h.ledger.Balance(ctx, h.self, params.BaseDenom)
	if err != nil {
		return res, err
	}

	unreconciled, err := h.unreconciledBatches(ctx)
	if err != nil {
		return res, err
	}
	now := blockTime(ctx)
	unbonding := sdkmath.ZeroUint()
	for _, b := range unreconciled {
		if b.EstUnbondEndTime <= now {
			continue
		}
		if unbonding, err = types.SafeAdd(unbonding, b.UnclaimedAmount); err != nil {
			return res, err
		}
	}

	tvl, err := types.SafeAdd(bonded, unbonding)
	if err != nil {
		return res, err
	}
	if tvl, err = types.SafeAdd(tvl, available); err != nil {
		return res, err
	}

	res.TotalStake = stake.TotalSupply
	res.TotalBonded = bonded
	res.ExchangeRate = accounting.ExchangeRate(bonded, stake.TotalSupply)
	res.UnlockedCoins = unlocked
	res.Unbonding = unbonding
	res.Available = available
	res.TVL = tvl
	return res, nil
}

func (h *Hub) QueryPendingBatch(ctx context.Context) (types.PendingBatch, error) {
	return h.PendingBatch.Get(ctx)
}

// PreviousBatch returns a submitted batch that has not been fully withdrawn.
func (h *Hub) PreviousBatch(ctx context.Context, id uint64) (types.Batch, error) {
	b, err := h.Batches.Get(ctx, id)
	if errors.Is(err, collections.ErrNotFound) {
		return b, errorsmod.Wrapf(types.ErrBatchNotFound, "batch %d", id)
	}
	return b, err
}

// PreviousBatches lists submitted batches in id order, after startAfter if set.
func (h *Hub) PreviousBatches(ctx context.Context, startAfter *uint64, limit uint32) ([]types.Batch, error) {
	var ranger collections.Ranger[uint64]
	if startAfter != nil {
		ranger = new(collections.Range[uint64]).StartExclusive(*startAfter)
	}

	n := clampLimit(limit)
	res := make([]types.Batch, 0, n)
	iter, err := h.Batches.Iterate(ctx, ranger)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for ; iter.Valid() && len(res) < n; iter.Next() {
		b, err := iter.Value()
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, nil
}

// UnbondRequestsByBatch lists the requests of batch id ordered by user.
func (h *Hub) UnbondRequestsByBatch(ctx context.Context, id uint64, startAfter string, limit uint32) ([]types.UnbondRequestsByBatchItem, error) {
	ranger := collections.NewPrefixedPairRange[uint64, string](id)
	if startAfter != "" {
		ranger = ranger.StartExclusive(startAfter)
	}

	n := clampLimit(limit)
	res := make([]types.UnbondRequestsByBatchItem, 0, n)
	iter, err := h.UnbondRequests.Iterate(ctx, ranger)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for ; iter.Valid() && len(res) < n; iter.Next() {
		r, err := iter.Value()
		if err != nil {
			return nil, err
		}
		res = append(res, types.UnbondRequestsByBatchItem{User: r.User, Shares: r.Shares})
	}
	return res, nil
}

// UnbondRequestsByUser lists user's requests in batch id order.
func (h *Hub) UnbondRequestsByUser(ctx context.Context, user string, startAfter *uint64, limit uint32) ([]types.UnbondRequestsByUserItem, error) {
	requests, err := h.requestsOf(ctx, user, startAfter, limit)
	if err != nil {
		return nil, err
	}
	res := make([]types.UnbondRequestsByUserItem, 0, len(requests))
	for _, r := range requests {
		res = append(res, types.UnbondRequestsByUserItem{ID: r.BatchID, Shares: r.Shares})
	}
	return res, nil
}

// UnbondRequestsByUserDetails is UnbondRequestsByUser with the state of each
// request and the batch it belongs to.
func (h *Hub) UnbondRequestsByUserDetails(ctx context.Context, user string, startAfter *uint64, limit uint32) ([]types.UnbondRequestDetails, error) {
	requests, err := h.requestsOf(ctx, user, startAfter, limit)
	if err != nil {
		return nil, err
	}
	pending, err := h.PendingBatch.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := blockTime(ctx)
	res := make([]types.UnbondRequestDetails, 0, len(requests))
	for _, r := range requests {
		details := types.UnbondRequestDetails{ID: r.BatchID, Shares: r.Shares}

		if r.BatchID == pending.ID {
			p := pending
			details.State = types.RequestStatePending
			details.Pending = &p
			res = append(res, details)
			continue
		}

		batch, err := h.Batches.Get(ctx, r.BatchID)
		switch {
		case errors.Is(err, collections.ErrNotFound):
			details.State = types.RequestStateCompleted
		case err != nil:
			return nil, err
		default:
			if batch.EstUnbondEndTime < now {
				details.State = types.RequestStateCompleted
			} else {
				details.State = types.RequestStateUnbonding
			}
			details.Batch = &batch
		}
		res = append(res, details)
	}
	return res, nil
}

func (h *Hub) requestsOf(ctx context.Context, user string, startAfter *uint64, limit uint32) ([]types.UnbondRequest, error) {
	keys, err := h.requestKeysOf(ctx, user)
	if err != nil {
		return nil, err
	}

	n := clampLimit(limit)
	res := make([]types.UnbondRequest, 0, n)
	for _, key := range keys {
		if startAfter != nil && key.K1() <= *startAfter {
			continue
		}
		r, err := h.UnbondRequests.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
		if len(res) >= n {
			break
		}
	}
	return res, nil
}

// Query answers q with the matching response type.
func (h *Hub) Query(ctx context.Context, q types.Query) (any, error) {
	switch req := q.(type) {
	case types.QueryConfig:
		return h.Config(ctx)
	case types.QueryState:
		return h.State(ctx)
	case types.QueryPendingBatch:
		return h.QueryPendingBatch(ctx)
	case types.QueryPreviousBatch:
		return h.PreviousBatch(ctx, req.ID)
	case types.QueryPreviousBatches:
		return h.PreviousBatches(ctx, req.StartAfter, req.Limit)
	case types.QueryUnbondRequestsByBatch:
		return h.UnbondRequestsByBatch(ctx, req.ID, req.StartAfter, req.Limit)
	case types.QueryUnbondRequestsByUser:
		if req.Details {
			return h.UnbondRequestsByUserDetails(ctx, req.User, req.StartAfter, req.Limit)
		}
		return h.UnbondRequestsByUser(ctx, req.User, req.StartAfter, req.Limit)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnknownMsg, "query %T", q)
	}
}
