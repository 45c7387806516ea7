// Package reconciler corrects the claimable amount of matured batches to the
// funds that actually arrived.
package reconciler

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/lsthub/hub/rebalancer"
	"github.com/babylonchain/lsthub/types"
)

// Result describes one reconciliation pass. Batches is empty when there was
// nothing to reconcile.
type Result struct {
	Batches  []types.Batch
	Expected sdkmath.Uint
	Actual   sdkmath.Uint
	Deducted sdkmath.Uint
}

// Candidates returns the unreconciled batches whose unbonding ended before now.
func Candidates(batches []types.Batch, now uint64) []types.Batch {
	var res []types.Batch
	for _, b := range batches {
		if !b.Reconciled && b.Matured(now) {
			res = append(res, b)
		}
	}
	return res
}

// Reconcile marks candidates reconciled. If the hub holds less than the
// candidates' unclaimed amount plus the unlocked pool, the deficit is deducted
// from the candidates with Deduct.
func Reconcile(candidates []types.Batch, unlocked, actual sdkmath.Uint) (Result, error) {
	res := Result{
		Expected: sdkmath.ZeroUint(),
		Actual:   actual,
		Deducted: sdkmath.ZeroUint(),
	}
	if len(candidates) == 0 {
		return res, nil
	}

	expected := unlocked
	for _, b := range candidates {
		var err error
		if expected, err = types.SafeAdd(expected, b.UnclaimedAmount); err != nil {
			return res, err
		}
	}
	res.Expected = expected
	if expected.IsZero() {
		return res, nil
	}

	batches := make([]types.Batch, len(candidates))
	copy(batches, candidates)

	if actual.GTE(expected) {
		for i := range batches {
			batches[i].Reconciled = true
		}
		res.Batches = batches
		return res, nil
	}

	deficit := expected.Sub(actual)
	if err := Deduct(batches, deficit); err != nil {
		return res, err
	}
	res.Batches = batches
	res.Deducted = deficit
	return res, nil
}

// Deduct splits deficit evenly across batches, the first deficit%n batches
// absorbing one extra unit, and marks every batch reconciled.
func Deduct(batches []types.Batch, deficit sdkmath.Uint) error {
	if len(batches) == 0 {
		return errorsmod.Wrap(types.ErrDivisionByZero, "no batches to deduct from")
	}
	shares := rebalancer.EvenSplit(deficit, len(batches))
	for i := range batches {
		unclaimed, err := types.SafeSub(batches[i].UnclaimedAmount, shares[i])
		if err != nil {
			return errorsmod.Wrapf(err, "batch %d", batches[i].ID)
		}
		batches[i].UnclaimedAmount = unclaimed
		batches[i].Reconciled = true
	}
	return nil
}
