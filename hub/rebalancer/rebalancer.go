// Package rebalancer computes validator-to-validator fund movements that keep
// the delegated stake evenly spread.
//
// Every algorithm walks the delegations in the order given, hands the
// remainder of an even split to the first validators, and never emits a zero
// amount.
package rebalancer

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/lsthub/types"
)

// EvenSplit divides total into n targets; the first total%n targets get one
// extra unit.
func EvenSplit(total sdkmath.Uint, n int) []sdkmath.Uint {
	if n <= 0 {
		return nil
	}
	count := sdkmath.NewUint(uint64(n))
	per := total.Quo(count)
	remainder := total.Mod(count).Uint64()

	targets := make([]sdkmath.Uint, n)
	for i := range targets {
		if uint64(i) < remainder {
			targets[i] = per.AddUint64(1)
		} else {
			targets[i] = per
		}
	}
	return targets
}

// Undelegations spreads toUnbond over the current delegations so what stays
// delegated is as even as possible.
func Undelegations(toUnbond sdkmath.Uint, current []types.Delegation) ([]types.Undelegation, error) {
	if toUnbond.IsZero() {
		return nil, nil
	}
	if len(current) == 0 {
		return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "no delegations to unbond %s from", toUnbond)
	}
	staked, err := types.SumDelegations(current)
	if err != nil {
		return nil, err
	}
	remaining, err := types.SafeSub(staked, toUnbond)
	if err != nil {
		return nil, err
	}

	targets := EvenSplit(remaining, len(current))
	available := toUnbond
	var res []types.Undelegation
	for i, d := range current {
		amount := sdkmath.MinUint(types.SaturatingSub(d.Amount, targets[i]), available)
		available = available.Sub(amount)
		if !amount.IsZero() {
			res = append(res, types.Undelegation{Validator: d.Validator, Amount: amount})
		}
		if available.IsZero() {
			break
		}
	}
	return res, nil
}

// RedelegationsForRemoval moves the stake of a removed validator to the
// remaining ones, filling those below the even target first.
func RedelegationsForRemoval(removed types.Delegation, current []types.Delegation) ([]types.Redelegation, error) {
	if removed.Amount.IsZero() {
		return nil, nil
	}
	if len(current) == 0 {
		return nil, errorsmod.Wrapf(types.ErrNoValidators, "nowhere to move %s from %s", removed.Amount, removed.Validator)
	}
	staked, err := types.SumDelegations(current)
	if err != nil {
		return nil, err
	}
	total, err := types.SafeAdd(staked, removed.Amount)
	if err != nil {
		return nil, err
	}

	targets := EvenSplit(total, len(current))
	available := removed.Amount
	var res []types.Redelegation
	for i, d := range current {
		amount := sdkmath.MinUint(types.SaturatingSub(targets[i], d.Amount), available)
		available = available.Sub(amount)
		if !amount.IsZero() {
			res = append(res, types.Redelegation{Src: removed.Validator, Dst: d.Validator, Amount: amount})
		}
		if available.IsZero() {
			break
		}
	}
	return res, nil
}

// RedelegationsForRebalancing pairs validators above the even target with
// those below it, greedily, until one side is exhausted. It does not look for
// the smallest set of moves.
func RedelegationsForRebalancing(current []types.Delegation) ([]types.Redelegation, error) {
	if len(current) == 0 {
		return nil, nil
	}
	staked, err := types.SumDelegations(current)
	if err != nil {
		return nil, err
	}

	targets := EvenSplit(staked, len(current))
	var src, dst []types.Delegation
	for i, d := range current {
		switch {
		case d.Amount.GT(targets[i]):
			src = append(src, types.NewDelegation(d.Validator, d.Amount.Sub(targets[i])))
		case d.Amount.LT(targets[i]):
			dst = append(dst, types.NewDelegation(d.Validator, targets[i].Sub(d.Amount)))
		}
	}

	var res []types.Redelegation
	for len(src) > 0 && len(dst) > 0 {
		amount := sdkmath.MinUint(src[0].Amount, dst[0].Amount)
		res = append(res, types.Redelegation{Src: src[0].Validator, Dst: dst[0].Validator, Amount: amount})

		if src[0].Amount.Equal(amount) {
			src = src[1:]
		} else {
			src[0].Amount = src[0].Amount.Sub(amount)
		}
		if dst[0].Amount.Equal(amount) {
			dst = dst[1:]
		} else {
			dst[0].Amount = dst[0].Amount.Sub(amount)
		}
	}
	return res, nil
}

// FilterRedelegations drops moves smaller than threshold.
func FilterRedelegations(redelegations []types.Redelegation, threshold sdkmath.Uint) []types.Redelegation {
	res := make([]types.Redelegation, 0, len(redelegations))
	for _, rd := range redelegations {
		if rd.Amount.GTE(threshold) {
			res = append(res, rd)
		}
	}
	return res
}
